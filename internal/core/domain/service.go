package domain

import "github.com/shopspring/decimal"

// Service is a catalog entry that can be ordered as part of a request.
type Service struct {
	ID                  int             `json:"Id"`
	Name                string          `json:"Name"`
	PricePerSquareMeter decimal.Decimal `json:"PricePerSquareMeter"`
	// RequiresArea is true when the price scales with the cleaned area,
	// false for a fixed charge.
	RequiresArea bool `json:"RequiresArea"`
}

// CostFor returns the charge for this service on the given area.
func (s *Service) CostFor(area decimal.Decimal) decimal.Decimal {
	if s.RequiresArea {
		return s.PricePerSquareMeter.Mul(area)
	}
	return s.PricePerSquareMeter
}

// TotalCost sums the charge of every selected service for the area.
func TotalCost(services []Service, area decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := range services {
		total = total.Add(services[i].CostFor(area))
	}
	return total
}

// DefaultServices returns the catalog seeded into an empty service store:
// two area-priced and two fixed-price entries.
func DefaultServices() []Service {
	return []Service{
		{Name: "Сухая уборка", PricePerSquareMeter: decimal.NewFromInt(50), RequiresArea: true},
		{Name: "Влажная уборка", PricePerSquareMeter: decimal.NewFromInt(80), RequiresArea: true},
		{Name: "Мытье окон", PricePerSquareMeter: decimal.NewFromInt(100), RequiresArea: false},
		{Name: "Химчистка ковров", PricePerSquareMeter: decimal.NewFromInt(120), RequiresArea: false},
	}
}
