package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// Ensure RequestService implements the interface.
var _ driving.RequestService = (*RequestService)(nil)

// RequestService places requests, drives their lifecycle and keeps the
// service rows and payment of each request consistent.
//
// Multi-step operations are best effort: a failure part way through
// leaves the steps already written in place.
type RequestService struct {
	stores driven.Stores
	now    func() time.Time
	newTx  func() string
}

// NewRequestService creates a new request service over the given stores.
func NewRequestService(stores driven.Stores) *RequestService {
	return &RequestService{
		stores: stores,
		now:    time.Now,
		newTx:  uuid.NewString,
	}
}

func (s *RequestService) ready() error {
	st := s.stores
	if st.Users == nil || st.Cities == nil || st.Services == nil ||
		st.Requests == nil || st.RequestServices == nil || st.Payments == nil {
		return domain.ErrNotImplemented
	}
	return nil
}

// Place creates a New request for the actor, one service row per selected
// service and a successful payment for the total cost.
func (s *RequestService) Place(ctx context.Context, actor domain.Actor, order domain.Order) (*domain.Request, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	city, err := s.stores.Cities.Get(ctx, order.CityID)
	if err != nil {
		return nil, fmt.Errorf("get city: %w", err)
	}
	if city == nil {
		return nil, fmt.Errorf("%w: city %d does not exist", domain.ErrInvalidInput, order.CityID)
	}
	selected, err := s.resolveServices(ctx, order.ServiceIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	req := domain.Request{
		UserID:       actor.UserID,
		Area:         order.Area,
		CleaningDate: order.CleaningDate,
		CityID:       city.ID,
		District:     order.District,
		Address:      order.Address,
		TotalCost:    domain.TotalCost(selected, order.Area),
		Status:       domain.StatusNew,
		CreatedAt:    now,
	}
	if req.ID, err = s.stores.Requests.Add(ctx, req); err != nil {
		return nil, fmt.Errorf("add request: %w", err)
	}
	if err := s.addServiceRows(ctx, req.ID, selected); err != nil {
		return nil, err
	}

	payment := domain.Payment{
		RequestID:        req.ID,
		CardNumberMasked: domain.MaskCardNumber(order.CardNumber),
		PaymentDate:      now,
		Amount:           req.TotalCost,
		Status:           domain.PaymentSuccess,
		TransactionID:    s.newTx(),
	}
	if payment.ID, err = s.stores.Payments.Add(ctx, payment); err != nil {
		return nil, fmt.Errorf("add payment: %w", err)
	}

	req.PaymentID = payment.ID
	if _, err := s.stores.Requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("link payment: %w", err)
	}

	logger.Debug("request %d placed by user %d, total %s", req.ID, actor.UserID, req.TotalCost.StringFixed(2))
	return &req, nil
}

// resolveServices loads every id, rejecting unknown ones.
func (s *RequestService) resolveServices(ctx context.Context, ids []int) ([]domain.Service, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: select at least one service", domain.ErrInvalidInput)
	}
	selected := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, err := s.stores.Services.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get service: %w", err)
		}
		if svc == nil {
			return nil, fmt.Errorf("%w: service %d does not exist", domain.ErrInvalidInput, id)
		}
		selected = append(selected, *svc)
	}
	return selected, nil
}

func (s *RequestService) addServiceRows(ctx context.Context, requestID int, selected []domain.Service) error {
	for i := range selected {
		row := domain.RequestService{RequestID: requestID, ServiceID: selected[i].ID}
		if _, err := s.stores.RequestServices.Add(ctx, row); err != nil {
			return fmt.Errorf("add request service: %w", err)
		}
	}
	return nil
}

// Get returns a request or domain.ErrNotFound.
func (s *RequestService) Get(ctx context.Context, id int) (*domain.Request, error) {
	if s.stores.Requests == nil {
		return nil, domain.ErrNotImplemented
	}
	req, err := s.stores.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request %d: %w", id, domain.ErrNotFound)
	}
	return req, nil
}

// Details resolves everything a request refers to. Dangling references
// are left nil rather than failing the lookup.
func (s *RequestService) Details(ctx context.Context, id int) (*domain.RequestDetails, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &domain.RequestDetails{Request: *req}
	if d.Client, err = s.stores.Users.Get(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if req.HasCleaner() {
		if d.Cleaner, err = s.stores.Users.Get(ctx, *req.CleanerID); err != nil {
			return nil, fmt.Errorf("get cleaner: %w", err)
		}
	}
	if d.City, err = s.stores.Cities.Get(ctx, req.CityID); err != nil {
		return nil, fmt.Errorf("get city: %w", err)
	}

	rows, err := s.stores.RequestServices.ListByRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list request services: %w", err)
	}
	for _, row := range rows {
		svc, err := s.stores.Services.Get(ctx, row.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("get service: %w", err)
		}
		if svc != nil {
			d.Services = append(d.Services, *svc)
		}
	}

	if d.Payment, err = s.paymentOf(ctx, req); err != nil {
		return nil, err
	}
	return d, nil
}

// paymentOf follows PaymentID and falls back to a lookup by request.
func (s *RequestService) paymentOf(ctx context.Context, req *domain.Request) (*domain.Payment, error) {
	if req.HasPayment() {
		p, err := s.stores.Payments.Get(ctx, req.PaymentID)
		if err != nil {
			return nil, fmt.Errorf("get payment: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}
	p, err := s.stores.Payments.GetByRequest(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// List returns requests matching the filter.
func (s *RequestService) List(ctx context.Context, filter *domain.RequestFilter) ([]domain.Request, error) {
	if s.stores.Requests == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.stores.Requests.List(ctx, filter)
}

// Visible narrows filter to the requests the actor may see.
func (s *RequestService) Visible(ctx context.Context, actor domain.Actor, filter *domain.RequestFilter) ([]domain.Request, error) {
	var f domain.RequestFilter
	if filter != nil {
		f = *filter
	}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleCleaner:
		f.CleanerID = domain.Ptr(actor.UserID)
	default:
		f.ClientID = domain.Ptr(actor.UserID)
	}
	return s.List(ctx, &f)
}

// Available lists New requests that no cleaner has taken yet.
func (s *RequestService) Available(ctx context.Context) ([]domain.Request, error) {
	all, err := s.List(ctx, &domain.RequestFilter{Status: domain.Ptr(domain.StatusNew)})
	if err != nil {
		return nil, err
	}
	open := make([]domain.Request, 0, len(all))
	for i := range all {
		if !all[i].HasCleaner() {
			open = append(open, all[i])
		}
	}
	return open, nil
}

// Transition moves a request to another status and applies the side
// effects of that edge. Nothing is written when the edge is illegal.
func (s *RequestService) Transition(ctx context.Context, actor domain.Actor, requestID int, to domain.RequestStatus) (*domain.Request, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	from := req.Status
	if err := domain.CheckTransition(from, to); err != nil {
		return nil, err
	}

	cancelPayment := false
	switch {
	case to == domain.StatusInProgress:
		if actor.Role != domain.RoleCleaner {
			return nil, domain.ErrNotCleaner
		}
		if req.HasCleaner() && !actor.Is(*req.CleanerID) {
			return nil, domain.ErrCleanerAssigned
		}
		req.AssignCleaner(actor.UserID)
	case from == domain.StatusNew && to == domain.StatusCancelled:
		req.CleanerID = nil
		cancelPayment = true
	}

	req.Status = to
	ok, err := s.stores.Requests.Update(ctx, *req)
	if err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("request %d: %w", requestID, domain.ErrNotFound)
	}
	if cancelPayment {
		if err := s.cancelPayment(ctx, req); err != nil {
			return nil, err
		}
	}

	logger.Debug("request %d: %s -> %s by user %d", requestID, from.Label(), to.Label(), actor.UserID)
	return req, nil
}

func (s *RequestService) cancelPayment(ctx context.Context, req *domain.Request) error {
	p, err := s.paymentOf(ctx, req)
	if err != nil {
		return err
	}
	if p == nil || p.Status == domain.PaymentCancelled {
		return nil
	}
	p.Status = domain.PaymentCancelled
	if _, err := s.stores.Payments.Update(ctx, *p); err != nil {
		return fmt.Errorf("cancel payment: %w", err)
	}
	logger.Debug("payment %d of request %d cancelled", p.ID, req.ID)
	return nil
}

// Take assigns a New request to the acting cleaner.
func (s *RequestService) Take(ctx context.Context, actor domain.Actor, requestID int) (*domain.Request, error) {
	return s.Transition(ctx, actor, requestID, domain.StatusInProgress)
}

// Complete finishes a request. Only its cleaner or an admin may do so.
func (s *RequestService) Complete(ctx context.Context, actor domain.Actor, requestID int) (*domain.Request, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && (!req.HasCleaner() || !actor.Is(*req.CleanerID)) {
		return nil, fmt.Errorf("%w: request %d is not assigned to you", domain.ErrPolicyViolation, requestID)
	}
	return s.Transition(ctx, actor, requestID, domain.StatusCompleted)
}

// Cancel cancels a request. Its client, its cleaner or an admin may do so.
func (s *RequestService) Cancel(ctx context.Context, actor domain.Actor, requestID int) (*domain.Request, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	involved := actor.Is(req.UserID) || (req.HasCleaner() && actor.Is(*req.CleanerID))
	if actor.Role != domain.RoleAdmin && !involved {
		return nil, fmt.Errorf("%w: request %d is not yours", domain.ErrPolicyViolation, requestID)
	}
	return s.Transition(ctx, actor, requestID, domain.StatusCancelled)
}

// AssignCleaner lets an admin set or clear the cleaner of an open
// request. The status is left alone; an InProgress request cannot lose
// its cleaner.
func (s *RequestService) AssignCleaner(ctx context.Context, actor domain.Actor, requestID int, cleanerID *int) (*domain.Request, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only administrators assign cleaners", domain.ErrPolicyViolation)
	}
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, fmt.Errorf("%w: request %d is %s", domain.ErrPolicyViolation, requestID, req.Status.Label())
	}

	if cleanerID == nil {
		if req.Status == domain.StatusInProgress {
			return nil, fmt.Errorf("%w: a request in progress needs a cleaner", domain.ErrPolicyViolation)
		}
		req.CleanerID = nil
	} else {
		cleaner, err := s.stores.Users.Get(ctx, *cleanerID)
		if err != nil {
			return nil, fmt.Errorf("get cleaner: %w", err)
		}
		if cleaner == nil {
			return nil, fmt.Errorf("user %d: %w", *cleanerID, domain.ErrNotFound)
		}
		if cleaner.Role != domain.RoleCleaner {
			return nil, fmt.Errorf("%w: user %d is a %s", domain.ErrNotCleaner, cleaner.ID, cleaner.Role)
		}
		req.AssignCleaner(cleaner.ID)
	}

	ok, err := s.stores.Requests.Update(ctx, *req)
	if err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("request %d: %w", requestID, domain.ErrNotFound)
	}
	logger.Debug("request %d cleaner set to %v by %d", requestID, cleanerLog(req.CleanerID), actor.UserID)
	return req, nil
}

func cleanerLog(id *int) any {
	if id == nil {
		return "none"
	}
	return *id
}

// RecordPayment adds a successful payment to a request that has none.
// An empty transactionID gets a generated one.
func (s *RequestService) RecordPayment(ctx context.Context, requestID int, card, transactionID string) (*domain.Payment, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	existing, err := s.paymentOf(ctx, req)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: request %d already has payment %d", domain.ErrAlreadyExists, requestID, existing.ID)
	}
	if !domain.ValidCardNumber(card) {
		return nil, fmt.Errorf("%w: card number must have 16 digits", domain.ErrInvalidInput)
	}
	if transactionID == "" {
		transactionID = s.newTx()
	}

	payment := domain.Payment{
		RequestID:        requestID,
		CardNumberMasked: domain.MaskCardNumber(card),
		PaymentDate:      s.now(),
		Amount:           req.TotalCost,
		Status:           domain.PaymentSuccess,
		TransactionID:    transactionID,
	}
	if payment.ID, err = s.stores.Payments.Add(ctx, payment); err != nil {
		return nil, fmt.Errorf("add payment: %w", err)
	}
	req.PaymentID = payment.ID
	if _, err := s.stores.Requests.Update(ctx, *req); err != nil {
		return nil, fmt.Errorf("link payment: %w", err)
	}

	logger.Debug("payment %d recorded for request %d", payment.ID, requestID)
	return &payment, nil
}

// SetServices replaces the services of a New request and recomputes its
// total cost.
func (s *RequestService) SetServices(ctx context.Context, requestID int, serviceIDs []int) (*domain.Request, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.StatusNew {
		return nil, fmt.Errorf("%w: services of a %s request cannot change", domain.ErrPolicyViolation, req.Status.Label())
	}
	selected, err := s.resolveServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	if _, err := s.stores.RequestServices.DeleteByRequest(ctx, requestID); err != nil {
		return nil, fmt.Errorf("clear request services: %w", err)
	}
	if err := s.addServiceRows(ctx, requestID, selected); err != nil {
		return nil, err
	}

	req.TotalCost = domain.TotalCost(selected, req.Area)
	if _, err := s.stores.Requests.Update(ctx, *req); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	logger.Debug("request %d now has %d service(s), total %s", requestID, len(selected), req.TotalCost.StringFixed(2))
	return req, nil
}

// Remove deletes a request with its service rows. Its payment is kept
// and marked cancelled.
func (s *RequestService) Remove(ctx context.Context, id int) error {
	if err := s.ready(); err != nil {
		return err
	}
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.stores.RequestServices.DeleteByRequest(ctx, id); err != nil {
		return fmt.Errorf("delete request services: %w", err)
	}
	if err := s.cancelPayment(ctx, req); err != nil {
		return err
	}
	if _, err := s.stores.Requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	logger.Debug("request %d removed", id)
	return nil
}
