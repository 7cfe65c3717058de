// Package domain defines the core business entities of the cleaning service.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types and the rules that need no storage:
//
//   - User, City, Service, Request, RequestService, Payment: the six entity kinds
//   - RequestFilter, UserFilter, PaymentFilter: optional-field query records
//   - RequestStatus and its transition table: the request lifecycle
//   - Actor: the authenticated user driving an operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, shopspring/decimal for money values
//   - Cannot Import: Any internal/ package, any other external dependency
package domain
