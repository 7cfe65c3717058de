// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and storage adapters
// implement them.
//
// # Required Interfaces
//
// One store per entity kind, each the sole reader and writer of its
// collection:
//
//   - UserStore: Users, unique login
//   - CityStore: Cities
//   - ServiceStore: Service catalog, seeded with defaults on first access
//   - RequestStore: Cleaning requests
//   - RequestServiceStore: Request to service join rows
//   - PaymentStore: Payments, unique transaction id
//   - ConfigStore: Application configuration
//
// # Store Contract
//
// Every store allocates identifiers itself (maximum id + 1, never reused
// within the process), returns (nil, nil) from lookups that miss, lists in
// insertion order, reports whether Update/Delete found a record, and wraps
// durable write failures with domain.ErrPersistence.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
