// Package driving defines interfaces that external actors (UI, CLI) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Operations that depend on who is acting take a domain.Actor explicitly;
// there is no ambient "current user".
//
// Implementations of these interfaces live in internal/core/services.
package driving
