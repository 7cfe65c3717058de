// Package services implements the driving port interfaces.
// Services hold the business rules of the cleaning business and
// orchestrate calls to the driven stores.
//
// Every rule that depends on who is acting takes an explicit
// domain.Actor; no service keeps session state.
package services
