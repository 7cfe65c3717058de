package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Store lookups never return it; services use it when an operation
	// targets a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown storage backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrPersistence indicates the durable store could not be written.
	// The in-memory state may already reflect the change; callers must
	// treat the mutation as unconfirmed.
	ErrPersistence = errors.New("persistence failure")

	// Validation Errors.

	// ErrInvalidRole indicates a role value outside Admin, Cleaner, Client.
	ErrInvalidRole = fmt.Errorf("%w: unknown role", ErrInvalidInput)

	// ErrInvalidCredentials indicates the login/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// Policy Errors.

	// ErrPolicyViolation is the parent of every business-rule rejection.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrIllegalTransition indicates a request status change outside the lifecycle.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrSelfRoleChange indicates the actor tried to change their own role.
	ErrSelfRoleChange = fmt.Errorf("%w: cannot change your own role", ErrPolicyViolation)

	// ErrSelfDelete indicates the actor tried to delete their own account.
	ErrSelfDelete = fmt.Errorf("%w: cannot delete your own account", ErrPolicyViolation)

	// ErrLastAdmin indicates the operation would leave no administrator.
	ErrLastAdmin = fmt.Errorf("%w: cannot remove the last administrator", ErrPolicyViolation)

	// ErrNotCleaner indicates a non-cleaner tried to take a request.
	ErrNotCleaner = fmt.Errorf("%w: only cleaners can take requests", ErrPolicyViolation)

	// ErrCleanerAssigned indicates the request already has a cleaner.
	ErrCleanerAssigned = fmt.Errorf("%w: request already has a cleaner", ErrPolicyViolation)

	// ErrCleanerBusy indicates a cleaner still holds open requests.
	ErrCleanerBusy = fmt.Errorf("%w: cleaner has open requests", ErrPolicyViolation)

	// ErrUserInUse indicates a user is still referenced by requests.
	ErrUserInUse = fmt.Errorf("%w: user is referenced by requests", ErrPolicyViolation)

	// ErrServiceInUse indicates a catalog service is still referenced by requests.
	ErrServiceInUse = fmt.Errorf("%w: service is referenced by requests", ErrPolicyViolation)
)

// TransitionError reports a rejected request status change.
type TransitionError struct {
	From RequestStatus
	To   RequestStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %q -> %q", ErrIllegalTransition, e.From, e.To)
}

// Is matches both ErrIllegalTransition and ErrPolicyViolation.
func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition || target == ErrPolicyViolation
}

// CityInUseError reports a city deletion blocked by referencing requests.
type CityInUseError struct {
	CityID   int
	Requests int
}

func (e *CityInUseError) Error() string {
	return fmt.Sprintf("%s: city %d is used by %d request(s)", ErrPolicyViolation, e.CityID, e.Requests)
}

// Unwrap classifies the error as a policy violation.
func (e *CityInUseError) Unwrap() error {
	return ErrPolicyViolation
}
