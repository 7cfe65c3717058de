package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService manages accounts and enforces the role rules.
type UserService struct {
	userStore    driven.UserStore
	requestStore driven.RequestStore
	now          func() time.Time
}

// NewUserService creates a new user service. requestStore may be nil, in
// which case Remove cannot check references and refuses to run.
func NewUserService(userStore driven.UserStore, requestStore driven.RequestStore) *UserService {
	return &UserService{
		userStore:    userStore,
		requestStore: requestStore,
		now:          time.Now,
	}
}

// Register creates a Client account.
func (s *UserService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	return s.create(ctx, reg, domain.RoleClient)
}

// Bootstrap creates the first account as an Admin.
func (s *UserService) Bootstrap(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}
	users, err := s.userStore.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) > 0 {
		return nil, fmt.Errorf("%w: an account already exists", domain.ErrAlreadyExists)
	}
	return s.create(ctx, reg, domain.RoleAdmin)
}

func (s *UserService) create(ctx context.Context, reg domain.Registration, role domain.Role) (*domain.User, error) {
	if s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	user := reg.User(role, s.now())
	existing, err := s.userStore.GetByLogin(ctx, user.Login)
	if err != nil {
		return nil, fmt.Errorf("look up login: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: login %q is taken", domain.ErrAlreadyExists, user.Login)
	}

	id, err := s.userStore.Add(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	user.ID = id
	logger.Debug("registered user %d (%s) as %s", id, user.Login, role)
	return &user, nil
}

// Authenticate compares credentials verbatim.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	if s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}
	user, err := s.userStore.GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("look up login: %w", err)
	}
	if user == nil || user.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Get returns a user or domain.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	if s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

// List returns users matching the filter.
func (s *UserService) List(ctx context.Context, filter *domain.UserFilter) ([]domain.User, error) {
	if s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.userStore.List(ctx, filter)
}

// ApplyRole changes a user's role. Checks run in order: role validity,
// missing target, no-op, self change, last administrator, open requests
// of a cleaner losing the role.
func (s *UserService) ApplyRole(ctx context.Context, actor domain.Actor, targetID int, newRole string) error {
	if s.userStore == nil {
		return domain.ErrNotImplemented
	}

	role, err := domain.ParseRole(newRole)
	if err != nil {
		return err
	}

	target, err := s.Get(ctx, targetID)
	if err != nil {
		return err
	}

	if target.Role == role {
		return nil
	}
	if actor.Is(target.ID) {
		return domain.ErrSelfRoleChange
	}
	if target.Role == domain.RoleAdmin {
		if err := s.ensureOtherAdmin(ctx); err != nil {
			return err
		}
	}
	if target.Role == domain.RoleCleaner {
		if err := s.ensureNoOpenAssignments(ctx, target.ID); err != nil {
			return err
		}
	}

	target.Role = role
	ok, err := s.userStore.Update(ctx, *target)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if !ok {
		return fmt.Errorf("user %d: %w", targetID, domain.ErrNotFound)
	}
	logger.Debug("user %d role set to %s by %d", targetID, role, actor.UserID)
	return nil
}

// Remove deletes an account. An actor cannot delete themselves, the last
// administrator, or a user that requests still reference.
func (s *UserService) Remove(ctx context.Context, actor domain.Actor, id int) error {
	if s.userStore == nil || s.requestStore == nil {
		return domain.ErrNotImplemented
	}

	target, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if actor.Is(target.ID) {
		return domain.ErrSelfDelete
	}
	if target.Role == domain.RoleAdmin {
		if err := s.ensureOtherAdmin(ctx); err != nil {
			return err
		}
	}

	owned, err := s.requestStore.ListByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("list requests: %w", err)
	}
	assigned, err := s.requestStore.ListByCleaner(ctx, id)
	if err != nil {
		return fmt.Errorf("list requests: %w", err)
	}
	if n := len(owned) + len(assigned); n > 0 {
		return fmt.Errorf("%w (%d)", domain.ErrUserInUse, n)
	}

	if _, err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	logger.Debug("user %d removed by %d", id, actor.UserID)
	return nil
}

// ensureNoOpenAssignments rejects with ErrCleanerBusy while the cleaner
// holds a New or InProgress request.
func (s *UserService) ensureNoOpenAssignments(ctx context.Context, cleanerID int) error {
	if s.requestStore == nil {
		return domain.ErrNotImplemented
	}
	assigned, err := s.requestStore.ListByCleaner(ctx, cleanerID)
	if err != nil {
		return fmt.Errorf("list requests: %w", err)
	}
	open := 0
	for _, r := range assigned {
		if !r.Status.Terminal() {
			open++
		}
	}
	if open > 0 {
		return fmt.Errorf("%w (%d)", domain.ErrCleanerBusy, open)
	}
	return nil
}

func (s *UserService) ensureOtherAdmin(ctx context.Context) error {
	admins, err := s.userStore.List(ctx, &domain.UserFilter{Role: domain.Ptr(domain.RoleAdmin)})
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if len(admins) <= 1 {
		return domain.ErrLastAdmin
	}
	return nil
}
