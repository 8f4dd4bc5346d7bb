package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

// DefaultAdminName is the display name of the seeded administrator.
const DefaultAdminName = "Admin User"

type userService struct {
	users    repository.UserRepo
	clock    Clock
	ids      IDGenerator
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, clock Clock, ids IDGenerator, observers ...UseCaseObserver) UserService {
	return &userService{
		users:    users,
		clock:    clock,
		ids:      ids,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (u *domain.User, err error) {
	startedAt := time.Now()
	fields := map[string]any{"role": string(in.Role)}
	defer func() { observe(ctx, s.observer, "user-create", startedAt, fields, &err) }()

	email, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validationf("name is required")
	}
	if in.Role == "" {
		in.Role = domain.RoleEmployee
	}
	if !in.Role.Valid() {
		return nil, domain.Validationf("unknown role %q", in.Role)
	}
	if in.Status == "" {
		in.Status = domain.UserActive
	}
	if !in.Status.Valid() {
		return nil, domain.Validationf("unknown status %q", in.Status)
	}
	hash, err := hashNewPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u = &domain.User{
		ID:             s.ids.NewID(),
		Email:          email,
		Name:           strings.TrimSpace(in.Name),
		Role:           in.Role,
		Status:         in.Status,
		PasswordHash:   hash,
		DefaultProject: domain.NonEmptyPtr(in.DefaultProject),
		DefaultTask:    domain.NonEmptyPtr(in.DefaultTask),
		CreatedAt:      s.clock.Now(),
	}
	if err = s.users.Create(ctx, u); err != nil {
		return nil, duplicateAs(err, "email already registered")
	}
	fields["user_id"] = u.ID
	return u, nil
}

func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput) (u *domain.User, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": id}
	defer func() { observe(ctx, s.observer, "user-update", startedAt, fields, &err) }()

	u, err = s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}

	if in.Email != nil {
		if u.Email, err = domain.NormalizeEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Validationf("name is required")
		}
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, domain.Validationf("unknown role %q", *in.Role)
		}
		u.Role = *in.Role
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.Validationf("unknown status %q", *in.Status)
		}
		u.Status = *in.Status
	}
	if in.Password != nil {
		if u.PasswordHash, err = hashNewPassword(*in.Password); err != nil {
			return nil, err
		}
		fields["password_changed"] = true
	}
	if in.DefaultProject != nil {
		u.DefaultProject = domain.NonEmptyPtr(in.DefaultProject)
	}
	if in.DefaultTask != nil {
		u.DefaultTask = domain.NonEmptyPtr(in.DefaultTask)
	}

	if err = s.users.Update(ctx, u); err != nil {
		err = duplicateAs(err, "email already registered")
		return nil, notFoundAs(err, "user not found")
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}
	return u, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}
	return u, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Authf("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, domain.Authf("invalid credentials")
	}
	if !u.IsActive() {
		return nil, ErrInactiveAccount
	}
	return u, nil
}

// ErrInactiveAccount is the auth error returned for deactivated users.
var ErrInactiveAccount = domain.Authf("account is inactive, contact administrator")

func (s *userService) EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error) {
	admin := domain.RoleAdmin
	n, err := s.users.Count(ctx, repository.UserCount{Role: &admin})
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	_, err = s.Create(ctx, CreateUserInput{
		Email:    email,
		Name:     DefaultAdminName,
		Password: password,
		Role:     domain.RoleAdmin,
		Status:   domain.UserActive,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func hashNewPassword(password string) (string, error) {
	if len(password) < auth.MinPasswordLength {
		return "", domain.Validationf("password must be at least %d characters", auth.MinPasswordLength)
	}
	return auth.HashPassword(password)
}
