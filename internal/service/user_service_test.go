package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserSvc(t *testing.T) (UserService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewUserService(env.users, env.clock, UUIDGenerator{}), env
}

func TestUserCreate_HashesAndNormalizes(t *testing.T) {
	svc, env := newUserSvc(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Email: "  Ana@Example.COM ", Name: "Ana", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, domain.RoleEmployee, u.Role)
	assert.Equal(t, domain.UserActive, u.Status)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "secret1"))

	stored, err := env.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)
}

func TestUserCreate_Validation(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	cases := []CreateUserInput{
		{Email: "not-an-email", Name: "A", Password: "secret1"},
		{Email: "a@example.com", Name: " ", Password: "secret1"},
		{Email: "a@example.com", Name: "A", Password: "short"},
		{Email: "a@example.com", Name: "A", Password: "secret1", Role: "owner"},
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, in)
		requireKind(t, err, domain.KindValidation)
	}
}

func TestUserCreate_DuplicateEmailConflicts(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Email: "a@example.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateUserInput{Email: "A@example.com", Name: "B", Password: "secret2"})
	requireKind(t, err, domain.KindConflict)
}

func TestUserAuthenticate(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Email: "a@example.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)

	byEmail, err := svc.GetByEmail(ctx, " A@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	_, err = svc.GetByEmail(ctx, "nobody@example.com")
	requireKind(t, err, domain.KindNotFound)

	got, err := svc.Authenticate(ctx, "A@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "a@example.com", "wrong")
	requireKind(t, err, domain.KindAuth)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret1")
	requireKind(t, err, domain.KindAuth)

	inactive := domain.UserInactive
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Status: &inactive})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "a@example.com", "secret1")
	requireKind(t, err, domain.KindAuth)
	assert.True(t, errors.Is(err, ErrInactiveAccount))
}

func TestUserUpdate_Partial(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Email: "a@example.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)

	newName := "Alice"
	newPass := "secret9"
	updated, err := svc.Update(ctx, u.ID, UpdateUserInput{Name: &newName, Password: &newPass})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "a@example.com", updated.Email)
	assert.True(t, auth.CheckPassword(updated.PasswordHash, "secret9"))

	_, err = svc.Update(ctx, "missing", UpdateUserInput{Name: &newName})
	requireKind(t, err, domain.KindNotFound)

	bad := domain.Role("owner")
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Role: &bad})
	requireKind(t, err, domain.KindValidation)
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	svc, env := newUserSvc(t)
	ctx := context.Background()

	created, err := svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	admins, err := env.users.ListByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, DefaultAdminName, admins[0].Name)
}
