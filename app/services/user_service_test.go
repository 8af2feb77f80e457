package services

import (
	"testing"

	"taskboard/app/httperr"
	"taskboard/app/models"
	"taskboard/app/repo"
	"taskboard/app/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *repo.UserRepository) {
	t.Helper()
	users := repo.NewUserRepository(newTestDB(t))
	return NewUserService(users), users
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	s, _ := newUserService(t)

	u, err := s.Register(nil, "Alice", "alice@example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "secret1", u.PasswordHash)
}

func TestRegisterAdminWithoutAdminCaller(t *testing.T) {
	s, users := newUserService(t)

	_, err := s.Register(nil, "Mallory", "mallory@example.com", "secret1", models.RoleAdmin)
	require.Error(t, err)
	var he *httperr.Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.KindAuthorization, he.Kind)

	// a non-admin token is no better than no token
	caller := token.Identity{UserID: 7, Role: models.RoleUser}
	_, err = s.Register(&caller, "Mallory", "mallory@example.com", "secret1", models.RoleAdmin)
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.KindAuthorization, he.Kind)

	// and no account came into being along the way
	count, err := users.CountByEmail("mallory@example.com")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRegisterAdminByAdmin(t *testing.T) {
	s, _ := newUserService(t)

	caller := token.Identity{UserID: 1, Role: models.RoleAdmin}
	u, err := s.Register(&caller, "Second Admin", "admin2@example.com", "secret1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newUserService(t)

	_, err := s.Register(nil, "Alice", "alice@example.com", "secret1", "")
	require.NoError(t, err)

	_, err = s.Register(nil, "Other Alice", "alice@example.com", "secret2", "")
	var he *httperr.Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.KindConflict, he.Kind)

	// email matching ignores case and surrounding whitespace
	_, err = s.Register(nil, "Shouty Alice", "  ALICE@example.com ", "secret2", "")
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.KindConflict, he.Kind)
}

func TestValidateCredentials(t *testing.T) {
	s, _ := newUserService(t)

	created, err := s.Register(nil, "Alice", "alice@example.com", "secret1", "")
	require.NoError(t, err)

	u, err := s.ValidateCredentials("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, created.Role, u.Role)

	var he *httperr.Error
	_, err = s.ValidateCredentials("alice@example.com", "wrong")
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.KindValidation, he.Kind)

	// unknown email answers exactly like a wrong password
	_, err = s.ValidateCredentials("nobody@example.com", "secret1")
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.KindValidation, he.Kind)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	s, users := newUserService(t)

	require.NoError(t, s.EnsureAdmin("Admin", "admin@example.com", "admin123"))
	require.NoError(t, s.EnsureAdmin("Admin", "admin@example.com", "admin123"))

	count, err := users.CountByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	u, err := users.FindByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}
