package services

import (
	"errors"
	"strings"

	"taskboard/app/httperr"
	"taskboard/app/models"
	"taskboard/app/repo"
	"taskboard/app/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// Register creates an account. Anonymous signups always get the user
// role; only a caller already authenticated as admin may mint an admin.
func (s *UserService) Register(caller *token.Identity, name, email, password, role string) (*models.User, error) {
	userRole := models.RoleUser
	if role == models.RoleAdmin {
		if caller == nil || !caller.IsAdmin() {
			return nil, httperr.Forbidden("only admins can create admin users")
		}
		userRole = models.RoleAdmin
	}

	email = strings.ToLower(strings.TrimSpace(email))
	count, err := s.users.CountByEmail(email)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if count > 0 {
		return nil, httperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	u := &models.User{Name: name, Email: email, PasswordHash: string(hash), Role: userRole}
	if err := s.users.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent signup with the same email
			return nil, httperr.Conflict("email already registered")
		}
		return nil, httperr.Internal(err)
	}
	return u, nil
}

// ValidateCredentials answers uniformly for unknown email and wrong
// password, so login probes cannot tell the two apart.
func (s *UserService) ValidateCredentials(email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Validation("invalid credentials")
		}
		return nil, httperr.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, httperr.Validation("invalid credentials")
	}
	return u, nil
}

// EnsureAdmin seeds a bootstrap admin account if the email is not taken.
func (s *UserService) EnsureAdmin(name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	count, err := s.users.CountByEmail(email)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{Name: name, Email: email, PasswordHash: string(hash), Role: models.RoleAdmin})
}
