package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// ErrInvalidCredentials is returned on a failed login. It deliberately does
// not distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user types.User) (types.User, error)
	GetUserByEmail(ctx context.Context, email string) (types.User, error)
	ListUsers(ctx context.Context) ([]types.User, error)
}

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name     string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=teacher administrator"`
}

// UserService encapsulates account registration and authentication.
type UserService struct {
	repo     UserRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Register creates an account. The email is lowercased and must be unique
// across the collection; the password is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (types.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role == "" {
		input.Role = types.RoleTeacher
	}
	if err := s.validate.Struct(input); err != nil {
		return types.User{}, fmt.Errorf("%w: %v", store.ErrValidation, err)
	}

	if _, err := s.repo.GetUserByEmail(ctx, input.Email); err == nil {
		return types.User{}, fmt.Errorf("%w: email already registered", store.ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.CreateUser(ctx, types.User{
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		PasswordHash: string(hashed),
		CreatedAt:    types.DateTimeOf(s.now()),
	})
}

// Authenticate verifies credentials and returns the matching account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}
