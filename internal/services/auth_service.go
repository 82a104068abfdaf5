package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrMissingRegistrationFields = errors.New("username, email and password are required")
	ErrMissingLoginFields        = errors.New("email and password are required")
	ErrUsernameTooShort          = errors.New("username too short")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrPasswordTooShort          = errors.New("password too short")
	ErrUserAlreadyExists         = errors.New("username or email already exists")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrUserNotFound              = errors.New("user not found")
	ErrFailedToHashPassword      = errors.New("failed to hash password")
	ErrFailedToIssueToken        = errors.New("failed to issue token")
)

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService. Tokens it issues expire after tokenTTL.
func NewAuthService(userRepo repository.UserRepository, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = constants.TokenTTL
	}
	return &AuthService{
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user. Username and email must both be unused.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := utils.NormalizeEmail(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return nil, ErrMissingRegistrationFields
	}
	if utf8.RuneCountInString(username) < constants.MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsernameOrEmail(username, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is a successful authentication: a signed token and its user.
type AuthResult struct {
	Token string
	User  *models.User
}

// Authenticate verifies credentials and issues a bearer token. An unknown
// email and a wrong password produce the same error.
func (s *AuthService) Authenticate(input LoginInput) (*AuthResult, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingLoginFields
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, s.tokenTTL)
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
