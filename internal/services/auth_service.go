package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskbridge/taskbridge-api/internal/constants"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
	"github.com/taskbridge/taskbridge-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, credential checks and the password
// reset one-time code. Token issuance lives here; the delivery channel for
// the code is out of scope.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// Register creates a new user account.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationErrorf("name is required")
	}

	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, validationErrorf("email is required")
	}

	if len(input.Password) < constants.MinPasswordLength {
		return nil, validationErrorf("password must be at least %d characters", constants.MinPasswordLength)
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, validationErrorf("invalid role %q", role)
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token string
	Role  models.Role
	User  *models.User
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Suspended {
		return nil, ErrAccountSuspended
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{Token: token, Role: user.Role, User: user}, nil
}

// RequestPasswordReset generates a short-lived one-time code and stores it
// on the user row. The code is returned to the caller; delivering it out of
// band is the excluded flow's job.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	expiry := time.Now().Add(constants.OTPLifetime)
	user.OTP = otp
	user.OTPExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	return otp, nil
}

// ResetPassword consumes a one-time code and replaces the password.
func (s *AuthService) ResetPassword(email, otp, newPassword string) error {
	if otp == "" {
		return validationErrorf("one-time code is required")
	}
	if len(newPassword) < constants.MinPasswordLength {
		return validationErrorf("password must be at least %d characters", constants.MinPasswordLength)
	}

	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.OTP == "" || user.OTP != otp {
		return ErrInvalidOTP
	}
	if user.OTPExpiry == nil || user.OTPExpiry.Before(time.Now()) {
		return ErrExpiredOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.OTP = ""
	user.OTPExpiry = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
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

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
