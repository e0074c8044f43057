package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rideconnect/rideconnect-api/internal/logging"
	"github.com/rideconnect/rideconnect-api/internal/user"
)

var (
	ErrValidation              = errors.New("invalid payload")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrNoSecurityQuestion      = errors.New("no security question set for this account")
	ErrIncorrectSecurityAnswer = errors.New("incorrect security answer")
)

// SignupInput is the validated signup payload
type SignupInput struct {
	Name             string
	Email            string
	Password         string
	SecurityQuestion string
	SecurityAnswer   string
}

// Service handles authentication business logic
type Service struct {
	users         UserStore
	tokens        TokenService
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(users UserStore, tokens TokenService, logger *logging.Logger, tokenDuration time.Duration) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Signup creates a new account and issues a bearer token
func (s *Service) Signup(ctx context.Context, in SignupInput) (*user.User, string, error) {
	if err := validateSignup(in); err != nil {
		return nil, "", err
	}

	passwordHash, err := hashSecret(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Security answers are compared case-insensitively, so hash the
	// lowercased form.
	answerHash, err := hashSecret(strings.ToLower(in.SecurityAnswer))
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash security answer: %w", err)
	}

	newUser, err := s.users.Create(ctx, strings.TrimSpace(in.Name), in.Email, passwordHash, strings.TrimSpace(in.SecurityQuestion), answerHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", user.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return newUser, token, nil
}

// Login authenticates a user by email and password and issues a bearer token
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !verifySecret(existingUser.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existingUser.ID, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return existingUser, token, nil
}

// SecurityQuestion returns the recovery question for the given email
func (s *Service) SecurityQuestion(ctx context.Context, email string) (string, error) {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", user.ErrNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	// Accounts created before the recovery flow existed may have no question
	if existingUser.SecurityQuestion == "" {
		return "", ErrNoSecurityQuestion
	}

	return existingUser.SecurityQuestion, nil
}

// ResetPassword replaces the password hash after verifying the recovery answer.
// The old password stops working as soon as this returns.
func (s *Service) ResetPassword(ctx context.Context, email, securityAnswer, newPassword string) error {
	if email == "" || securityAnswer == "" || newPassword == "" {
		return fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if existingUser.SecurityAnswerHash == "" {
		return ErrNoSecurityQuestion
	}

	if !verifySecret(existingUser.SecurityAnswerHash, strings.ToLower(securityAnswer)) {
		return ErrIncorrectSecurityAnswer
	}

	passwordHash, err := hashSecret(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, existingUser.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password reset", "user_id", existingUser.ID)

	return nil
}

func validateSignup(in SignupInput) error {
	if len(strings.TrimSpace(in.Name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	if len(in.Email) > 254 {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if len(strings.TrimSpace(in.SecurityQuestion)) < 5 {
		return fmt.Errorf("%w: security question must be at least 5 characters", ErrValidation)
	}
	if len(strings.TrimSpace(in.SecurityAnswer)) < 2 {
		return fmt.Errorf("%w: security answer must be at least 2 characters", ErrValidation)
	}
	return nil
}

// hashSecret creates a bcrypt hash of the given secret
func hashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifySecret checks a secret against its stored bcrypt hash
func verifySecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
