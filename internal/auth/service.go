package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/badoux/checkmail"
	"github.com/sebuszqo/MyFinance/internal/user"
)

var (
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingFields      = errors.New("Missing required fields")
	ErrInvalidEmail       = errors.New("Invalid email address")
	ErrEmailAlreadyExists = user.ErrEmailAlreadyExists
	ErrInternalError      = errors.New("Internal server error")
)

type Service interface {
	Register(ctx context.Context, email, password string) (string, *user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	Logout(sessionToken string)
	Authenticate(sessionToken string) (string, error)
	SessionMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService    user.Service
	sessionManager SessionManagerInterface
	hasher         PasswordHasher
	logger         *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(userService user.Service, sessionManager SessionManagerInterface, hasher PasswordHasher, logger *slog.Logger) Service {
	return &service{
		userService:    userService,
		sessionManager: sessionManager,
		hasher:         hasher,
		logger:         logger,
	}
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates the account and opens its first session.
func (s *service) Register(ctx context.Context, email, password string) (string, *user.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}
	if err := validateEmailAddress(email); err != nil {
		return "", nil, err
	}

	if _, err := s.userService.GetUserByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return "", nil, fmt.Errorf("could not look up user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, err
	}

	newUser, err := s.userService.CreateUser(ctx, email, passwordHash)
	if err != nil {
		return "", nil, err
	}

	token, err := s.sessionManager.GenerateSessionToken(newUser.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", newUser.ID)
	return token, newUser, nil
}

// verifyUnknown spends the same hashing work as a real password check so an
// unknown email is not distinguishable by response time.
func (s *service) verifyUnknown(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("myfinance-unknown-user")
		if err != nil {
			s.logger.Error("could not prepare dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	s.hasher.Verify(s.dummyHash, password)
}

func (s *service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	existingUser, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.verifyUnknown(password)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("could not look up user: %w", err)
	}

	if !s.hasher.Verify(existingUser.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessionManager.GenerateSessionToken(existingUser.ID)
	if err != nil {
		return "", nil, err
	}
	return token, existingUser, nil
}

func (s *service) Logout(sessionToken string) {
	if sessionToken == "" {
		return
	}
	s.sessionManager.DeleteSessionToken(sessionToken)
}

func (s *service) Authenticate(sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", ErrUnauthorized
	}
	userID, err := s.sessionManager.VerifySessionToken(sessionToken)
	if err != nil {
		return "", ErrUnauthorized
	}
	return userID, nil
}
