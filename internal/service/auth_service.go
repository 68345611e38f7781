package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/GowthamiKadiyala/workout-tracker/internal/auth"
	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"
	"github.com/GowthamiKadiyala/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
)

// bcrypt only looks at the first 72 bytes of a password.
const maxPasswordBytes = 72

// AuthService registers users, logs them in and verifies session tokens.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Verify(ctx context.Context, token string) (userID string, err error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   *auth.TokenIssuer
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register stores a new user with a hashed password. The insert itself detects
// duplicates, so two concurrent registrations of one email cannot both succeed.
func (s *authService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	if len(password) > maxPasswordBytes {
		return nil, validationError("password must be at most %d bytes", maxPasswordBytes)
	}
	// A display name or angle brackets would let one mailbox register twice.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, validationError("email is malformed")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, validationError("password cannot be hashed: %v", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashed,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, storageError("create user", err)
	}
	user.ID = userID

	log.WithField("userId", userID.Hex()).Info("user registered")

	user.PasswordHash = ""
	return user, nil
}

// Login checks the password against the stored hash and issues a session token.
// An unknown email is NotFound; a known email with a wrong password is Unauthorized.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, storageError("get user by email", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.WithError(err).WithField("userId", user.ID.Hex()).Warn("stored password hash cannot be compared")
		}
		return "", nil, ErrInvalidPassword
	}

	token, _, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		log.WithError(err).Error("sign session token")
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Verify returns the user id carried by a valid token.
func (s *authService) Verify(_ context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		log.WithError(err).Debug("token verification failed")
		return "", ErrInvalidToken
	}
	return userID, nil
}

func validateCredentials(email, password string) error {
	if email == "" {
		return validationError("email cannot be empty")
	}
	if password == "" {
		return validationError("password cannot be empty")
	}
	return nil
}
