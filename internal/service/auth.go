package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/DenisMurerwa/EBU/internal/model"
	"github.com/DenisMurerwa/EBU/internal/repository"
)

// Auth-related errors.
var (
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles registration, login and session resolution.
type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	bcryptCost  int
	sessionTTL  time.Duration
	adminPhones []string
}

// NewAuthService creates a new AuthService instance. adminPhones is the
// bootstrap allow-list: registrations from a listed (normalized) phone
// number are granted the admin flag.
func NewAuthService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	bcryptCost int,
	sessionTTL time.Duration,
	adminPhones []string,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		bcryptCost:  bcryptCost,
		sessionTTL:  sessionTTL,
		adminPhones: adminPhones,
	}
}

// Register validates and creates a new user account. The password is
// stored as a bcrypt hash. Duplicate phone or national id surfaces as
// repository.ErrDuplicatePhone / ErrDuplicateNationalID with no write.
func (s *AuthService) Register(ctx context.Context, name, phone, nationalID, password string) (*model.User, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if err := ValidateNationalID(nationalID); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	isAdmin := s.isAdminPhone(normalizedPhone)

	user, err := s.userRepo.Create(ctx, strings.TrimSpace(name), normalizedPhone, strings.TrimSpace(nationalID), string(hash), isAdmin)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and opens a session. Unknown phone and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*model.User, *model.Session, error) {
	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByPhone(ctx, normalizedPhone)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.sessionRepo.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session: %w", err)
	}

	return user, session, nil
}

// Logout invalidates a session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// Authenticate resolves a session token to its user. A missing or expired
// session surfaces as ErrSessionExpired; expired sessions are removed.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}

	session, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	if session.Expired(time.Now()) {
		_ = s.sessionRepo.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Account deleted out from under the session.
			_ = s.sessionRepo.Delete(ctx, token)
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves registered users, newest first.
func (s *AuthService) ListUsers(ctx context.Context, limit int) ([]*model.User, error) {
	return s.userRepo.List(ctx, limit)
}

func (s *AuthService) isAdminPhone(phone string) bool {
	for _, p := range s.adminPhones {
		if normalized, err := NormalizePhone(p); err == nil && normalized == phone {
			return true
		}
	}
	return false
}
