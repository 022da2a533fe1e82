package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nueltech/catalog-service/internal/auth"
	"github.com/nueltech/catalog-service/internal/config"
	"github.com/nueltech/catalog-service/internal/domain"
	"github.com/nueltech/catalog-service/internal/events"
	"github.com/nueltech/catalog-service/internal/repository"
	apperrors "github.com/nueltech/catalog-service/pkg/util"
)

const minPasswordLength = 6

// AuthService coordinates registration, login and password reset flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Dispatcher        events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.SigningSecret(), cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a new account. The admin flag is always false here;
// elevated accounts are only created out of band (cmd/createadmin).
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if err := validateRegistration(input); err != nil {
		return nil, "", time.Time{}, err
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index resolves registration races; losing the race
		// reads the same as the pre-check above.
		if repository.IsUniqueViolation(err) {
			return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventUserRegistered,
		EntityID: user.ID,
		Payload:  events.UserRegisteredPayload{Name: user.Name, Email: user.Email},
	})
	return user, token, exp, nil
}

// Login authenticates a user and issues a fresh token.
//
// An unknown email answers 404 while a wrong password answers 401, which
// discloses account existence. This mirrors the upstream API contract and
// is kept deliberately; collapsing both into 401 needs a product decision
// because the SPA distinguishes the two cases.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("user", nil)
		}
		return nil, "", time.Time{}, err
	}

	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// RequestPasswordReset persists a single-use reset token for the email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and rewrites the hash.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}

	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("invalid reset token", nil)
		}
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("reset token expired or already used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, token.UserID, hash); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func validateRegistration(input RegisterInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return apperrors.NewValidationError("invalid email address", nil)
	}
	if len(input.Password) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	// Plaintext equality is checked before any hashing happens.
	if input.Password != input.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match", nil)
	}
	return nil
}
