package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

// Config holds token issuance settings.
type Config struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// LoginResult is what the login endpoint returns to the client.
type LoginResult struct {
	Token   string          `json:"token"`
	User    *domain.User    `json:"user"`
	Session *domain.Session `json:"session"`
}

// Login checks the credentials and issues a signed token plus a cached
// session. Wrong email and wrong password are indistinguishable to the
// caller.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrBadCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.SessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(user, session)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &LoginResult{Token: token, User: user, Session: session}, nil
}

// RefreshSession extends a cached session and returns it.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(uc.cfg.SessionTTL.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(uc.cfg.SessionTTL)
	return session, nil
}

// RevokeSession drops a cached session.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(user *domain.User, session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       string(user.Role),
		"session_id": session.ID,
		"iss":        uc.cfg.Issuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.Secret))
}
