package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
	"clipstream/pkg/helpers"
)

const sessionKeyPrefix = "user:session:"

// AuthService covers registration, credential login, token refresh, and the
// Redis-backed session record behind both.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
	SessionID        string    `json:"-"`
}

type sessionRecord struct {
	UserID    string    `json:"user_id"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account with a bcrypt-hashed password. Username and
// email collisions surface as their own errors.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	u.Password = ""
	return u, nil
}

// Login validates the credentials and opens a session. The same error is
// returned for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	u.Password = ""
	return u, pair, nil
}

// IssueTokens mints an access/refresh pair bound to a fresh session id and
// stores the session in Redis for the refresh token's lifetime.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (*TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.IsAdmin, sid)
	if err != nil {
		return nil, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.IsAdmin, sid)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		rec := sessionRecord{UserID: u.ID, IsAdmin: u.IsAdmin, CreatedAt: time.Now()}
		if err := helpers.RedisSetJSON(ctx, s.Redis, sessionKeyPrefix+sid, rec, time.Until(rexp)); err != nil {
			return nil, err
		}
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  aexp,
		RefreshToken:     refresh,
		RefreshExpiresAt: rexp,
		SessionID:        sid,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old session is
// dropped so a stolen refresh token stops working after one use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, *TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if s.Redis != nil && claims.SessionID != "" {
		var rec sessionRecord
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, sessionKeyPrefix+claims.SessionID, &rec)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, ErrInvalidCredentials
		}
	}

	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if s.Redis != nil && claims.SessionID != "" {
		if err := helpers.RedisDel(ctx, s.Redis, sessionKeyPrefix+claims.SessionID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stale session delete failed")
		}
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	u.Password = ""
	return u, pair, nil
}

// Logout invalidates the session behind the given access token claims.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if s.Redis == nil || sessionID == "" {
		return nil
	}
	return helpers.RedisDel(ctx, s.Redis, sessionKeyPrefix+sessionID)
}

// SessionAlive reports whether the session id still has a live record. With
// no Redis configured every parsed token is trusted as-is.
func (s *AuthService) SessionAlive(ctx context.Context, sessionID string) bool {
	if s.Redis == nil || sessionID == "" {
		return true
	}
	var rec sessionRecord
	ok, err := helpers.RedisGetJSON(ctx, s.Redis, sessionKeyPrefix+sessionID, &rec)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("session lookup failed; allowing request")
		}
		return true
	}
	return ok
}

// Me returns the caller's own account, password elided.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Password = ""
	return u, nil
}
