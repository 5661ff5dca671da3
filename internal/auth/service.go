// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/middleware"
	"github.com/carterperez-dev/store-ratings/internal/policy"
	"github.com/carterperez-dev/store-ratings/internal/validation"
)

const revokedKeyPrefix = "revoked:"

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", core.ErrUnauthorized)

type UserInfo struct {
	ID           string
	Name         string
	Email        string
	Address      string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type NewAccount struct {
	Name         string
	Email        string
	Address      string
	PasswordHash string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(ctx context.Context, account NewAccount) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Options struct {
	AllowAdminSignup bool
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	redis        *redis.Client
	opts         Options
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	redisClient *redis.Client,
	opts Options,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		redis:        redisClient,
		opts:         opts,
	}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	if err := policy.Authorize(nil, policy.ActionSignup, policy.Resource{}); err != nil {
		return nil, err
	}

	if req.Role == "" {
		req.Role = policy.RoleUser
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Role == policy.RoleAdmin && !s.opts.AllowAdminSignup {
		return nil, core.ValidationError("role admin cannot be chosen at signup")
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, NewAccount{
		Name:         req.Name,
		Email:        validation.NormalizeEmail(req.Email),
		Address:      req.Address,
		PasswordHash: passwordHash,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("email")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := policy.Authorize(nil, policy.ActionLogin, policy.Resource{}); err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userProvider.GetByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, invalidCredentials()
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed", "user_id", user.ID, "error", err)
		}
	}

	issued, err := s.jwt.CreateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresAt: issued.ExpiresAt,
		User:      toUserResponse(user),
	}, nil
}

// Logout revokes the presented credential until it would have expired on
// its own.
func (s *Service) Logout(
	ctx context.Context,
	subject *policy.Subject,
	claims *middleware.AccessTokenClaims,
) error {
	if err := policy.Authorize(subject, policy.ActionLogout, policy.Resource{}); err != nil {
		return err
	}

	if claims == nil || claims.TokenID == "" {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, revokedKeyPrefix+claims.TokenID, subject.ID, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

// VerifyAccessToken validates the credential and rejects revoked ones. An
// unreachable revocation list lets the credential through.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.ParseAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.isRevoked(ctx, claims.TokenID)
	if err != nil {
		slog.WarnContext(ctx, "revocation check failed, allowing token",
			"error", err,
			"user_id", claims.UserID,
		)
		return claims, nil
	}

	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) isRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := s.redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return exists > 0, nil
}

func invalidCredentials() error {
	return core.NewAppError(
		ErrInvalidCredentials,
		"invalid email or password",
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

var _ middleware.TokenVerifier = (*Service)(nil)
