// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/carterperez-dev/store-ratings/internal/auth"
	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/policy"
	"github.com/carterperez-dev/store-ratings/internal/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	account auth.NewAccount,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         account.Name,
		Email:        validation.NormalizeEmail(account.Email),
		Address:      account.Address,
		PasswordHash: account.PasswordHash,
		Role:         account.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// RoleOf reports the role of an existing account.
func (s *Service) RoleOf(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	subject *policy.Subject,
	params ListUsersParams,
) ([]User, int, error) {
	if err := policy.Authorize(subject, policy.ActionUserList, policy.Resource{}); err != nil {
		return nil, 0, err
	}

	if params.Role != "" && !validation.IsValidRole(params.Role) {
		return nil, 0, core.ValidationError("role must be one of: user admin owner")
	}

	params.Normalize()
	return s.repo.List(ctx, params)
}

func (s *Service) GetUser(
	ctx context.Context,
	subject *policy.Subject,
	id string,
) (*User, error) {
	err := policy.Authorize(subject, policy.ActionUserGet, policy.Resource{TargetID: id})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// CreateUser lets an administrator open an account with any role.
func (s *Service) CreateUser(
	ctx context.Context,
	subject *policy.Subject,
	req CreateUserRequest,
) (*User, error) {
	if err := policy.Authorize(subject, policy.ActionUserCreate, policy.Resource{}); err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        validation.NormalizeEmail(req.Email),
		Address:      req.Address,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, duplicateEmail(err)
	}

	return user, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	subject *policy.Subject,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	err := policy.Authorize(subject, policy.ActionUserUpdate, policy.Resource{TargetID: id})
	if err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = validation.NormalizeEmail(req.Email)
	user.Address = req.Address
	user.Role = req.Role

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, ErrOwnsStore) {
			return nil, core.NewAppError(
				err,
				"user owns a store; reassign it before changing their role",
				http.StatusConflict,
				"CONFLICT",
			)
		}
		return nil, duplicateEmail(err)
	}

	return user, nil
}

// DeleteUser removes an account outright. An administrator may remove any
// account except their own.
func (s *Service) DeleteUser(
	ctx context.Context,
	subject *policy.Subject,
	id string,
) error {
	err := policy.Authorize(subject, policy.ActionUserDelete, policy.Resource{TargetID: id})
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ChangePassword(
	ctx context.Context,
	subject *policy.Subject,
	req UpdatePasswordRequest,
) error {
	var target string
	if subject != nil {
		target = subject.ID
	}

	err := policy.Authorize(subject, policy.ActionUserUpdatePassword, policy.Resource{TargetID: target})
	if err != nil {
		return err
	}

	if err := validation.Struct(req); err != nil {
		return err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, subject.ID, hash)
}

func duplicateEmail(err error) error {
	if errors.Is(err, core.ErrDuplicateKey) {
		return core.DuplicateError("email")
	}
	return err
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Address:      u.Address,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
