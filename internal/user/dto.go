// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=4,max=60"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Address  string `json:"address"  validate:"required,max=400"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role"     validate:"required,role"`
}

type UpdateUserRequest struct {
	Name    string `json:"name"    validate:"required,min=4,max=60"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Address string `json:"address" validate:"required,max=400"`
	Role    string `json:"role"    validate:"required,role"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,password"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int
	PageSize int
	Name     string
	Email    string
	Address  string
	Role     string
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
