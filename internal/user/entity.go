// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/store-ratings/internal/policy"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Address      string    `db:"address"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == policy.RoleAdmin
}

func (u *User) IsOwner() bool {
	return u.Role == policy.RoleOwner
}
