// AngelaMos | 2026
// entity.go

package store

import (
	"time"
)

type Store struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	OwnerID   *string   `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *Store) Owner() string {
	if s.OwnerID == nil {
		return ""
	}
	return *s.OwnerID
}

// Listing is a store together with the aggregate of its current ratings.
type Listing struct {
	Store
	AvgRating   float64 `db:"avg_rating"`
	RatingCount int     `db:"rating_count"`
}
