// AngelaMos | 2026
// entity.go

package rating

import (
	"time"
)

// Rating is the single current rating a user holds for a store. The
// (user_id, store_id) pair is unique in storage.
type Rating struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	StoreID   string    `db:"store_id"`
	Value     int       `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StoreRating is a rating joined with the identity of the rater.
type StoreRating struct {
	Rating
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

// DetailedRating is a rating joined with both the rater and the store.
type DetailedRating struct {
	Rating
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
	StoreName string `db:"store_name"`
}
