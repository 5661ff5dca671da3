// AngelaMos | 2026
// dto.go

package store

import (
	"time"
)

type CreateStoreRequest struct {
	Name    string `json:"name"     validate:"required,min=1,max=60"`
	Email   string `json:"email"    validate:"required,email,max=255"`
	Address string `json:"address"  validate:"required,max=400"`
	OwnerID string `json:"owner_id" validate:"omitempty,uuid"`
}

type UpdateStoreRequest struct {
	Name    string `json:"name"     validate:"required,min=1,max=60"`
	Email   string `json:"email"    validate:"required,email,max=255"`
	Address string `json:"address"  validate:"required,max=400"`
	OwnerID string `json:"owner_id" validate:"omitempty,uuid"`
}

type ListStoresParams struct {
	Name    string
	Address string
}

type StoreResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	OwnerID     *string   `json:"owner_id"`
	AvgRating   *float64  `json:"avg_rating,omitempty"`
	RatingCount *int      `json:"rating_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToStoreResponse(s *Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ToRatedStoreResponse(s *Store, avg float64) StoreResponse {
	resp := ToStoreResponse(s)
	resp.AvgRating = &avg
	return resp
}

func ToListingResponses(rows []Listing) []StoreResponse {
	out := make([]StoreResponse, 0, len(rows))
	for i := range rows {
		resp := ToRatedStoreResponse(&rows[i].Store, rows[i].AvgRating)
		count := rows[i].RatingCount
		resp.RatingCount = &count
		out = append(out, resp)
	}
	return out
}
