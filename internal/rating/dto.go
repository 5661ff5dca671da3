// AngelaMos | 2026
// dto.go

package rating

import (
	"time"
)

type SubmitRatingRequest struct {
	Rating int `json:"rating" validate:"rating"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StoreRatingResponse struct {
	RatingResponse
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type DetailedRatingResponse struct {
	RatingResponse
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	StoreName string `json:"store_name"`
}

func ToRatingResponse(r *Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Value,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToStoreRatingResponses(rows []StoreRating) []StoreRatingResponse {
	out := make([]StoreRatingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, StoreRatingResponse{
			RatingResponse: ToRatingResponse(&rows[i].Rating),
			UserName:       rows[i].UserName,
			UserEmail:      rows[i].UserEmail,
		})
	}
	return out
}

func ToDetailedRatingResponses(rows []DetailedRating) []DetailedRatingResponse {
	out := make([]DetailedRatingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, DetailedRatingResponse{
			RatingResponse: ToRatingResponse(&rows[i].Rating),
			UserName:       rows[i].UserName,
			UserEmail:      rows[i].UserEmail,
			StoreName:      rows[i].StoreName,
		})
	}
	return out
}
