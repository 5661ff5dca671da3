// AngelaMos | 2026
// handler.go

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/middleware"
	"github.com/carterperez-dev/store-ratings/internal/store"
	"github.com/carterperez-dev/store-ratings/internal/user"
)

type Response struct {
	TotalUsers   int                   `json:"total_users"`
	TotalStores  int                   `json:"total_stores"`
	TotalRatings int                   `json:"total_ratings"`
	RecentUsers  []user.UserResponse   `json:"recent_users"`
	TopStores    []store.StoreResponse `json:"top_stores"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes is mounted inside an already authenticated router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats/dashboard", h.Get)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Build(r.Context(), middleware.SubjectFrom(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, Response{
		TotalUsers:   d.TotalUsers,
		TotalStores:  d.TotalStores,
		TotalRatings: d.TotalRatings,
		RecentUsers:  user.ToUserResponseList(d.RecentUsers),
		TopStores:    store.ToListingResponses(d.TopStores),
	})
}
