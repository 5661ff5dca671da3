// AngelaMos | 2026
// handler.go

package rating

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/ratings", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/all", h.ListAll)
		r.Get("/store/{storeID}", h.ListForStore)
		r.Post("/{storeID}", h.Submit)
		r.Get("/{storeID}/me", h.GetOwn)
		r.Get("/{storeID}/user", h.GetOwn)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	storeID, err := core.IDParam(r, "storeID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req SubmitRatingRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	rt, err := h.service.Submit(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		storeID,
		req,
	)
	if err != nil {
		writeError(w, err, "store")
		return
	}

	core.OK(w, ToRatingResponse(rt))
}

func (h *Handler) GetOwn(w http.ResponseWriter, r *http.Request) {
	storeID, err := core.IDParam(r, "storeID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	rt, err := h.service.GetOwn(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		storeID,
	)
	if err != nil {
		writeError(w, err, "rating")
		return
	}

	core.OK(w, ToRatingResponse(rt))
}

func (h *Handler) ListForStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := core.IDParam(r, "storeID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	rows, err := h.service.ListForStore(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		storeID,
	)
	if err != nil {
		writeError(w, err, "store")
		return
	}

	core.OK(w, ToStoreRatingResponses(rows))
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListAll(r.Context(), middleware.SubjectFrom(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToDetailedRatingResponses(rows))
}

func writeError(w http.ResponseWriter, err error, resource string) {
	if errors.Is(err, core.ErrNotFound) && !core.IsAppError(err) {
		core.NotFound(w, resource)
		return
	}
	core.JSONError(w, err)
}
