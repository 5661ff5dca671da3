// AngelaMos | 2026
// handler.go

package store

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
	r.Route("/stores", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{storeID}", h.Get)
		r.Put("/{storeID}", h.Update)
		r.Delete("/{storeID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	store, err := h.service.Create(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToStoreResponse(store))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListStoresParams{
		Name:    q.Get("name"),
		Address: q.Get("address"),
	}

	rows, err := h.service.List(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		params,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToListingResponses(rows))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, err := core.IDParam(r, "storeID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	store, avg, err := h.service.Get(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		storeID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToRatedStoreResponse(store, avg))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	storeID, err := core.IDParam(r, "storeID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateStoreRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	store, err := h.service.Update(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		storeID,
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToStoreResponse(store))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	storeID, err := core.IDParam(r, "storeID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	err = h.service.Delete(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		storeID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "store deleted"})
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) && !core.IsAppError(err) {
		core.NotFound(w, "store")
		return
	}
	core.JSONError(w, err)
}
