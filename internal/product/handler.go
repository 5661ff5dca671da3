// AngelaMos | 2026
// handler.go

package product

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
	r.Route("/products", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/store/{storeID}", h.ListByStore)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	product, err := h.service.Create(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToProductResponse(product))
}

func (h *Handler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := core.IDParam(r, "storeID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	products, err := h.service.ListByStore(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		storeID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToProductResponseList(products))
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) && !core.IsAppError(err) {
		core.NotFound(w, "store")
		return
	}
	core.JSONError(w, err)
}
