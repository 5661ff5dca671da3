// AngelaMos | 2026
// handler.go

package user

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

// RegisterRoutes mounts /users. extra lets the caller hang further
// authenticated routes (the dashboard) under the same prefix.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	extra ...func(chi.Router),
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Put("/password", h.UpdatePassword)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}", h.UpdateUser)
		r.Delete("/{userID}", h.DeleteUser)

		for _, fn := range extra {
			fn(r)
		}
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListUsersParams{
		Page:     core.IntQuery(r, "page", 1),
		PageSize: core.IntQuery(r, "page_size", 20),
		Name:     q.Get("name"),
		Email:    q.Get("email"),
		Address:  q.Get("address"),
		Role:     q.Get("role"),
	}
	params.Normalize()

	users, total, err := h.service.ListUsers(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		params,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToUserResponseList(users),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	user, err := h.service.CreateUser(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := core.IDParam(r, "userID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	user, err := h.service.GetUser(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		userID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := core.IDParam(r, "userID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateUserRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	user, err := h.service.UpdateUser(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		userID,
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := core.IDParam(r, "userID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	err = h.service.DeleteUser(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		userID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "user deleted"})
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	err := h.service.ChangePassword(
		r.Context(),
		middleware.SubjectFrom(r.Context()),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "password updated"})
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) && !core.IsAppError(err) {
		core.NotFound(w, "user")
		return
	}
	core.JSONError(w, err)
}
