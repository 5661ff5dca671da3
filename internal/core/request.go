// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads a single JSON object from the request body.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ValidationError("invalid request body")
	}

	return nil
}

// IDParam returns the named chi URL parameter when it is a well formed id.
func IDParam(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if err := uuid.Validate(id); err != nil {
		return "", ValidationError(name + " must be a valid id")
	}
	return id, nil
}

func IntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
