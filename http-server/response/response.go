package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/internal/session"
	"hat-costing/internal/storage"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

// InvalidOrInternal answers 400 for rejected input and 500 for anything else.
func InvalidOrInternal(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	if errors.Is(err, storage.ErrInvalidInput) {
		log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Rejected input")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "잘못된 입력값입니다.", Detail: err.Error()})
		return
	}

	log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Request failed")
	Error(w, r, http.StatusInternalServerError, "Internal error")
}

// State pulls the session bound by the session middleware.
func State(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string) (*session.State, bool) {
	st := session.FromContext(r.Context())
	if st == nil {
		log.With(slog.String("op", op)).Error("No session in request context")
		Error(w, r, http.StatusInternalServerError, "Internal error")
		return nil, false
	}
	return st, true
}
