package login

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/http-server/response"
)

type Authorizer interface {
	Authorize(credential string) bool
}

type Request struct {
	Password string `json:"password"`
}

type Response struct {
	Authenticated bool `json:"authenticated"`
}

// Login checks the shared password and marks the session as authorized.
func Login(log *slog.Logger, authz Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.Login"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "Некорректный JSON")
			return
		}

		if !authz.Authorize(req.Password) {
			log.With(slog.String("op", op), slog.String("session", st.ID)).Warn("wrong access password")
			response.Error(w, r, http.StatusUnauthorized, "비밀번호가 틀렸습니다.")
			return
		}

		st.SetAuthorized(true)

		render.JSON(w, r, Response{Authenticated: true})
	}
}

func Logout(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.Logout"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		st.SetAuthorized(false)

		render.JSON(w, r, Response{Authenticated: false})
	}
}
