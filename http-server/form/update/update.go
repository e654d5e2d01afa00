package update

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/http-server/response"
	"hat-costing/internal/constants"
	"hat-costing/internal/service"
	"hat-costing/internal/session"
	"hat-costing/internal/storage"
)

type FormUpdater interface {
	UpdateForm(st *session.State, form storage.Form) (service.Calculation, error)
}

// UpdateForm stores the product name and cost inputs and answers with the
// recomputed result. A rejected form keeps the previous one.
func UpdateForm(log *slog.Logger, updater FormUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.form.update.UpdateForm"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		var req storage.Form
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "Некорректный JSON")
			return
		}

		// канал можно прислать и подписью из селекта
		if ch, err := constants.ParseChannel(string(req.Inputs.Channel)); err == nil {
			req.Inputs.Channel = ch
		}

		calc, err := updater.UpdateForm(st, req)
		if err != nil {
			response.InvalidOrInternal(w, r, log, op, err)
			return
		}

		render.JSON(w, r, calc)
	}
}
