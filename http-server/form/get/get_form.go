package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/http-server/response"
)

func GetForm(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.form.get.GetForm"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		form, _ := st.Snapshot()

		render.JSON(w, r, form)
	}
}
