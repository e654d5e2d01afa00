package update

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/http-server/response"
	"hat-costing/internal/service"
	"hat-costing/internal/session"
	"hat-costing/internal/storage"
)

type MaterialsUpdater interface {
	UpdateMaterials(st *session.State, lines []storage.MaterialLine) (service.Calculation, error)
	ResetMaterials(st *session.State) (service.Calculation, error)
}

type Request struct {
	Materials []storage.MaterialLine `json:"materials"`
}

type Response struct {
	Materials   []storage.MaterialLine `json:"materials"`
	Calculation service.Calculation    `json:"calculation"`
}

// UpdateMaterials replaces the whole BOM table; rows are added or removed on the client.
func UpdateMaterials(log *slog.Logger, updater MaterialsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.materials.update.UpdateMaterials"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "Некорректный JSON")
			return
		}

		if req.Materials == nil {
			req.Materials = []storage.MaterialLine{}
		}

		calc, err := updater.UpdateMaterials(st, req.Materials)
		if err != nil {
			response.InvalidOrInternal(w, r, log, op, err)
			return
		}

		_, materials := st.Snapshot()

		render.JSON(w, r, Response{Materials: materials, Calculation: calc})
	}
}

func ResetMaterials(log *slog.Logger, updater MaterialsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.materials.update.ResetMaterials"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		calc, err := updater.ResetMaterials(st)
		if err != nil {
			response.InvalidOrInternal(w, r, log, op, err)
			return
		}

		_, materials := st.Snapshot()

		render.JSON(w, r, Response{Materials: materials, Calculation: calc})
	}
}
