package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/http-server/response"
	"hat-costing/internal/service/pricing"
	"hat-costing/internal/storage"
)

type Response struct {
	Materials    []storage.MaterialLine `json:"materials"`
	MaterialCost float64                `json:"material_cost"`
}

func GetMaterials(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.materials.get.GetMaterials"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		_, materials := st.Snapshot()

		render.JSON(w, r, Response{
			Materials:    materials,
			MaterialCost: pricing.MaterialCost(materials),
		})
	}
}
