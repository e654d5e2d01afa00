package calculation

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

type Calculator interface {
	Recalculate(st *session.State) (service.Calculation, error)
	Compute(form storage.Form, materials []storage.MaterialLine) (service.Calculation, error)
}

// GetCalculation recomputes from what the session currently holds.
func GetCalculation(log *slog.Logger, calc Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculation.GetCalculation"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		res, err := calc.Recalculate(st)
		if err != nil {
			response.InvalidOrInternal(w, r, log, op, err)
			return
		}

		render.JSON(w, r, res)
	}
}

type Request struct {
	ProductName string                 `json:"product_name"`
	Inputs      storage.CostInputs     `json:"inputs"`
	Materials   []storage.MaterialLine `json:"materials"`
}

// CalculateCost prices an arbitrary form without touching the session.
// Missing materials fall back to the default table.
func CalculateCost(log *slog.Logger, calc Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculation.CalculateCost"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "Некорректный JSON")
			return
		}

		if req.Materials == nil {
			req.Materials = storage.DefaultMaterials()
		}
		if ch, err := constants.ParseChannel(string(req.Inputs.Channel)); err == nil {
			req.Inputs.Channel = ch
		}

		res, err := calc.Compute(storage.Form{ProductName: req.ProductName, Inputs: req.Inputs}, req.Materials)
		if err != nil {
			response.InvalidOrInternal(w, r, log, op, err)
			return
		}

		render.JSON(w, r, res)
	}
}
