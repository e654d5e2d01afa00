package save

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/http-server/response"
	"hat-costing/internal/session"
	"hat-costing/internal/storage"
)

type ScrapSaver interface {
	Save(st *session.State, productName string) (storage.ScrapEntry, error)
}

type Request struct {
	ProductName string `json:"product_name"`
}

type Response struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Entry   storage.ScrapEntry `json:"entry"`
}

// SaveScrap appends the current calculation to the session's scrap list.
// The body is optional.
func SaveScrap(log *slog.Logger, saver ScrapSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scraps.save.SaveScrap"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(w, r, http.StatusBadRequest, "ошибка парсинга JSON")
			return
		}

		entry, err := saver.Save(st, req.ProductName)
		if err != nil {
			response.InvalidOrInternal(w, r, log, op, err)
			return
		}

		log.Info("scrap saved", slog.String("op", op), slog.String("product", entry.ProductName))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Status:  "created",
			Message: "'" + entry.ProductName + "' 저장 완료!",
			Entry:   entry,
		})
	}
}
