package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/http-server/response"
	"hat-costing/internal/session"
	"hat-costing/internal/storage"
)

type ScrapsProvider interface {
	Scraps(st *session.State) ([]storage.ScrapEntry, []storage.ScrapSummary)
}

type Response struct {
	Count   int                    `json:"count"`
	Entries []storage.ScrapEntry   `json:"entries"`
	Summary []storage.ScrapSummary `json:"summary"`
}

func GetScraps(log *slog.Logger, provider ScrapsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scraps.get.GetScraps"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		entries, summary := provider.Scraps(st)

		render.JSON(w, r, Response{
			Count:   len(entries),
			Entries: entries,
			Summary: summary,
		})
	}
}
