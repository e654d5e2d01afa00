package clear

import (
	"log/slog"
	"net/http"

	"hat-costing/http-server/response"
	"hat-costing/internal/session"
)

type ScrapsCleaner interface {
	ClearScraps(st *session.State)
}

func ClearScraps(log *slog.Logger, cleaner ScrapsCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scraps.clear.ClearScraps"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		cleaner.ClearScraps(st)

		w.WriteHeader(http.StatusNoContent)
	}
}
