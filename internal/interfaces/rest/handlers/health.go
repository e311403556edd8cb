package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports 503 when the database does not answer within two seconds.
func Health(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("health check failed", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UNAVAILABLE","message":"database unreachable"}}`))
			return
		}

		rest.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func Banner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("storefront server is running\n"))
}
