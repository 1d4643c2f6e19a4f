package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mfakit/mfakit/pkg/logger"
)

// HealthCheckHandler composes dependency probes into a health endpoint.
// With no probes it is a liveness check answering 200 "ALIVE". With probes
// (the pg pool ping, the redis ping) it is a readiness check: 200 "READY"
// when all pass, 500 "NOT_READY" when any fails, with the failure logged.
func HealthCheckHandler(ctx context.Context, log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ALIVE"))
			return
		}

		for _, probe := range probes {
			if err := probe(ctx); err != nil {
				log.ErrorContext(ctx, "readiness probe failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
