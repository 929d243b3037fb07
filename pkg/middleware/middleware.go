package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

// ActorHeader carries the authenticated person's id. Authentication itself
// happens upstream; an absent header means a background or anonymous call.
const ActorHeader = "X-Actor-ID"

func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

func WithActor() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(ActorHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			actorID, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid actor id", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithActorID(r.Context(), actorID)))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogger attaches a per-request logrus entry to the context and
// emits one line per request with method, path, status and duration.
func RequestLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"request_id": uuid.NewString(),
			})

			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r.WithContext(composables.WithLogger(r.Context(), entry)))

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}
			entry.WithFields(logrus.Fields{
				"status":   status,
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
