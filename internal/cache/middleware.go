package cache

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"
)

// responseRecorder captures the handler's status and body so a 200
// response can be stored after it has been written to the client.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware serves GET responses from the store and fills it through
// on a miss. Only 200 responses are cached; errors talking to the store
// are logged and the request proceeds uncached.
func Middleware(store Store, namespace string, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			key := Key(namespace, r.URL.Path, r.URL.RawQuery)

			if cached, ok, err := store.Get(r.Context(), key); err != nil {
				logger.Warn("cache read failed", "key", key, "error", err)
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				if err := store.Set(r.Context(), key, rec.body.Bytes(), ttl); err != nil {
					logger.Warn("cache write failed", "key", key, "error", err)
				}
			}
		})
	}
}
