package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"demo/marketplace/internal/logger"
)

const requestIDHeader = "X-Request-Id"

// NewRouter mounts the order API under /api. A positive requestTimeout
// bounds every request, store calls included.
func NewRouter(h *Handler, log *zap.Logger, requestTimeout time.Duration) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusNotFound, "Not found")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/order", h.SubmitOrder)
		r.Get("/orders", h.ListOrders)
		r.Post("/buy", h.RecordPurchase)
	})

	return r
}

// requestLogger tags each request with a trace id, echoes it back in the
// response and logs the outcome once the handler returns.
func requestLogger(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(requestIDHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}
			w.Header().Set(requestIDHeader, traceID)

			log := base.With(zap.String("traceId", traceID))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), log)))

			log.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
