package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"invite-quiz-service/internal/lib/api/response"
	"invite-quiz-service/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// RequestID tags each request with the caller's X-Request-Id or a fresh UUID
// and stores it where middleware.GetReqID finds it. Unlike chi's
// middleware.RequestID it echoes the id on the response, so a client can quote
// it when reporting a failed call, and the UUID form matches the ids minted for
// questions.
func RequestID(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

// RequestLogger logs one line per request with status, size and duration.
func RequestLogger(log *slog.Logger) func(next http.Handler) http.Handler {
	mod := sl.Module("http.middleware")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			if xRemote := r.Header.Get("X-Forwarded-For"); xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				logger.With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// AdminOnly rejects requests while no admin session is active.
func AdminOnly(log *slog.Logger, ctrl Controller) func(next http.Handler) http.Handler {
	mod := sl.Module("http.middleware.admin")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if !ctrl.IsAdmin() {
				log.With(mod).Debug("admin route without admin session", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Admin session required"))
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
