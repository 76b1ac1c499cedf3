package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// ClientHintHeader is the user-agent client hint for the preferred scheme.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

type requestIDKey struct{}

// requestID reuses an incoming X-Request-ID or generates one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(wrapped, r)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := log.WithFields(map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"size":        wrapped.BytesWritten(),
				"duration":    time.Since(start).String(),
				"remote_addr": r.RemoteAddr,
				"request_id":  RequestID(r.Context()),
			})

			switch {
			case status >= 500:
				entry.Error(nil, "http request")
			case status >= 400:
				entry.Warn("http request")
			default:
				entry.Debug("http request")
			}
		})
	}
}

type clientSchemeKey struct{}

// clientHints records the browser's reported scheme on the request context and
// asks browsers to keep sending it. The hint belongs to one client, so it is
// never published to the resolver.
func clientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", ClientHintHeader)
		w.Header().Add("Vary", ClientHintHeader)

		// Structured header values may arrive quoted.
		hint := strings.Trim(strings.TrimSpace(r.Header.Get(ClientHintHeader)), `"`)
		if scheme, err := theme.ParseResolvedScheme(hint); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), clientSchemeKey{}, scheme))
		}
		next.ServeHTTP(w, r)
	})
}

// ClientScheme returns the scheme the requesting browser reported, if any.
func ClientScheme(ctx context.Context) (theme.ResolvedScheme, bool) {
	scheme, ok := ctx.Value(clientSchemeKey{}).(theme.ResolvedScheme)
	return scheme, ok
}
