package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Insomnium-Eye/oaxacahouse/internal/observability"
)

// Logger stores a request-scoped zap logger in context and emits one structured line per request.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			rid := chiMid.GetReqID(ctx)
			logger := base.With(
				zap.String("request_id", rid),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			if ip := clientIP(r); ip != "" {
				logger = logger.With(zap.String("remote_ip", ip))
			}
			ctx = observability.WithLogger(ctx, logger)
			r = r.WithContext(ctx)

			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			route := routePattern(r)
			span := trace.SpanFromContext(ctx)
			span.SetAttributes(semconv.HTTPRoute(route), semconv.HTTPResponseStatusCode(rw.status))
			if rw.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rw.status))
			}

			fields := []zap.Field{
				zap.String("route", route),
				zap.Int("status", rw.status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes", rw.bytes),
			}
			// HTMX runs further in, so read the headers here
			if h, ok := htmxHeaders(r); ok {
				fields = append(fields, zap.Bool("htmx", true), zap.String("hx_trigger", h.Trigger))
			}
			switch {
			case rw.hijacked:
				logger.Info("connection upgraded", fields...)
			case rw.status >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case rw.status >= http.StatusBadRequest:
				logger.Warn("request completed", fields...)
			default:
				logger.Info("request completed", fields...)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status   int
	bytes    int64
	hijacked bool
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("middleware: response writer does not support hijacking")
	}
	w.hijacked = true
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func clientIP(r *http.Request) string {
	// chi's RealIP has already folded X-Forwarded-For / X-Real-IP into RemoteAddr
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
