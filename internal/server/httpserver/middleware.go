package httpserver

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by the next handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// recoverMiddleware turns a handler panic into a 500 server_error.
func (s *HTTPServer) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(r.Context(), "request panic",
					"uri", r.RequestURI,
					"method", r.Method,
					"panic", p,
					"stack", string(debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError, errorResponse{CodeServerError, "Server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware tags each request with an id, logs the response at a
// level chosen by status and records its latency per route.
func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID, _ = common.MakeRandHexString(8)
		}
		w.Header().Set(requestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(r.Method, route, rec.status, elapsed)

		args := []any{
			"request_id", reqID,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"bytes_sent", rec.bytes,
			"duration", elapsed,
		}
		switch {
		case rec.status >= http.StatusInternalServerError:
			s.logger.Error(r.Context(), "response", args...)
		case rec.status >= http.StatusBadRequest:
			s.logger.Warn(r.Context(), "response", args...)
		default:
			s.logger.Info(r.Context(), "response", args...)
		}
	})
}
