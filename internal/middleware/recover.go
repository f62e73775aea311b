package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// maxCapturedBody bounds how much of a request body is retained for debug
// error payloads.
const maxCapturedBody = 8 * 1024

type errorDetail struct {
	Error       string `json:"error"`
	StackTrace  string `json:"stackTrace"`
	RequestBody string `json:"requestBody,omitempty"`
}

type errorPayload struct {
	Message       string       `json:"message"`
	CorrelationID string       `json:"correlationId"`
	Path          string       `json:"path"`
	Timestamp     time.Time    `json:"timestamp"`
	Detail        *errorDetail `json:"detail,omitempty"`
}

// DebugPredicate decides whether a request may receive error details. Detail
// exposure is never the default: it requires development mode, an explicit
// configuration flag, or the debug request header.
type DebugPredicate func(r *http.Request) bool

// AllowDebug builds the standard predicate from config state.
func AllowDebug(isDevelopment, debugFlag bool) DebugPredicate {
	return func(r *http.Request) bool {
		return isDevelopment || debugFlag || r.Header.Get("X-Debug-Errors") == "true"
	}
}

// Recoverer is the outermost error boundary: it turns panics into the
// structured 500 payload, logging with the request's correlation id. Stack
// traces and captured request bodies appear only when allowDebug approves.
func Recoverer(allowDebug DebugPredicate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			debugAllowed := allowDebug(r)

			var captured []byte
			if debugAllowed && r.Body != nil {
				captured, _ = io.ReadAll(io.LimitReader(r.Body, maxCapturedBody))
				rest, _ := io.ReadAll(r.Body)
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(captured), bytes.NewReader(rest)))
			}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				correlationID := chimiddleware.GetReqID(r.Context())
				slog.Error("unhandled panic",
					"request_id", correlationID,
					"path", r.URL.Path,
					"panic", rec,
				)

				payload := errorPayload{
					Message:       "Internal server error",
					CorrelationID: correlationID,
					Path:          r.URL.Path,
					Timestamp:     time.Now().UTC(),
				}
				if debugAllowed {
					payload.Detail = &errorDetail{
						Error:       panicMessage(rec),
						StackTrace:  string(debug.Stack()),
						RequestBody: string(captured),
					}
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(payload)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func panicMessage(rec any) string {
	if err, ok := rec.(error); ok {
		return err.Error()
	}
	if s, ok := rec.(string); ok {
		return s
	}
	return "unknown panic"
}
