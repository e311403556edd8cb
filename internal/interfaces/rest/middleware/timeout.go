package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/application"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest"
)

func timeoutBody() string {
	err := application.NewTimeoutError()
	body, _ := json.Marshal(rest.APIResponse{
		Success: false,
		Error:   &rest.APIError{Code: err.Code, Message: err.Message},
	})
	return string(body)
}

// Timeout bounds the handler and answers 503 with the JSON envelope when
// the deadline passes first.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	body := timeoutBody()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			http.TimeoutHandler(next, timeout, body).ServeHTTP(w, r)
		})
	}
}
