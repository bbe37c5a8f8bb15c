package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS оборачивает весь роутер, а не ставится через Router.Use: preflight
// OPTIONS не совпадает ни с одним маршрутом, и mux-middleware до него не доходят.
// Пустой список origins отключает CORS.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", HeaderRequestID}),
		handlers.ExposedHeaders([]string{HeaderRequestID}),
		handlers.MaxAge(600),
	)
}
