// Package middleware holds HTTP middleware shared by the API routers.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(next http.Handler) http.Handler
