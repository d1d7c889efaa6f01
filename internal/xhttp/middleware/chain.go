package middleware

import "net/http"

// Chain wraps h so that middleware run in the order given: the first one
// sees the request first.
func Chain(h http.Handler, middleware ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
