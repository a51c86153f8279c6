// Package middleware contains HTTP middleware for the Label Shokunin API.
//
// Middleware functions follow the standard Go pattern of wrapping http.Handler.
// They are designed to be composed using a middleware stack approach.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shokunin-apps/label-shokunin/internal/auth"
	"github.com/shokunin-apps/label-shokunin/internal/handler"
)

// ShopHeader carries the shop domain on authenticated API requests. The
// embedded-app proxy in front of this service validates the session and
// forwards the shop identity here.
const ShopHeader = "X-Shop-Domain"

// ShopAuthMiddleware resolves the calling shop from the request.
type ShopAuthMiddleware struct {
	logger *slog.Logger
}

// NewShopAuthMiddleware creates a new shop auth middleware.
func NewShopAuthMiddleware(logger *slog.Logger) *ShopAuthMiddleware {
	return &ShopAuthMiddleware{logger: logger}
}

// RequireShop rejects requests that carry no shop identity.
func (m *ShopAuthMiddleware) RequireShop(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shop := strings.ToLower(strings.TrimSpace(r.Header.Get(ShopHeader)))
		if shop == "" {
			handler.UnauthorizedResponse(w, r, m.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithShop(r.Context(), shop)))
	})
}

// Stack composes middleware so the first listed runs outermost.
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
