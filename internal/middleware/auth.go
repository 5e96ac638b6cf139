package middleware

import (
	"net/http"
	"strings"

	"github.com/vaadhorim/portal/internal/auth"
	"github.com/vaadhorim/portal/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type publicRoute struct {
	method string
	path   string
}

// AuthMiddlewareHandler is the request gate: every route not explicitly
// public requires a valid admin session token in the auth cookie. The check
// is stateless - the token's own signature and expiry decide the verdict,
// no store lookup happens on the success path.
type AuthMiddlewareHandler struct {
	tokens               *auth.TokenService
	publicRoutes         map[publicRoute]bool
	publicRoutesPrefixes []publicRoute
}

func NewAuthMiddlewareHandler(tokens *auth.TokenService) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		tokens: tokens,
		publicRoutes: map[publicRoute]bool{
			{http.MethodGet, "/"}:        true,
			{http.MethodGet, "/version"}: true,

			// login-logout-session:
			{http.MethodPost, "/a/login"}:  true,
			{http.MethodGet, "/a/logout"}:  true,
			{http.MethodGet, "/a/session"}: true,

			// public portal reads:
			{http.MethodGet, "/committees"}: true,
			{http.MethodGet, "/vendors"}:    true,

			// anonymous parent feedback:
			{http.MethodPost, "/feedback"}: true,

			// push subscription from the public site:
			{http.MethodPost, "/notifications/subscribe"}: true,
		},
		publicRoutesPrefixes: []publicRoute{
			{http.MethodGet, "/events/"},
			{http.MethodGet, "/vendors/search"},
			{http.MethodGet, "/groceries/list/"},
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(r *http.Request) bool {
	if h.publicRoutes[publicRoute{r.Method, r.URL.Path}] {
		return true
	}
	for _, route := range h.publicRoutesPrefixes {
		if r.Method == route.method && strings.HasPrefix(r.URL.Path, route.path) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				log.Tracef("[missing session cookie] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-session-cookie")
				return
			}

			role, err := h.tokens.Verify(cookie.Value)
			if err != nil {
				// expired, forged and malformed all get the same response
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-session-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithRole(ctx, role)))
		})
	}
}
