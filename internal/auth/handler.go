package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vaadhorim/portal/internal/telemetry/tracing"
	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type Handler struct {
	service       *Service
	secureCookies bool
}

func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		secureCookies: secureCookies,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	loginRateLimit mux.MiddlewareFunc,
) {
	authSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	authSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	authSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")
	authSubrouter.
		HandleFunc("/session", handler.handleSessionCheck).
		Methods("GET", "OPTIONS").Name("session-check")

	// rate limit the login endpoints to slow down brute forcing
	authSubrouter.Use(loginRateLimit)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == pkg.ContentType.JSON {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			span.SetStatus(codes.Error, "bad-request")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			span.SetStatus(codes.Error, "parse-form-failed")
			return
		}
		loginReq = loginRequest{
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		span.SetStatus(codes.Error, "empty-password")
		return
	}

	token, err := handler.service.Login(loginReq.Password)
	if err != nil {
		if errors.Is(err, ErrWrongPassword) {
			log.Tracef("failed admin login attempt")
			span.SetStatus(codes.Error, "wrong-password")
			pkg.WriteResponse(
				w, pkg.ContentType.JSON,
				`{"success": false, "error": "wrong password"}`,
				http.StatusUnauthorized,
			)
			return
		}
		log.Errorf("login failed, issue token error: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		span.SetStatus(codes.Error, "issue-token-failed")
		return
	}

	SetSessionCookie(w, token, handler.service.Tokens().TTL(), handler.secureCookies)

	log.Trace("new admin login success")
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, `{"success": true}`)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// the session is held entirely by the client, so logout is only the
	// cookie being cleared - a captured token remains valid until expiry
	ClearSessionCookie(w, handler.secureCookies)

	log.Trace("admin logout")
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, `{"success": true}`)
}

// handleSessionCheck reports whether the presented cookie holds a valid
// session. A routine "not authenticated" outcome is a 200 response with
// authenticated=false, never an error status, to keep client polling simple.
func (handler *Handler) handleSessionCheck(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.sessionCheck")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		span.SetStatus(codes.Ok, "no-cookie")
		pkg.WriteJSONResponseOK(w, `{"authenticated": false, "user": null}`)
		return
	}

	role, err := handler.service.Tokens().Verify(cookie.Value)
	if err != nil {
		// dead token - clear it so the client stops presenting it
		ClearSessionCookie(w, handler.secureCookies)
		span.SetStatus(codes.Ok, "invalid-token")
		pkg.WriteJSONResponseOK(w, `{"authenticated": false, "user": null}`)
		return
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"authenticated": true, "user": {"role": "%s"}}`, role))
}
