// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/constants"
	requestutil "github.com/jaferpilakkal/tuition-lms/internal/platform/request"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/respond"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/validate"
	"github.com/jaferpilakkal/tuition-lms/internal/routing"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// The handler is strictly a transport layer: cookies, status codes, JSON.
// The session token travels in a scoped HttpOnly cookie; the access token
// travels in the JSON body for the client to hold in memory.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /login   : Authenticates and establishes a session.
//   - POST /logout  : Invalidates the session.
//   - GET  /session : Bootstraps state from the session cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Get("/session", handler.session)

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Runs the full login orchestration (credential check, profile
resolution, active-flag enforcement), injects the session cookie, and tells
the client where to land based on its role.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Session: Access token, user, profile, and redirect target
  - 401: InvalidCredentials: Bad email/password pair
  - 403: ProfileNotFound/AccountDeactivated: Authenticated but not admitted
  - 502: ProviderError: Credential store failure
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Email, input.Password, RequestMeta{
		UserAgent: request.UserAgent(),
		IPAddress: getClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.SessionToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.SessionTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	// The caller performs the post-login redirect; the landing route is
	// derived from the committed profile's role.
	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   AccessTokenTTL / time.Second,
		FieldUser:        session.User,
		FieldProfile:     session.Profile,
		"redirect_to":    routing.LandingPath(session.Profile.Role),
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Invalidates the persisted session (if present) and clears the
session cookie from the client. Missing or dead cookies still log out.

Response:
  - 204: No Content: Session terminated
  - 502: ProviderError: Revocation failed; the cookie is left in place
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			// Propagate, do not silently clear: the client keeps its cookie
			// and may retry.
			respond.Error(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
Session bootstraps authentication state from the session cookie.

GET /api/v1/auth/session

Description: The once-per-page-load read. Never fails on "no session": an
absent, expired, or unreadable session yields an unauthenticated snapshot
with a login redirect target. An authenticated snapshot carries a fresh
access token and the role's landing route for the root-path redirect.

Response:
  - 200: Snapshot: Authentication state and redirect target
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	sessionToken := ""
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		sessionToken = cookie.Value
	}

	snapshot, err := handler.authService.Resume(request.Context(), sessionToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !snapshot.Authenticated {
		respond.OK(writer, map[string]any{
			"authenticated": false,
			"redirect_to":   constants.RouteLogin,
		})
		return
	}

	respond.OK(writer, map[string]any{
		"authenticated":  true,
		FieldAccessToken: snapshot.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   AccessTokenTTL / time.Second,
		FieldUser:        snapshot.User,
		FieldProfile:     snapshot.Profile,
		"redirect_to":    routing.LandingPath(snapshot.Profile.Role),
	})
}

// getClientIP tries to extract the real IP address of a user over proxy environments.
func getClientIP(request *http.Request) string {

	ip := request.Header.Get("X-Real-IP")
	if ip == "" {
		ip = request.Header.Get("X-Forwarded-For")
	}

	if ip == "" {
		ip = request.RemoteAddr
	}
	return ip
}
