package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	apperrors "github.com/rankedhq/ranked-api/internal/errors"
	"github.com/rankedhq/ranked-api/internal/service"
	"github.com/rankedhq/ranked-api/internal/session"
)

// AuthHandlers serves the authentication endpoints.
type AuthHandlers struct {
	Auth       *service.AuthService
	Me         *service.MeService
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// authResponse is the body of every session-establishing endpoint: the full
// profile payload plus the CSRF token the client must mirror into the header
// on unsafe requests.
type authResponse struct {
	*service.MePayload
	CSRFToken string `json:"csrfToken"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// Register handles POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	member, err := h.Auth.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if apperrors.IsValidation(err) || apperrors.IsConflict(err) {
			WriteAppError(w, err)
			return
		}
		h.Logger.Error("registration failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeRegisterFailed})
		return
	}

	h.respondWithSession(w, r, member)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	member, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: codeInvalidCredentials})
			return
		}
		h.Logger.Error("login failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	h.respondWithSession(w, r, member)
}

type exchangeRequest struct {
	AccessToken string `json:"accessToken"`
}

// Exchange handles POST /auth/exchange: it turns a provider-issued access
// token into a first-party cookie session.
func (h *AuthHandlers) Exchange(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	member, err := h.Auth.Exchange(r.Context(), req.AccessToken)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: codeUnauthorized})
			return
		}
		h.Logger.Error("token exchange failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	h.respondWithSession(w, r, member)
}

// RefreshSession handles GET /auth/refresh-session: it re-issues the profile
// payload and rotates the CSRF token for an authenticated caller.
func (h *AuthHandlers) RefreshSession(w http.ResponseWriter, r *http.Request) {
	ac, ok := GetAuthContext(r.Context())
	if !ok || !ac.IsAuthenticated() {
		writeUnauthenticated(w, ac)
		return
	}

	sess := GetSessionFromContext(r.Context())
	token, err := session.NewCSRFToken()
	if err != nil {
		h.Logger.Error("csrf token rotation failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}
	sess.SetCSRFToken(token)

	payload, err := h.Me.BuildPayload(r.Context(), ac.Member)
	if err != nil {
		h.Logger.Error("profile payload failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{MePayload: payload, CSRFToken: token})
}

// Logout handles POST /auth/logout. Always succeeds, even for anonymous
// callers; the session middleware clears the cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		sess.Delete()
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// respondWithSession issues a fresh session for the member and writes the
// profile payload. The previous bag is discarded wholesale so no stale keys
// survive re-login.
func (h *AuthHandlers) respondWithSession(w http.ResponseWriter, r *http.Request, member *domainauth.Member) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		h.Logger.Error("session middleware not mounted")
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	token, err := session.NewCSRFToken()
	if err != nil {
		h.Logger.Error("csrf token generation failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	now := time.Now()
	sess.Delete()
	sess.SetMemberID(member.InternalID)
	sess.SetIssuedAt(now.UnixMilli())
	sess.SetCSRFToken(token)
	sess.Touch(now, h.SessionTTL)

	payload, err := h.Me.BuildPayload(r.Context(), member)
	if err != nil {
		h.Logger.Error("profile payload failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{MePayload: payload, CSRFToken: token})
}
