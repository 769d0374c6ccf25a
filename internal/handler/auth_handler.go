package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/auth"
	"github.com/maanvikp20/promosite/internal/service"
)

type AuthHandler struct {
	svc    *service.AuthService
	guard  *auth.Guard
	secure bool
	log    *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, guard *auth.Guard, secureCookie bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, guard: guard, secure: secureCookie, log: log}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := readJSON(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	result, err := h.svc.Login(r.Context(), body)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.guard.CookieName(),
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.svc.TTL() / time.Second),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Login successful",
		"token":     result.Token,
		"email":     result.Email,
		"expiresAt": result.ExpiresAt,
	})
}

// Logout always clears the cookie, even when no session was open.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if sess, err := h.guard.Lookup(r); err == nil {
		sessionID = sess.ID
	}
	if err := h.svc.Logout(r.Context(), sessionID); err != nil {
		writeError(w, h.log, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.guard.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Session reports whether the caller holds a live session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.guard.Lookup(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false, "admin": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"admin":         sess.Admin,
		"email":         sess.Email,
	})
}
