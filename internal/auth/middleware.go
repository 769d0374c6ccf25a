package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/session"
)

type contextKey string

const SessionContextKey contextKey = "session"

// Session is the authenticated state attached to a request.
type Session struct {
	ID string
	session.Data
}

// ErrNoSession means the request carried no usable token or the session it
// names is gone.
var ErrNoSession = errors.New("no session")

// Guard resolves session tokens and gates admin routes.
type Guard struct {
	secret        string
	cookieName    string
	sessions      session.Store
	loginRedirect string
	log           *zap.Logger
}

func NewGuard(secret, cookieName string, sessions session.Store, loginRedirect string, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{
		secret:        secret,
		cookieName:    cookieName,
		sessions:      sessions,
		loginRedirect: loginRedirect,
		log:           log,
	}
}

func (g *Guard) CookieName() string { return g.cookieName }

// Token returns the session token from the cookie, falling back to an
// Authorization: Bearer header for API clients.
func (g *Guard) Token(r *http.Request) string {
	if c, err := r.Cookie(g.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// Lookup resolves the request's token to a live session.
func (g *Guard) Lookup(r *http.Request) (*Session, error) {
	tokenStr := g.Token(r)
	if tokenStr == "" {
		return nil, ErrNoSession
	}
	claims, err := ValidateToken(g.secret, tokenStr)
	if err != nil {
		return nil, ErrNoSession
	}
	data, err := g.sessions.Get(r.Context(), claims.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return &Session{ID: claims.SessionID, Data: *data}, nil
}

// RequireAdmin lets the request through only when its session carries the
// admin flag. Anything else is answered here and never reaches next.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.Lookup(r)
		if err != nil && !errors.Is(err, ErrNoSession) {
			g.log.Error("session lookup failed", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "Server failed to check session")
			return
		}
		if sess == nil || !sess.Admin {
			g.deny(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request) {
	if g.loginRedirect != "" && r.Method == http.MethodGet &&
		strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, g.loginRedirect, http.StatusFound)
		return
	}
	writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
}

func GetSession(ctx context.Context) *Session {
	sess, _ := ctx.Value(SessionContextKey).(*Session)
	return sess
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
