package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-lite-web/internal/service/session"
)

type contextKey struct{ name string }

var sessionCtxKey = &contextKey{"session"}

// SessionFromContext returns the session attached by Session.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey).(*session.Session)
	return sess, ok && sess != nil
}

// WithSession attaches sess to ctx.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, sess)
}

// Session resolves the browser session from the signed cookie. A missing,
// invalid or expired session is replaced by a fresh one.
func Session(store *session.Store, tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(jwt.CookieName); err == nil {
				if sid, err := tokens.ValidateSessionToken(cookie.Value); err == nil {
					if sess, ok := store.Get(sid); ok {
						next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
						return
					}
				}
			}

			sess, err := store.Create()
			if err != nil {
				slog.ErrorContext(r.Context(), "Failed to create session", "error", err)
				response.InternalServerError(w, "Failed to start session")
				return
			}

			token, expiresAt, err := tokens.GenerateSessionToken(sess.ID)
			if err != nil {
				slog.ErrorContext(r.Context(), "Failed to sign session token", "error", err)
				response.InternalServerError(w, "Failed to start session")
				return
			}
			http.SetCookie(w, tokens.SessionCookie(token, expiresAt))

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		}
		return http.HandlerFunc(hfn)
	}
}
