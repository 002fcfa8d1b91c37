package middleware

import (
	"context"
	"net/http"

	"cms-admin/internal/auth"
	"cms-admin/internal/model"
	"cms-admin/internal/session"
)

type userSource interface {
	CurrentUser(ctx context.Context) (*model.User, error)
}

type contextKey string

const userContextKey contextKey = "current_user"

// Guard gates pages on session state. RequireAuth proves the session
// against the upstream before letting a page render; RequireGuest keeps
// signed-in users out of the auth flow.
type Guard struct {
	sessions *session.Manager
	users    userSource
}

func NewGuard(sessions *session.Manager, users userSource) *Guard {
	return &Guard{sessions: sessions, users: users}
}

func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := g.sessions.Read(r)
		if err != nil || !data.Authenticated() {
			redirectToLogin(w, r)
			return
		}

		// Cheap local expiry check before the upstream round trip.
		if auth.TokenExpired(data.AccessToken) {
			g.sessions.Clear(w)
			redirectToLogin(w, r)
			return
		}

		ctx := session.WithData(r.Context(), data)
		user, err := g.users.CurrentUser(ctx)
		if err != nil {
			g.sessions.Clear(w)
			redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
	})
}

func (g *Guard) RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := g.sessions.Read(r)
		if err == nil && data.Authenticated() && !auth.TokenExpired(data.AccessToken) {
			if _, userErr := g.users.CurrentUser(session.WithData(r.Context(), data)); userErr == nil {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// AttachSession puts the session into the context when one exists but
// never blocks the request. Routes shared by guests and users take it.
func (g *Guard) AttachSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if data, err := g.sessions.Read(r); err == nil {
			r = r.WithContext(session.WithData(r.Context(), data))
		}

		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
