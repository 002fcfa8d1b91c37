package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cms-admin/internal/model"
	"cms-admin/internal/session"
	"cms-admin/internal/util"
)

type api interface {
	Do(ctx context.Context, req model.Request) model.Envelope
}

// Service drives the upstream auth endpoints and owns the session
// lifecycle: created on login, cleared on logout.
type Service struct {
	api      api
	sessions *session.Manager
}

func NewService(api api, sessions *session.Manager) *Service {
	return &Service{api: api, sessions: sessions}
}

// Login exchanges credentials for a token pair and seals it into a new
// session cookie. The returned error message is already user-facing.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, email string, password string) error {
	env := s.api.Do(ctx, model.Request{
		URL:    "/auth/login",
		Method: http.MethodPost,
		Body: map[string]string{
			"email":    util.SanitizeInput(email),
			"password": util.SanitizeInput(password),
		},
	})
	if !env.OK {
		return errors.New(env.Error)
	}

	var tokens model.TokenPair
	if err := model.DecodeData(env, &tokens); err != nil {
		return errors.New("Login failed. Please try again.")
	}

	return s.sessions.Write(w, session.Data{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		SID:          uuid.NewString(),
	})
}

// CurrentUser resolves the session's user via the upstream whoami
// endpoint. Any failure reads as not authenticated; guards redirect on it.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	if session.TokenFromContext(ctx) == "" {
		return nil, model.ErrNotAuthenticated
	}

	env := s.api.Do(ctx, model.Request{
		URL:    "/auth/whoami",
		Method: http.MethodGet,
	})
	if !env.OK {
		return nil, model.ErrNotAuthenticated
	}

	var body struct {
		Results []model.User `json:"results"`
	}
	if err := model.DecodeData(env, &body); err != nil || len(body.Results) == 0 {
		return nil, model.ErrNotAuthenticated
	}

	return &body.Results[0], nil
}

// Logout drops the cookie. There is nothing to revoke server-side.
func (s *Service) Logout(w http.ResponseWriter) {
	s.sessions.Clear(w)
}

// TokenExpired peeks at the access token's exp claim without verifying
// the signature; verification belongs to the upstream. Opaque or
// claim-less tokens report false and fall through to the whoami check.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
