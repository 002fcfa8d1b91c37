package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-admin/internal/auth"
	"cms-admin/internal/model"
	"cms-admin/internal/session"
	"cms-admin/internal/toast"
)

const handlerTestSecret = "0123456789abcdef0123456789abcdef"

func newAuthHandler(t *testing.T, api *fakeAPI) (*AuthHandler, *toast.Store) {
	t.Helper()

	b, store := newTestBase(t)
	sessions := session.NewManager(handlerTestSecret, time.Hour, false)
	return NewAuthHandler(b, auth.NewService(api, sessions)), store
}

func TestShowLogin(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeAPI{})

	rec := httptest.NewRecorder()
	h.ShowLogin(rec, httptest.NewRequest("GET", "/auth/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/auth/login"`)
}

func TestLoginFailureShowsExactMessage(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/auth/login": {OK: false, Status: 401, Error: "Invalid email or password."},
	}}
	h, _ := newAuthHandler(t, api)

	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.PostForm = url.Values{"email": {"user@example.com"}, "password": {"wrong"}}
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid email or password.")
	// the typed email survives the round trip
	assert.Contains(t, body, `value="user@example.com"`)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/auth/login": {OK: true, Status: 200, Data: json.RawMessage(`{"access_token":"tok","refresh_token":"ref"}`)},
	}}
	h, _ := newAuthHandler(t, api)

	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.PostForm = url.Values{"email": {"user@example.com"}, "password": {"secret"}}
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName && cookie.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a session cookie")
}

func TestLoginRejectsInvalidEmailLocally(t *testing.T) {
	api := &fakeAPI{}
	h, _ := newAuthHandler(t, api)

	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.PostForm = url.Values{"email": {"not-an-email"}, "password": {"secret"}}
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a valid email address.")
	assert.Empty(t, api.requests)
}

func TestSendResetCode(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeAPI{})

	req := httptest.NewRequest("POST", "/auth/reset-password", nil)
	req.PostForm = url.Values{"email": {"user@example.com"}}
	rec := httptest.NewRecorder()
	h.SendResetCode(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/verify-otp?email=user%40example.com", rec.Header().Get("Location"))
}

func TestVerifyOTPRejectsBadCode(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeAPI{})

	req := httptest.NewRequest("POST", "/auth/verify-otp", nil)
	req.PostForm = url.Values{"email": {"user@example.com"}, "otp": {"12ab56"}}
	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter the 6-digit code.")
}

func TestVerifyOTPAdvancesFlow(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeAPI{})

	req := httptest.NewRequest("POST", "/auth/verify-otp", nil)
	req.PostForm = url.Values{"email": {"user@example.com"}, "otp": {"123456"}}
	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/new-password?email=user%40example.com&otp=123456", rec.Header().Get("Location"))
}

func TestSetNewPasswordValidation(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeAPI{})

	req := httptest.NewRequest("POST", "/auth/new-password", nil)
	req.PostForm = url.Values{
		"email": {"user@example.com"}, "otp": {"123456"},
		"password": {"short"}, "confirm": {"short"},
	}
	rec := httptest.NewRecorder()
	h.SetNewPassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password must be at least 8 characters long")

	req = httptest.NewRequest("POST", "/auth/new-password", nil)
	req.PostForm = url.Values{
		"email": {"user@example.com"}, "otp": {"123456"},
		"password": {"longenough"}, "confirm": {"different"},
	}
	rec = httptest.NewRecorder()
	h.SetNewPassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match.")
}

func TestSetNewPasswordSuccess(t *testing.T) {
	h, store := newAuthHandler(t, &fakeAPI{})

	req := httptest.NewRequest("POST", "/auth/new-password", nil)
	req.PostForm = url.Values{
		"email": {"user@example.com"}, "otp": {"123456"},
		"password": {"longenough"}, "confirm": {"longenough"},
	}
	rec := httptest.NewRecorder()
	h.SetNewPassword(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	toasts := store.Queue("").List()
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.TypeSuccess, toasts[0].Type)
	assert.Equal(t, "Password reset successfully. Please sign in.", toasts[0].Message)
}

func TestLogoutClearsSessionAndToasts(t *testing.T) {
	h, store := newAuthHandler(t, &fakeAPI{})

	store.Queue("sid-1").Add(toast.TypeInfo, "stale")

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req = req.WithContext(session.WithData(req.Context(), session.Data{AccessToken: "tok", SID: "sid-1"}))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	assert.Empty(t, store.Queue("sid-1").List())

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
