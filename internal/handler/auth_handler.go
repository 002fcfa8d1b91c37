package handler

import (
	"net/http"
	"net/url"
	"strings"

	"cms-admin/internal/auth"
	"cms-admin/internal/session"
	"cms-admin/internal/toast"
	"cms-admin/internal/util"
)

type AuthHandler struct {
	Base
	auth *auth.Service
}

func NewAuthHandler(base Base, auth *auth.Service) *AuthHandler {
	return &AuthHandler{Base: base, auth: auth}
}

type loginPage struct {
	basePage
	Email string
	Error string
	Busy  bool
}

type resetPage struct {
	basePage
	Email string
	Error string
}

type otpPage struct {
	basePage
	Email string
	Error string
}

type newPasswordPage struct {
	basePage
	Email string
	OTP   string
	Error string
}

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", loginPage{basePage: h.page(r, "Sign in", "", false)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	page := loginPage{basePage: h.page(r, "Sign in", "", false), Email: email}

	if email == "" || password == "" {
		page.Error = "Please fill in all fields."
		h.render(w, "login", page)
		return
	}
	if !util.ValidateEmail(email) {
		page.Error = "Please enter a valid email address."
		h.render(w, "login", page)
		return
	}

	if err := h.auth.Login(r.Context(), w, email, password); err != nil {
		page.Error = err.Error()
		h.render(w, "login", page)
		return
	}

	redirect(w, r, "/dashboard")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if data, ok := session.FromContext(r.Context()); ok {
		h.toasts.Drop(data.SID)
	}

	h.auth.Logout(w)
	redirect(w, r, "/auth/login")
}

func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	h.render(w, "reset_password", resetPage{basePage: h.page(r, "Reset password", "", false)})
}

func (h *AuthHandler) SendResetCode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	if !util.ValidateEmail(email) {
		page := resetPage{basePage: h.page(r, "Reset password", "", false), Email: email, Error: "Please enter a valid email address."}
		h.render(w, "reset_password", page)
		return
	}

	redirect(w, r, "/auth/verify-otp?email="+url.QueryEscape(email))
}

func (h *AuthHandler) ShowVerifyOTP(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		redirect(w, r, "/auth/reset-password")
		return
	}

	h.render(w, "verify_otp", otpPage{basePage: h.page(r, "Verify code", "", false), Email: email})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	otp := strings.TrimSpace(r.PostFormValue("otp"))

	if !util.ValidateOTP(otp) {
		page := otpPage{basePage: h.page(r, "Verify code", "", false), Email: email, Error: "Please enter the 6-digit code."}
		h.render(w, "verify_otp", page)
		return
	}

	redirect(w, r, "/auth/new-password?email="+url.QueryEscape(email)+"&otp="+url.QueryEscape(otp))
}

func (h *AuthHandler) ShowNewPassword(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := strings.TrimSpace(query.Get("email"))
	otp := strings.TrimSpace(query.Get("otp"))
	if email == "" || otp == "" {
		redirect(w, r, "/auth/reset-password")
		return
	}

	page := newPasswordPage{basePage: h.page(r, "New password", "", false), Email: email, OTP: otp}
	h.render(w, "new_password", page)
}

func (h *AuthHandler) SetNewPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	otp := strings.TrimSpace(r.PostFormValue("otp"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm")

	page := newPasswordPage{basePage: h.page(r, "New password", "", false), Email: email, OTP: otp}

	if ok, msg := util.ValidatePassword(password); !ok {
		page.Error = msg
		h.render(w, "new_password", page)
		return
	}
	if password != confirm {
		page.Error = "Passwords do not match."
		h.render(w, "new_password", page)
		return
	}

	// TODO: call the upstream reset endpoint once it ships; today the
	// flow ends after local validation.
	h.queue(r).Add(toast.TypeSuccess, "Password reset successfully. Please sign in.")
	redirect(w, r, "/auth/login")
}
