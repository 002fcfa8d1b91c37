package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

type ToastHandler struct {
	Base
}

func NewToastHandler(base Base) *ToastHandler {
	return &ToastHandler{Base: base}
}

// Dismiss acknowledges a toast and bounces back to the page it was on.
func (h *ToastHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.queue(r).Remove(chi.URLParam(r, "id"))

	redirect(w, r, dismissTarget(r.Referer()))
}

// dismissTarget keeps the bounce on-site. The Referer is client supplied,
// so only its path and query survive.
func dismissTarget(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || !strings.HasPrefix(u.Path, "/") {
		return "/dashboard"
	}

	return u.RequestURI()
}
