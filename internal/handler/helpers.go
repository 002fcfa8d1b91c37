package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"cms-admin/internal/middleware"
	"cms-admin/internal/model"
	"cms-admin/internal/session"
	"cms-admin/internal/toast"
	"cms-admin/internal/view"
)

// basePage is the layout data every page embeds.
type basePage struct {
	Title        string
	Active       string
	User         *model.User
	Toasts       []toast.Toast
	ScrollLocked bool
}

// Base carries the rendering plumbing shared by every handler.
type Base struct {
	renderer *view.Renderer
	toasts   *toast.Store
}

func NewBase(renderer *view.Renderer, toasts *toast.Store) Base {
	return Base{renderer: renderer, toasts: toasts}
}

func (b Base) page(r *http.Request, title string, active string, scrollLocked bool) basePage {
	user, _ := middleware.UserFromContext(r.Context())

	return basePage{
		Title:        title,
		Active:       active,
		User:         user,
		Toasts:       b.queue(r).List(),
		ScrollLocked: scrollLocked,
	}
}

// queue resolves the toast queue for the request's session. Requests
// without a session share the guest queue.
func (b Base) queue(r *http.Request) *toast.Queue {
	sid := ""
	if data, ok := session.FromContext(r.Context()); ok {
		sid = data.SID
	}

	return b.toasts.Queue(sid)
}

func (b Base) toastSuccess(r *http.Request, message string) {
	b.queue(r).Add(toast.TypeSuccess, message)
}

func (b Base) toastError(r *http.Request, message string) {
	b.queue(r).Add(toast.TypeError, message)
}

func (b Base) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := b.renderer.Render(w, name, data); err != nil {
		slog.Error("render failed", "template", name, "error", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}

type errorPage struct {
	basePage
	Message  string
	RetryURL string
}

// renderError shows the full-page load failure state with a retry link.
func (b Base) renderError(w http.ResponseWriter, r *http.Request, title string, active string, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	data := errorPage{
		basePage: b.page(r, title, active, false),
		Message:  message,
		RetryURL: r.URL.RequestURI(),
	}
	if err := b.renderer.Render(w, "error", data); err != nil {
		slog.Error("render failed", "template", "error", "error", err)
	}
}

// redirect is the post-mutation hop; 303 forces the follow-up GET.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
