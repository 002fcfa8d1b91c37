package handler

import "net/http"

type DashboardHandler struct {
	Base
}

func NewDashboardHandler(base Base) *DashboardHandler {
	return &DashboardHandler{Base: base}
}

func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "dashboard", struct{ basePage }{h.page(r, "Dashboard", "dashboard", false)})
}

func (h *DashboardHandler) Security(w http.ResponseWriter, r *http.Request) {
	h.render(w, "security", struct{ basePage }{h.page(r, "Security", "security", false)})
}
