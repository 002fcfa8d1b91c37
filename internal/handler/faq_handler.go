package handler

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"cms-admin/internal/model"
	"cms-admin/internal/resource"
	"cms-admin/internal/view"
)

type FaqHandler struct {
	Base
	faqs       *resource.FaqService
	categories *resource.CategoryService
}

func NewFaqHandler(base Base, faqs *resource.FaqService, categories *resource.CategoryService) *FaqHandler {
	return &FaqHandler{Base: base, faqs: faqs, categories: categories}
}

type faqsPage struct {
	basePage
	Table      view.Table
	Modal      view.Modal
	Form       view.FaqForm
	FormAction string
	Delete     deleteDialog
}

func (h *FaqHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, pageSize := view.ClampRequest(queryInt(r, "page", 1), queryInt(r, "pageSize", 10))

	var (
		wg      sync.WaitGroup
		faqsEnv model.Envelope
		catsEnv model.Envelope
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		faqsEnv = h.faqs.Get(r.Context(), model.ListParams{Page: page, PageSize: pageSize})
	}()
	go func() {
		defer wg.Done()
		catsEnv = h.categories.Get(r.Context(), model.ListParams{Page: 1, PageSize: 100})
	}()
	wg.Wait()

	if !faqsEnv.OK {
		h.renderError(w, r, "FAQs", "faqs", faqsEnv.Error)
		return
	}
	if !catsEnv.OK {
		h.renderError(w, r, "FAQs", "faqs", catsEnv.Error)
		return
	}

	faqs, count, err := model.DecodeList[model.Faq](faqsEnv.Data)
	if err != nil {
		h.renderError(w, r, "FAQs", "faqs", "Received an unexpected response. Please try again.")
		return
	}
	categories, _, err := model.DecodeList[model.Category](catsEnv.Data)
	if err != nil {
		h.renderError(w, r, "FAQs", "faqs", "Received an unexpected response. Please try again.")
		return
	}

	paging := view.NewPaging(page, pageSize, count)
	closeURL := fmt.Sprintf("?page=%d&pageSize=%d", paging.CurrentPage, paging.PageSize)

	data := faqsPage{
		Table: view.BuildTable(faqs, faqColumns(categories), paging, false),
	}
	data.Table.Actions = true

	switch {
	case query.Get("modal") == "create":
		data.Modal = view.Modal{Open: true, Title: "Create FAQ", Size: "md", CloseURL: closeURL}
		data.Form = view.NewFaqForm(nil, categories)
		data.FormAction = "/faqs/create"
	case query.Get("edit") != "":
		id := query.Get("edit")
		if faq := findFaq(faqs, id); faq != nil {
			data.Modal = view.Modal{Open: true, Title: "Edit FAQ", Size: "md", CloseURL: closeURL}
			data.Form = view.NewFaqForm(faq, categories)
			data.FormAction = "/faqs/" + id + "/edit"
		}
	case query.Get("delete") != "":
		id := query.Get("delete")
		data.Delete = deleteDialog{
			Modal:  view.Modal{Open: true, Title: "Delete FAQ", Size: "sm", CloseURL: closeURL},
			Action: "/faqs/" + id + "/delete",
			Label:  "FAQ",
		}
	}

	data.basePage = h.page(r, "FAQs", "faqs", data.Modal.Open || data.Delete.Modal.Open)
	h.render(w, "faqs", data)
}

func (h *FaqHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if !form.CanSubmit() {
		h.toastError(r, "Please fill in all required fields.")
		redirect(w, r, "/faqs")
		return
	}

	env := h.faqs.Create(r.Context(), form.Input())
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "FAQ created successfully")
	}

	redirect(w, r, "/faqs")
}

func (h *FaqHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if !form.CanSubmit() {
		h.toastError(r, "Please fill in all required fields.")
		redirect(w, r, "/faqs")
		return
	}

	env := h.faqs.Update(r.Context(), id, form.Input())
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "FAQ updated successfully")
	}

	redirect(w, r, "/faqs")
}

func (h *FaqHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	env := h.faqs.Delete(r.Context(), id)
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "FAQ deleted successfully")
	}

	redirect(w, r, "/faqs")
}

func (h *FaqHandler) parseForm(w http.ResponseWriter, r *http.Request) (view.FaqForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return view.FaqForm{}, false
	}

	return view.FaqForm{
		Question:   r.PostFormValue("question"),
		Answer:     r.PostFormValue("answer"),
		CategoryID: r.PostFormValue("category_id"),
	}, true
}

func faqColumns(categories []model.Category) []view.Column[model.Faq] {
	return []view.Column[model.Faq]{
		{Key: "question", Header: "Question"},
		{Key: "answer", Header: "Answer"},
		{Key: "category", Header: "Category", Render: func(f model.Faq) string {
			return categoryLabel(f.Category, f.CategoryID, categories)
		}},
		{Key: "created_at", Header: "Created"},
	}
}

func findFaq(faqs []model.Faq, id string) *model.Faq {
	for i := range faqs {
		if faqs[i].ID == id {
			return &faqs[i]
		}
	}

	return nil
}
