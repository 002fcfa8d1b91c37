package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"cms-admin/internal/model"
	"cms-admin/internal/resource"
	"cms-admin/internal/view"
)

const (
	tabBlogs = "blogs"
	tabFaqs  = "faqs"
)

// CategoryHandler serves both category collections behind a tab switch.
type CategoryHandler struct {
	Base
	blogCategories *resource.CategoryService
	faqCategories  *resource.CategoryService
}

func NewCategoryHandler(base Base, blogCategories *resource.CategoryService, faqCategories *resource.CategoryService) *CategoryHandler {
	return &CategoryHandler{Base: base, blogCategories: blogCategories, faqCategories: faqCategories}
}

type categoriesPage struct {
	basePage
	Tab        string
	Table      view.Table
	Modal      view.Modal
	Form       view.CategoryForm
	FormAction string
	Delete     deleteDialog
}

func (h *CategoryHandler) service(tab string) *resource.CategoryService {
	if tab == tabFaqs {
		return h.faqCategories
	}

	return h.blogCategories
}

func (h *CategoryHandler) tab(r *http.Request) string {
	if r.URL.Query().Get("tab") == tabFaqs {
		return tabFaqs
	}

	return tabBlogs
}

func (h *CategoryHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tab := h.tab(r)
	page, pageSize := view.ClampRequest(queryInt(r, "page", 1), queryInt(r, "pageSize", 10))

	env := h.service(tab).Get(r.Context(), model.ListParams{Page: page, PageSize: pageSize})
	if !env.OK {
		h.renderError(w, r, "Categories", "categories", env.Error)
		return
	}

	categories, count, err := model.DecodeList[model.Category](env.Data)
	if err != nil {
		h.renderError(w, r, "Categories", "categories", "Received an unexpected response. Please try again.")
		return
	}

	paging := view.NewPaging(page, pageSize, count)
	// Flipping pages or sizes must not drop the active tab.
	paging.BaseQuery = "tab=" + tab
	closeURL := fmt.Sprintf("?tab=%s&page=%d&pageSize=%d", tab, paging.CurrentPage, paging.PageSize)

	data := categoriesPage{
		Tab:   tab,
		Table: view.BuildTable(categories, categoryColumns(), paging, false),
	}
	data.Table.Actions = true

	action := func(suffix string) string {
		return "/categories" + suffix + "?tab=" + url.QueryEscape(tab)
	}

	switch {
	case query.Get("modal") == "create":
		data.Modal = view.Modal{Open: true, Title: "Create Category", Size: "sm", CloseURL: closeURL}
		data.Form = view.NewCategoryForm(nil)
		data.FormAction = action("/create")
	case query.Get("edit") != "":
		id := query.Get("edit")
		if category := findCategory(categories, id); category != nil {
			data.Modal = view.Modal{Open: true, Title: "Edit Category", Size: "sm", CloseURL: closeURL}
			data.Form = view.NewCategoryForm(category)
			data.FormAction = action("/" + id + "/edit")
		}
	case query.Get("delete") != "":
		id := query.Get("delete")
		data.Delete = deleteDialog{
			Modal:  view.Modal{Open: true, Title: "Delete Category", Size: "sm", CloseURL: closeURL},
			Action: action("/" + id + "/delete"),
			Label:  "category",
		}
	}

	data.basePage = h.page(r, "Categories", "categories", data.Modal.Open || data.Delete.Modal.Open)
	h.render(w, "categories", data)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	tab := h.tab(r)
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if !form.CanSubmit() {
		h.toastError(r, "Please fill in all required fields.")
		redirect(w, r, "/categories?tab="+tab)
		return
	}

	env := h.service(tab).Create(r.Context(), model.CreateCategoryInput{Title: form.Title})
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "Category created successfully")
	}

	redirect(w, r, "/categories?tab="+tab)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	tab := h.tab(r)
	id := chi.URLParam(r, "id")
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if !form.CanSubmit() {
		h.toastError(r, "Please fill in all required fields.")
		redirect(w, r, "/categories?tab="+tab)
		return
	}

	env := h.service(tab).Update(r.Context(), id, model.CreateCategoryInput{Title: form.Title})
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "Category updated successfully")
	}

	redirect(w, r, "/categories?tab="+tab)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tab := h.tab(r)
	id := chi.URLParam(r, "id")

	env := h.service(tab).Delete(r.Context(), id)
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "Category deleted successfully")
	}

	redirect(w, r, "/categories?tab="+tab)
}

func (h *CategoryHandler) parseForm(w http.ResponseWriter, r *http.Request) (view.CategoryForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return view.CategoryForm{}, false
	}

	return view.CategoryForm{Title: r.PostFormValue("title")}, true
}

func categoryColumns() []view.Column[model.Category] {
	return []view.Column[model.Category]{
		{Key: "title", Header: "Title"},
		{Key: "created_at", Header: "Created"},
		{Key: "updated_at", Header: "Updated"},
	}
}

func findCategory(categories []model.Category, id string) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}

	return nil
}
