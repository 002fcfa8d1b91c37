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

type BlogHandler struct {
	Base
	blogs      *resource.BlogService
	categories *resource.CategoryService
}

func NewBlogHandler(base Base, blogs *resource.BlogService, categories *resource.CategoryService) *BlogHandler {
	return &BlogHandler{Base: base, blogs: blogs, categories: categories}
}

type deleteDialog struct {
	Modal  view.Modal
	Action string
	Label  string
}

type blogsPage struct {
	basePage
	Table        view.Table
	Modal        view.Modal
	Form         view.BlogForm
	FormAction   string
	UploadReturn string
	Delete       deleteDialog
}

func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, pageSize := view.ClampRequest(queryInt(r, "page", 1), queryInt(r, "pageSize", 10))

	// The page needs both collections; load them together and fail the
	// whole page if either side fails.
	var (
		wg       sync.WaitGroup
		blogsEnv model.Envelope
		catsEnv  model.Envelope
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		blogsEnv = h.blogs.Get(r.Context(), model.ListParams{Page: page, PageSize: pageSize})
	}()
	go func() {
		defer wg.Done()
		catsEnv = h.categories.Get(r.Context(), model.ListParams{Page: 1, PageSize: 100})
	}()
	wg.Wait()

	if !blogsEnv.OK {
		h.renderError(w, r, "Blogs", "blogs", blogsEnv.Error)
		return
	}
	if !catsEnv.OK {
		h.renderError(w, r, "Blogs", "blogs", catsEnv.Error)
		return
	}

	blogs, count, err := model.DecodeList[model.Blog](blogsEnv.Data)
	if err != nil {
		h.renderError(w, r, "Blogs", "blogs", "Received an unexpected response. Please try again.")
		return
	}
	categories, _, err := model.DecodeList[model.Category](catsEnv.Data)
	if err != nil {
		h.renderError(w, r, "Blogs", "blogs", "Received an unexpected response. Please try again.")
		return
	}

	paging := view.NewPaging(page, pageSize, count)
	closeURL := fmt.Sprintf("?page=%d&pageSize=%d", paging.CurrentPage, paging.PageSize)

	data := blogsPage{
		Table: view.BuildTable(blogs, blogColumns(categories), paging, false),
	}
	data.Table.Actions = true

	switch {
	case query.Get("modal") == "create":
		data.Modal = view.Modal{Open: true, Title: "Create Blog", Size: "lg", CloseURL: closeURL}
		data.Form = view.NewBlogForm(nil, categories)
		data.FormAction = "/blogs/create"
	case query.Get("edit") != "":
		id := query.Get("edit")
		if blog := findBlog(blogs, id); blog != nil {
			data.Modal = view.Modal{Open: true, Title: "Edit Blog", Size: "lg", CloseURL: closeURL}
			data.Form = view.NewBlogForm(blog, categories)
			data.FormAction = "/blogs/" + id + "/edit"
		}
	case query.Get("delete") != "":
		id := query.Get("delete")
		data.Delete = deleteDialog{
			Modal:  view.Modal{Open: true, Title: "Delete Blog", Size: "sm", CloseURL: closeURL},
			Action: "/blogs/" + id + "/delete",
			Label:  "blog",
		}
	}

	// An upload round trip hands the stored image back through the URL.
	if imageID := query.Get("image_id"); imageID != "" && data.Modal.Open {
		data.Form.ImageID = imageID
	}
	if data.Modal.Open {
		data.UploadReturn = r.URL.RequestURI()
	}

	data.basePage = h.page(r, "Blogs", "blogs", data.Modal.Open || data.Delete.Modal.Open)
	h.render(w, "blogs", data)
}

// Edit serves the standalone edit page, so a deep link works even when
// the blog sits outside the current list page. The list reaches the same
// form through its edit query parameter.
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		wg      sync.WaitGroup
		blogEnv model.Envelope
		catsEnv model.Envelope
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		blogEnv = h.blogs.Get(r.Context(), model.ListParams{ID: id})
	}()
	go func() {
		defer wg.Done()
		catsEnv = h.categories.Get(r.Context(), model.ListParams{Page: 1, PageSize: 100})
	}()
	wg.Wait()

	if !blogEnv.OK {
		h.renderError(w, r, "Blogs", "blogs", blogEnv.Error)
		return
	}
	if !catsEnv.OK {
		h.renderError(w, r, "Blogs", "blogs", catsEnv.Error)
		return
	}

	blogs, count, err := model.DecodeList[model.Blog](blogEnv.Data)
	if err != nil {
		h.renderError(w, r, "Blogs", "blogs", "Received an unexpected response. Please try again.")
		return
	}
	categories, _, err := model.DecodeList[model.Category](catsEnv.Data)
	if err != nil {
		h.renderError(w, r, "Blogs", "blogs", "Received an unexpected response. Please try again.")
		return
	}

	blog := findBlog(blogs, id)
	if blog == nil {
		h.toastError(r, "Blog not found.")
		redirect(w, r, "/blogs")
		return
	}

	data := blogsPage{
		Table:      view.BuildTable(blogs, blogColumns(categories), view.NewPaging(1, 10, count), false),
		Modal:      view.Modal{Open: true, Title: "Edit Blog", Size: "lg", CloseURL: "/blogs"},
		Form:       view.NewBlogForm(blog, categories),
		FormAction: "/blogs/" + id + "/edit",
	}
	data.Table.Actions = true

	if imageID := r.URL.Query().Get("image_id"); imageID != "" {
		data.Form.ImageID = imageID
	}
	data.UploadReturn = r.URL.RequestURI()

	data.basePage = h.page(r, "Blogs", "blogs", true)
	h.render(w, "blogs", data)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if !form.CanSubmit() {
		h.toastError(r, "Please fill in all required fields.")
		redirect(w, r, "/blogs")
		return
	}

	env := h.blogs.Create(r.Context(), form.Input())
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "Blog created successfully")
	}

	redirect(w, r, "/blogs")
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if !form.CanSubmit() {
		h.toastError(r, "Please fill in all required fields.")
		redirect(w, r, "/blogs")
		return
	}

	env := h.blogs.Update(r.Context(), id, form.Input())
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "Blog updated successfully")
	}

	redirect(w, r, "/blogs")
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	env := h.blogs.Delete(r.Context(), id)
	if !env.OK {
		h.toastError(r, env.Error)
	} else {
		h.toastSuccess(r, "Blog deleted successfully")
	}

	redirect(w, r, "/blogs")
}

func (h *BlogHandler) parseForm(w http.ResponseWriter, r *http.Request) (view.BlogForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return view.BlogForm{}, false
	}

	status := r.PostFormValue("status")
	if status != model.StatusPublished {
		status = model.StatusDraft
	}

	return view.BlogForm{
		Title:      r.PostFormValue("title"),
		Content:    r.PostFormValue("content"),
		CategoryID: r.PostFormValue("category_id"),
		Status:     status,
		Tags:       r.PostFormValue("tags"),
		ImageID:    r.PostFormValue("image_id"),
	}, true
}

func blogColumns(categories []model.Category) []view.Column[model.Blog] {
	return []view.Column[model.Blog]{
		{Key: "title", Header: "Title"},
		{Key: "category", Header: "Category", Render: func(b model.Blog) string {
			return categoryLabel(b.Category, b.CategoryID, categories)
		}},
		{Key: "status", Header: "Status"},
		{Key: "tags", Header: "Tags"},
		{Key: "created_at", Header: "Created"},
	}
}

// categoryLabel prefers the denormalized name; records that carry only a
// category id fall back to a title lookup.
func categoryLabel(name string, id string, categories []model.Category) string {
	if name != "" {
		return name
	}

	for _, c := range categories {
		if c.ID == id {
			return c.Title
		}
	}

	return ""
}

func findBlog(blogs []model.Blog, id string) *model.Blog {
	for i := range blogs {
		if blogs[i].ID == id {
			return &blogs[i]
		}
	}

	return nil
}
