package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-admin/internal/model"
	"cms-admin/internal/resource"
	"cms-admin/internal/toast"
	"cms-admin/internal/view"
)

// fakeAPI scripts one envelope per URL prefix and records every request.
// Joint page loads call it from two goroutines, hence the lock.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]model.Envelope
	requests  []model.Request
}

func (f *fakeAPI) Do(ctx context.Context, req model.Request) model.Envelope {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	for prefix, env := range f.responses {
		if strings.HasPrefix(req.URL, prefix) {
			return env
		}
	}

	return model.Envelope{OK: true, Status: 200, Data: json.RawMessage(`[]`)}
}

func (f *fakeAPI) called(prefix string) bool {
	_, ok := f.request(prefix)
	return ok
}

func (f *fakeAPI) request(prefix string) (model.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, req := range f.requests {
		if strings.HasPrefix(req.URL, prefix) {
			return req, true
		}
	}

	return model.Request{}, false
}

func okList[T any](t *testing.T, items []T) model.Envelope {
	t.Helper()

	raw, err := json.Marshal(items)
	require.NoError(t, err)

	return model.Envelope{OK: true, Status: 200, Data: raw}
}

func newTestBase(t *testing.T) (Base, *toast.Store) {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	store := toast.NewStore()
	return NewBase(renderer, store), store
}

func newBlogRouter(t *testing.T, api *fakeAPI) (*chi.Mux, *toast.Store) {
	t.Helper()

	b, store := newTestBase(t)
	h := NewBlogHandler(b, resource.NewBlogService(api), resource.NewBlogCategoryService(api))

	router := chi.NewRouter()
	router.Get("/blogs", h.Index)
	router.Post("/blogs/create", h.Create)
	router.Get("/blogs/{id}/edit", h.Edit)
	router.Post("/blogs/{id}/edit", h.Update)
	router.Post("/blogs/{id}/delete", h.Delete)

	return router, store
}

func guestToasts(store *toast.Store) []toast.Toast {
	return store.Queue("").List()
}

func TestBlogIndexRendersTable(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs": okList(t, []model.Blog{{ID: "b1", Title: "First post", Category: "Travel", Status: "draft"}}),
		"/cms/api/v1/blog/categories": okList(t, []model.Category{{ID: "c1", Title: "Travel"}}),
	}}
	router, _ := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "First post")
	assert.Contains(t, body, "Travel")
	assert.True(t, api.called("/cms/api/v1/blogs"))
	assert.True(t, api.called("/cms/api/v1/blog/categories"))
}

func TestBlogIndexFailsWhenEitherLoadFails(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs":           okList(t, []model.Blog{}),
		"/cms/api/v1/blog/categories": {OK: false, Status: 503, Error: "Service temporarily unavailable. Please try again later."},
	}}
	router, _ := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Service temporarily unavailable. Please try again later.")
}

func TestBlogIndexOpensCreateModal(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs":           okList(t, []model.Blog{}),
		"/cms/api/v1/blog/categories": okList(t, []model.Category{{ID: "c1", Title: "Travel"}}),
	}}
	router, _ := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs?modal=create", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Create Blog")
	assert.Contains(t, body, `<body class="modal-open">`)
	assert.Contains(t, body, `action="/blogs/create"`)
}

func TestBlogIndexEditModalPopulatesForm(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs": okList(t, []model.Blog{{
			ID: "b1", Title: "First post", Content: "Body", Category: "Travel", Status: "published",
		}}),
		"/cms/api/v1/blog/categories": okList(t, []model.Category{{ID: "c1", Title: "Travel"}}),
	}}
	router, _ := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs?edit=b1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Edit Blog")
	assert.Contains(t, body, `value="First post"`)
	// category resolved from the denormalized title
	assert.Contains(t, body, `action="/blogs/b1/edit"`)
}

func TestBlogEditPageLoadsRecordByID(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs": okList(t, []model.Blog{{
			ID: "b1", Title: "First post", Content: "Body", Category: "Travel", Status: "published",
		}}),
		"/cms/api/v1/blog/categories": okList(t, []model.Category{{ID: "c1", Title: "Travel"}}),
	}}
	router, _ := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs/b1/edit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Edit Blog")
	assert.Contains(t, body, `<body class="modal-open">`)
	assert.Contains(t, body, `value="First post"`)
	assert.Contains(t, body, `action="/blogs/b1/edit"`)

	req, ok := api.request("/cms/api/v1/blogs")
	require.True(t, ok)
	assert.Equal(t, "b1", req.Params["id"])
}

func TestBlogEditPageFailsWhenCategoriesFail(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs":           okList(t, []model.Blog{{ID: "b1", Title: "First post"}}),
		"/cms/api/v1/blog/categories": {OK: false, Status: 503, Error: "Service temporarily unavailable. Please try again later."},
	}}
	router, _ := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs/b1/edit", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Service temporarily unavailable. Please try again later.")
}

func TestBlogEditPageUnknownIDRedirects(t *testing.T) {
	api := &fakeAPI{}
	router, store := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs/missing/edit", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blogs", rec.Header().Get("Location"))

	toasts := guestToasts(store)
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.TypeError, toasts[0].Type)
	assert.Equal(t, "Blog not found.", toasts[0].Message)
}

func TestBlogIndexClampsPagingBeforeFetch(t *testing.T) {
	api := &fakeAPI{}
	router, _ := newBlogRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/blogs?page=0&pageSize=7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	req, ok := api.request("/cms/api/v1/blogs")
	require.True(t, ok)
	assert.Equal(t, 1, req.Params["page"])
	assert.Equal(t, 10, req.Params["page_size"])
}

func postForm(router http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBlogUpdateWithEmptyTitleSkipsUpstream(t *testing.T) {
	api := &fakeAPI{}
	router, store := newBlogRouter(t, api)

	rec := postForm(router, "/blogs/b1/edit", url.Values{
		"title":       {""},
		"content":     {"Body"},
		"category_id": {"c1"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, api.requests, "invalid form must not reach the upstream")

	toasts := guestToasts(store)
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.TypeError, toasts[0].Type)
	assert.Equal(t, "Please fill in all required fields.", toasts[0].Message)
}

func TestBlogCreateSuccess(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs": {OK: true, Status: 201, Data: json.RawMessage(`{"id":"b9"}`)},
	}}
	router, store := newBlogRouter(t, api)

	rec := postForm(router, "/blogs/create", url.Values{
		"title":       {"New post"},
		"content":     {"Body"},
		"category_id": {"c1"},
		"tags":        {"travel, notes"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blogs", rec.Header().Get("Location"))
	require.Len(t, api.requests, 1)
	assert.Equal(t, http.MethodPost, api.requests[0].Method)

	toasts := guestToasts(store)
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.TypeSuccess, toasts[0].Type)
	assert.Equal(t, "Blog created successfully", toasts[0].Message)
}

func TestBlogDeleteFailureShowsExactError(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blogs/": {OK: false, Status: 409, Error: "Conflict"},
	}}
	router, store := newBlogRouter(t, api)

	rec := postForm(router, "/blogs/b1/delete", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	toasts := guestToasts(store)
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.TypeError, toasts[0].Type)
	assert.Equal(t, "Conflict", toasts[0].Message)
}

func newCategoryRouter(t *testing.T, blogAPI *fakeAPI, faqAPI *fakeAPI) (*chi.Mux, *toast.Store) {
	t.Helper()

	b, store := newTestBase(t)
	h := NewCategoryHandler(b, resource.NewBlogCategoryService(blogAPI), resource.NewFaqCategoryService(faqAPI))

	router := chi.NewRouter()
	router.Get("/categories", h.Index)
	router.Post("/categories/create", h.Create)
	router.Post("/categories/{id}/edit", h.Update)
	router.Post("/categories/{id}/delete", h.Delete)

	return router, store
}

func TestCategoryTabsSelectService(t *testing.T) {
	blogAPI := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/blog/categories": okList(t, []model.Category{{ID: "c1", Title: "Travel"}}),
	}}
	faqAPI := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/faq/categories": okList(t, []model.Category{{ID: "c2", Title: "General"}}),
	}}
	router, _ := newCategoryRouter(t, blogAPI, faqAPI)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/categories?tab=faqs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "General")
	assert.True(t, faqAPI.called("/cms/api/v1/faq/categories"))
	assert.Empty(t, blogAPI.requests)
}

func TestCategoryPagingPreservesTab(t *testing.T) {
	faqAPI := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/faq/categories": okList(t, []model.Category{{ID: "c2", Title: "General"}}),
	}}
	router, _ := newCategoryRouter(t, &fakeAPI{}, faqAPI)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/categories?tab=faqs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tab=faqs&amp;page=1")
}

func TestCategoryCreateRoutesToTabService(t *testing.T) {
	blogAPI := &fakeAPI{}
	faqAPI := &fakeAPI{}
	router, _ := newCategoryRouter(t, blogAPI, faqAPI)

	rec := postForm(router, "/categories/create?tab=faqs", url.Values{"title": {"General"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/categories?tab=faqs", rec.Header().Get("Location"))
	assert.Empty(t, blogAPI.requests)
	require.Len(t, faqAPI.requests, 1)
	assert.Equal(t, "/cms/api/v1/faq/categories", faqAPI.requests[0].URL)
}

func TestFaqIndexResolvesCategoryTitleByID(t *testing.T) {
	api := &fakeAPI{responses: map[string]model.Envelope{
		"/cms/api/v1/faqs": okList(t, []model.Faq{{ID: "f1", Question: "How?", Answer: "Like this", CategoryID: "c2"}}),
		"/cms/api/v1/faq/categories": okList(t, []model.Category{{ID: "c2", Title: "General"}}),
	}}

	b, _ := newTestBase(t)
	h := NewFaqHandler(b, resource.NewFaqService(api), resource.NewFaqCategoryService(api))

	router := chi.NewRouter()
	router.Get("/faqs", h.Index)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/faqs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "General")
}

func TestToastDismissRemovesToast(t *testing.T) {
	b, store := newTestBase(t)
	h := NewToastHandler(b)

	id := store.Queue("").Add(toast.TypeInfo, "hello")

	router := chi.NewRouter()
	router.Post("/toasts/{id}/dismiss", h.Dismiss)

	req := httptest.NewRequest("POST", "/toasts/"+id+"/dismiss", nil)
	req.Header.Set("Referer", "/blogs?page=2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blogs?page=2", rec.Header().Get("Location"))
	assert.Empty(t, store.Queue("").List())
}

func TestToastDismissKeepsRedirectOnSite(t *testing.T) {
	b, store := newTestBase(t)
	h := NewToastHandler(b)

	router := chi.NewRouter()
	router.Post("/toasts/{id}/dismiss", h.Dismiss)

	// An absolute Referer keeps only its path and query; a useless one
	// falls back to the dashboard.
	cases := []struct {
		referer string
		want    string
	}{
		{"https://attacker.example/phish", "/phish"},
		{"http://localhost/blogs?page=2", "/blogs?page=2"},
		{"", "/dashboard"},
		{"https://attacker.example", "/dashboard"},
		{"javascript:alert(1)", "/dashboard"},
	}

	for _, tc := range cases {
		id := store.Queue("").Add(toast.TypeInfo, "hello")

		req := httptest.NewRequest("POST", "/toasts/"+id+"/dismiss", nil)
		if tc.referer != "" {
			req.Header.Set("Referer", tc.referer)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, tc.want, rec.Header().Get("Location"), "referer %q", tc.referer)
	}
}
