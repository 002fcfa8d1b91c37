package resource

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-admin/internal/model"
)

type fakeAPI struct {
	last model.Request
	env  model.Envelope
}

func (f *fakeAPI) Do(_ context.Context, req model.Request) model.Envelope {
	f.last = req
	return f.env
}

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}

func TestBlogServiceGet_BuildsQuery(t *testing.T) {
	api := &fakeAPI{env: model.Envelope{OK: true, Status: 200}}
	svc := NewBlogService(api)
	svc.now = fixedNow

	env := svc.Get(context.Background(), model.ListParams{
		Page:       2,
		PageSize:   10,
		Query:      "travel",
		CategoryID: "cat-1",
	})

	assert.True(t, env.OK)
	assert.Equal(t, "/cms/api/v1/blogs", api.last.URL)
	assert.Equal(t, http.MethodGet, api.last.Method)
	assert.Equal(t, 2, api.last.Params["page"])
	assert.Equal(t, 10, api.last.Params["page_size"])
	assert.Equal(t, "travel", api.last.Params["query"])
	assert.Equal(t, "cat-1", api.last.Params["category_id"])
	assert.Equal(t, int64(1700000000000), api.last.Params["_t"])

	_, hasSlug := api.last.Params["slug"]
	assert.False(t, hasSlug, "zero-value filters are omitted")
	_, hasID := api.last.Params["id"]
	assert.False(t, hasID)
}

func TestBlogServiceCreate_SanitizesStrings(t *testing.T) {
	api := &fakeAPI{env: model.Envelope{OK: true, Status: 201}}
	svc := NewBlogService(api)

	svc.Create(context.Background(), model.CreateBlogInput{
		Title:      "  <b>Hi</b>  ",
		Content:    "body & soul",
		CategoryID: "cat-1",
		Status:     model.StatusDraft,
		Tags:       []string{"news"},
		ImageIDs:   []string{"img-1"},
	})

	assert.Equal(t, "/cms/api/v1/blogs", api.last.URL)
	assert.Equal(t, http.MethodPost, api.last.Method)

	body, ok := api.last.Body.(model.CreateBlogInput)
	require.True(t, ok)
	assert.Equal(t, "&lt;b&gt;Hi&lt;/b&gt;", body.Title)
	assert.Equal(t, "body &amp; soul", body.Content)
	assert.Equal(t, []string{"news"}, body.Tags)
	assert.Equal(t, []string{"img-1"}, body.ImageIDs)
}

func TestBlogServiceMutationURLs(t *testing.T) {
	api := &fakeAPI{env: model.Envelope{OK: true}}
	svc := NewBlogService(api)
	ctx := context.Background()

	svc.Update(ctx, "b1", model.CreateBlogInput{Title: "t"})
	assert.Equal(t, "/cms/api/v1/blog/b1", api.last.URL)
	assert.Equal(t, http.MethodPut, api.last.Method)

	svc.Delete(ctx, "b1")
	assert.Equal(t, "/cms/api/v1/blogs/b1", api.last.URL)
	assert.Equal(t, http.MethodDelete, api.last.Method)

	svc.HardDelete(ctx, "b1")
	assert.Equal(t, "/cms/api/v1/blogs/hard-delete/b1/", api.last.URL)
	assert.Equal(t, http.MethodDelete, api.last.Method)

	svc.Restore(ctx, "b1")
	assert.Equal(t, "/cms/api/v1/blogs/restore/b1", api.last.URL)
	assert.Equal(t, http.MethodPatch, api.last.Method)
}

func TestFaqServiceURLs(t *testing.T) {
	api := &fakeAPI{env: model.Envelope{OK: true}}
	svc := NewFaqService(api)
	svc.now = fixedNow
	ctx := context.Background()

	svc.Get(ctx, model.ListParams{Page: 1})
	assert.Equal(t, "/cms/api/v1/faqs", api.last.URL)
	assert.Equal(t, int64(1700000000000), api.last.Params["_t"])

	svc.Create(ctx, model.CreateFaqInput{Question: " q ", Answer: "a", CategoryID: "c"})
	assert.Equal(t, "/cms/api/v1/faqs", api.last.URL)
	body, ok := api.last.Body.(model.CreateFaqInput)
	require.True(t, ok)
	assert.Equal(t, "q", body.Question)

	svc.Update(ctx, "f1", model.CreateFaqInput{Question: "q"})
	assert.Equal(t, "/cms/api/v1/faqs/f1", api.last.URL)
	assert.Equal(t, http.MethodPut, api.last.Method)

	svc.Delete(ctx, "f1")
	assert.Equal(t, "/cms/api/v1/faqs/f1/", api.last.URL)

	svc.Restore(ctx, "f1")
	assert.Equal(t, "/cms/api/v1/faqs/restore/f1", api.last.URL)
	assert.Equal(t, http.MethodPatch, api.last.Method)

	svc.HardDelete(ctx, "f1")
	assert.Equal(t, "/cms/api/v1/faqs/hard-delete/f1/", api.last.URL)
}

func TestBlogCategoryServiceURLs(t *testing.T) {
	api := &fakeAPI{env: model.Envelope{OK: true}}
	svc := NewBlogCategoryService(api)
	ctx := context.Background()

	svc.Get(ctx, model.ListParams{Page: 1, PageSize: 100})
	assert.Equal(t, "/cms/api/v1/blog/categories", api.last.URL)
	_, hasBust := api.last.Params["_t"]
	assert.False(t, hasBust, "category reads carry no cache buster")

	svc.Create(ctx, model.CreateCategoryInput{Title: " News "})
	assert.Equal(t, "/cms/api/v1/blogs/categories", api.last.URL)
	body, ok := api.last.Body.(model.CreateCategoryInput)
	require.True(t, ok)
	assert.Equal(t, "News", body.Title)

	svc.Update(ctx, "c1", model.CreateCategoryInput{Title: "News"})
	assert.Equal(t, "/cms/api/v1/blog/categories/c1", api.last.URL)

	svc.Delete(ctx, "c1")
	assert.Equal(t, "/cms/api/v1/blog/categories/c1", api.last.URL)
	assert.Equal(t, http.MethodDelete, api.last.Method)
}

func TestFaqCategoryServiceURLs(t *testing.T) {
	api := &fakeAPI{env: model.Envelope{OK: true}}
	svc := NewFaqCategoryService(api)
	ctx := context.Background()

	svc.Get(ctx, model.ListParams{})
	assert.Equal(t, "/cms/api/v1/faq/categories", api.last.URL)

	svc.Create(ctx, model.CreateCategoryInput{Title: "General"})
	assert.Equal(t, "/cms/api/v1/faq/categories", api.last.URL)
}

func TestServiceFailureEnvelopePassesThrough(t *testing.T) {
	api := &fakeAPI{env: model.Envelope{OK: false, Status: 409, Error: "Conflict"}}
	svc := NewBlogService(api)

	env := svc.Delete(context.Background(), "b1")
	assert.False(t, env.OK)
	assert.Equal(t, 409, env.Status)
	assert.Equal(t, "Conflict", env.Error)
}
