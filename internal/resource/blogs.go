package resource

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"cms-admin/internal/model"
	"cms-admin/internal/util"
)

// BlogService wraps the upstream blog endpoints. Every method returns the
// proxy envelope unchanged; failures carry normalized messages already.
type BlogService struct {
	api API
	now func() time.Time
}

func NewBlogService(api API) *BlogService {
	return &BlogService{api: api, now: time.Now}
}

func (s *BlogService) Get(ctx context.Context, params model.ListParams) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/blogs",
		Method: http.MethodGet,
		Params: cacheBust(listQuery(params), s.now),
	})
}

func (s *BlogService) Create(ctx context.Context, input model.CreateBlogInput) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/blogs",
		Method: http.MethodPost,
		Body:   sanitizeBlogInput(input),
	})
}

func (s *BlogService) Update(ctx context.Context, id string, input model.CreateBlogInput) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/blog/" + url.PathEscape(id),
		Method: http.MethodPut,
		Body:   sanitizeBlogInput(input),
	})
}

func (s *BlogService) Delete(ctx context.Context, id string) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/blogs/" + url.PathEscape(id),
		Method: http.MethodDelete,
	})
}

func (s *BlogService) HardDelete(ctx context.Context, id string) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/blogs/hard-delete/" + url.PathEscape(id) + "/",
		Method: http.MethodDelete,
	})
}

func (s *BlogService) Restore(ctx context.Context, id string) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/blogs/restore/" + url.PathEscape(id),
		Method: http.MethodPatch,
	})
}

// sanitizeBlogInput escapes the string fields. Slice fields pass through;
// callers build them from already sanitized parts.
func sanitizeBlogInput(input model.CreateBlogInput) model.CreateBlogInput {
	input.Title = util.SanitizeInput(input.Title)
	input.Content = util.SanitizeInput(input.Content)
	input.CategoryID = util.SanitizeInput(input.CategoryID)
	input.Status = util.SanitizeInput(input.Status)
	return input
}
