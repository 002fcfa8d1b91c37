package resource

import (
	"context"
	"net/http"
	"net/url"

	"cms-admin/internal/model"
	"cms-admin/internal/util"
)

// CategoryService wraps one category collection. Blog and FAQ categories
// share the record shape and differ only in URL templates.
type CategoryService struct {
	api       API
	baseURL   string
	createURL string
}

func NewBlogCategoryService(api API) *CategoryService {
	return &CategoryService{
		api:     api,
		baseURL: "/cms/api/v1/blog/categories",
		// upstream registers category creation under the plural prefix
		createURL: "/cms/api/v1/blogs/categories",
	}
}

func NewFaqCategoryService(api API) *CategoryService {
	return &CategoryService{
		api:       api,
		baseURL:   "/cms/api/v1/faq/categories",
		createURL: "/cms/api/v1/faq/categories",
	}
}

func (s *CategoryService) Get(ctx context.Context, params model.ListParams) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    s.baseURL,
		Method: http.MethodGet,
		Params: listQuery(params),
	})
}

func (s *CategoryService) Create(ctx context.Context, input model.CreateCategoryInput) model.Envelope {
	input.Title = util.SanitizeInput(input.Title)

	return s.api.Do(ctx, model.Request{
		URL:    s.createURL,
		Method: http.MethodPost,
		Body:   input,
	})
}

func (s *CategoryService) Update(ctx context.Context, id string, input model.CreateCategoryInput) model.Envelope {
	input.Title = util.SanitizeInput(input.Title)

	return s.api.Do(ctx, model.Request{
		URL:    s.baseURL + "/" + url.PathEscape(id),
		Method: http.MethodPut,
		Body:   input,
	})
}

func (s *CategoryService) Delete(ctx context.Context, id string) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    s.baseURL + "/" + url.PathEscape(id),
		Method: http.MethodDelete,
	})
}
