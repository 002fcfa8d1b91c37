package resource

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"cms-admin/internal/model"
	"cms-admin/internal/util"
)

// FaqService wraps the upstream FAQ endpoints.
type FaqService struct {
	api API
	now func() time.Time
}

func NewFaqService(api API) *FaqService {
	return &FaqService{api: api, now: time.Now}
}

func (s *FaqService) Get(ctx context.Context, params model.ListParams) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/faqs",
		Method: http.MethodGet,
		Params: cacheBust(listQuery(params), s.now),
	})
}

func (s *FaqService) Create(ctx context.Context, input model.CreateFaqInput) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/faqs",
		Method: http.MethodPost,
		Body:   sanitizeFaqInput(input),
	})
}

func (s *FaqService) Update(ctx context.Context, id string, input model.CreateFaqInput) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/faqs/" + url.PathEscape(id),
		Method: http.MethodPut,
		Body:   sanitizeFaqInput(input),
	})
}

// Delete keeps the upstream's trailing slash; dropping it hits a redirect.
func (s *FaqService) Delete(ctx context.Context, id string) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/faqs/" + url.PathEscape(id) + "/",
		Method: http.MethodDelete,
	})
}

func (s *FaqService) HardDelete(ctx context.Context, id string) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/faqs/hard-delete/" + url.PathEscape(id) + "/",
		Method: http.MethodDelete,
	})
}

func (s *FaqService) Restore(ctx context.Context, id string) model.Envelope {
	return s.api.Do(ctx, model.Request{
		URL:    "/cms/api/v1/faqs/restore/" + url.PathEscape(id),
		Method: http.MethodPatch,
	})
}

func sanitizeFaqInput(input model.CreateFaqInput) model.CreateFaqInput {
	input.Question = util.SanitizeInput(input.Question)
	input.Answer = util.SanitizeInput(input.Answer)
	input.CategoryID = util.SanitizeInput(input.CategoryID)
	return input
}
