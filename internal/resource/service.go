package resource

import (
	"context"
	"time"

	"cms-admin/internal/model"
)

// API is the slice of the upstream client the resource services use.
type API interface {
	Do(ctx context.Context, req model.Request) model.Envelope
}

// listQuery builds the shared query parameters for paged list calls.
// Zero values are left out entirely.
func listQuery(params model.ListParams) map[string]any {
	query := map[string]any{}
	if params.Page > 0 {
		query["page"] = params.Page
	}
	if params.PageSize > 0 {
		query["page_size"] = params.PageSize
	}
	if params.Query != "" {
		query["query"] = params.Query
	}
	if params.ID != "" {
		query["id"] = params.ID
	}
	if params.Slug != "" {
		query["slug"] = params.Slug
	}
	if params.CategoryID != "" {
		query["category_id"] = params.CategoryID
	}

	return query
}

// cacheBust adds the _t timestamp parameter used to defeat intermediary
// caching on record list reads.
func cacheBust(query map[string]any, now func() time.Time) map[string]any {
	query["_t"] = now().UnixMilli()
	return query
}
