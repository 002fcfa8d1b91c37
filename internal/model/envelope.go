package model

import (
	"encoding/json"
	"fmt"
)

// Request describes one logical call against the upstream CMS API. It is
// built by a resource wrapper and never mutated afterwards.
type Request struct {
	URL    string
	Method string
	Body   any
	Params map[string]any
}

// Envelope is the uniform result of every upstream call. Exactly one of
// Data/Error is meaningful: OK=true carries Data, OK=false carries Error
// with Data nil. Status is the upstream HTTP status, or 0 when the request
// never produced a response (transport failure).
type Envelope struct {
	OK     bool            `json:"ok"`
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error,omitempty"`
}

// Paged is the upstream pagination wrapper for list endpoints.
type Paged[T any] struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`
	Data     []T `json:"data"`
}

// DecodeList decodes a list body that may arrive either as a Paged wrapper
// or as a bare array. It returns the items and the total count (the wrapper
// count when present, otherwise the slice length).
func DecodeList[T any](data json.RawMessage) ([]T, int, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("empty list body")
	}

	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, len(bare), nil
	}

	var paged Paged[T]
	if err := json.Unmarshal(data, &paged); err != nil {
		return nil, 0, fmt.Errorf("unrecognized list body: %w", err)
	}

	count := paged.Count
	if count == 0 {
		count = len(paged.Data)
	}

	return paged.Data, count, nil
}

// DecodeData unmarshals an envelope body into a typed value.
func DecodeData(env Envelope, out any) error {
	if !env.OK {
		return fmt.Errorf("cannot decode failed envelope: %s", env.Error)
	}

	return json.Unmarshal(env.Data, out)
}
