// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"io"
	"net/url"

	"github.com/layolu/godoujinshiinfo/core/paginator"
	"github.com/layolu/godoujinshiinfo/core/requests"
)

// SearchFilters restrict a book search. The API expects boolean filters
// as "0" or "1"; empty fields are omitted.
type SearchFilters struct {
	Copybook  string
	Anthology string
	Adult     string
	Novel     string
}

func (f SearchFilters) apply(params url.Values) {
	optional := map[string]string{
		"copybook":  f.Copybook,
		"anthology": f.Anthology,
		"adult":     f.Adult,
		"novel":     f.Novel,
	}

	for key, value := range optional {
		if value != "" {
			params.Set(key, value)
		}
	}
}

// SearchBooks returns a cursor over books matching the query.
func (api *API) SearchBooks(query string, filters SearchFilters, page, limit int) *paginator.Cursor[Book] {
	params := pageParams(page, limit)
	params.Set("q", query)
	filters.apply(params)

	return paginator.New[Book](api.getIssuer(searchBooksPath), params)
}

// SearchTags returns a cursor over tags of one type matching the query.
func (api *API) SearchTags(tagType, query string, page, limit int) *paginator.Cursor[Tag] {
	params := pageParams(page, limit)
	params.Set("q", query)

	return paginator.New[Tag](api.getIssuer(searchTagsPath(tagType)), params)
}

// ImageSearch returns a cursor over books visually matching the uploaded
// image. The image rides along as a multipart attachment on every page
// fetch. Mutating POST: the session token is refreshed first when near
// expiry.
func (api *API) ImageSearch(ctx context.Context, image io.Reader, page, limit int) (*paginator.Cursor[Book], error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	return paginator.New[Book](
		api.postIssuer(imageSearchPath, requests.RequestOptions{
			Files:   map[string]io.Reader{"image": image},
			NoCache: true,
		}),
		pageParams(page, limit),
	), nil
}
