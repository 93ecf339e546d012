// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	config "github.com/layolu/godoujinshiinfo/configs"
	"github.com/layolu/godoujinshiinfo/core/paginator"
	"github.com/layolu/godoujinshiinfo/core/requests"
	"github.com/layolu/godoujinshiinfo/core/tokenmanager"
)

// API is one authenticated (or anonymous) session against the
// doujinshi.info API. Create it with [New]; the zero value is not usable.
//
// All methods are safe for concurrent use. The session token is the only
// state shared between calls; each returned cursor owns its query state
// exclusively.
type API struct {
	cfg    *config.Config
	client *requests.Client
	tokens *tokenmanager.TokenManager
}

// New creates an API session from the configuration.
func New(cfg *config.Config) *API {
	client := requests.NewClient(cfg, nil)

	// The refresh call reuses the login endpoint with the stored subject
	// and refresh token. It must bypass the GET/response cache: a stale
	// token pair served from cache would defeat the refresh entirely.
	tokens := tokenmanager.New(func(ctx context.Context, subject, refreshToken string) (string, string, error) {
		res, err := client.Post(ctx, requests.RequestOptions{
			Path: authLoginPath,
			Params: url.Values{
				"user":          {subject},
				"refresh_token": {refreshToken},
			},
			NoCache: true,
		})
		if err != nil {
			return "", "", err
		}

		return res.Get("access_token").String(), res.Get("refresh_token").String(), nil
	}, cfg.Auth.RefreshDeadline)

	client.SetTokenSource(tokens)

	return &API{
		cfg:    cfg,
		client: client,
		tokens: tokens,
	}
}

// Tokens exposes the session's token manager.
func (api *API) Tokens() *tokenmanager.TokenManager {
	return api.tokens
}

// getIssuer adapts a GET endpoint into a cursor's issue function.
func (api *API) getIssuer(path string) paginator.IssueFunc {
	return func(ctx context.Context, params url.Values) (gjson.Result, error) {
		return api.client.Get(ctx, path, params)
	}
}

// postIssuer adapts a POST endpoint into a cursor's issue function.
// The form fields and files ride along unchanged on every page fetch.
func (api *API) postIssuer(path string, opts requests.RequestOptions) paginator.IssueFunc {
	opts.Path = path

	return func(ctx context.Context, params url.Values) (gjson.Result, error) {
		opts.Params = params

		return api.client.Post(ctx, opts)
	}
}

// putIssuer adapts a PUT endpoint into a cursor's issue function.
func (api *API) putIssuer(path string, opts requests.RequestOptions) paginator.IssueFunc {
	opts.Path = path

	return func(ctx context.Context, params url.Values) (gjson.Result, error) {
		opts.Params = params

		return api.client.Put(ctx, opts)
	}
}

// pageParams builds the initial parameter mapping of a list query.
func pageParams(page, limit int) url.Values {
	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = paginator.DefaultPerPage
	}

	return url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
}

// tagListToForm encodes a tag ID list in the server's indexed form-field
// convention: tags[0], tags[1], ...
func tagListToForm(form map[string]string, tagIDs []string) {
	for i, id := range tagIDs {
		form[fmt.Sprintf("tags[%d]", i)] = id
	}
}
