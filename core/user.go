// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"encoding/json"

	"github.com/layolu/godoujinshiinfo/core/paginator"
)

// User fetches a public user profile by slug.
func (api *API) User(ctx context.Context, slug string) (User, error) {
	res, err := api.client.Get(ctx, userPath(slug), nil)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal([]byte(res.Raw), &user); err != nil {
		return User{}, err
	}

	return user, nil
}

// UserContributions returns a cursor over the user's accepted edits.
func (api *API) UserContributions(slug string, page, limit int) *paginator.Cursor[ChangelogEntry] {
	return paginator.New[ChangelogEntry](
		api.getIssuer(userContributionsPath(slug)),
		pageParams(page, limit),
	)
}

// UserLibrary returns a cursor over one shelf of the user's library
// (e.g. "owned", "wanted", "read").
func (api *API) UserLibrary(slug, libraryType string, page, limit int) *paginator.Cursor[Book] {
	return paginator.New[Book](
		api.getIssuer(userLibraryPath(slug, libraryType)),
		pageParams(page, limit),
	)
}

// UserFollowingTags returns a cursor over the tags the user follows.
// The server scopes visibility to the session, so the token is refreshed
// first when near expiry.
func (api *API) UserFollowingTags(ctx context.Context, slug string, page, limit int) (*paginator.Cursor[Tag], error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	return paginator.New[Tag](
		api.getIssuer(userFollowingPath(slug)),
		pageParams(page, limit),
	), nil
}
