// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"

	"github.com/layolu/godoujinshiinfo/core/requests"
)

// IsFollowingTag reports whether the session user follows the tag.
// Reads session-scoped state, so the token is refreshed first when near
// expiry.
func (api *API) IsFollowingTag(ctx context.Context, tagID string) (bool, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return false, err
	}

	res, err := api.client.Get(ctx, followingEntryPath(tagID), nil)
	if err != nil {
		return false, err
	}

	return res.Get("data").Bool(), nil
}

// FollowTag subscribes the session user to the tag.
func (api *API) FollowTag(ctx context.Context, tagID string) error {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return err
	}

	_, err := api.client.Post(ctx, requests.RequestOptions{
		Path:    followingPath,
		Form:    map[string]string{"tag": tagID},
		NoCache: true,
	})

	return err
}

// UnfollowTag unsubscribes the session user from the tag.
func (api *API) UnfollowTag(ctx context.Context, tagID string) error {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return err
	}

	_, err := api.client.Delete(ctx, requests.RequestOptions{
		Path:    followingPath,
		Form:    map[string]string{"tag": tagID},
		NoCache: true,
	})

	return err
}
