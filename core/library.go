// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"

	"github.com/layolu/godoujinshiinfo/core/requests"
)

// InLibrary reports whether the book is on the session user's shelf of
// the given type. The check reads session-scoped state, so the token is
// refreshed first when near expiry.
func (api *API) InLibrary(ctx context.Context, libraryType, bookID string) (bool, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return false, err
	}

	res, err := api.client.Get(ctx, libraryEntryPath(libraryType, bookID), nil)
	if err != nil {
		return false, err
	}

	return res.Get("data").Bool(), nil
}

// AddToLibrary puts the book on the session user's shelf of the given type.
func (api *API) AddToLibrary(ctx context.Context, libraryType, bookID string) error {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return err
	}

	_, err := api.client.Post(ctx, requests.RequestOptions{
		Path:    libraryPath(libraryType),
		Form:    map[string]string{"book": bookID},
		NoCache: true,
	})

	return err
}

// RemoveFromLibrary takes the book off the session user's shelf of the
// given type.
func (api *API) RemoveFromLibrary(ctx context.Context, libraryType, bookID string) error {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return err
	}

	_, err := api.client.Delete(ctx, requests.RequestOptions{
		Path:    libraryPath(libraryType),
		Form:    map[string]string{"book": bookID},
		NoCache: true,
	})

	return err
}
