// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"encoding/json"

	"github.com/layolu/godoujinshiinfo/core/paginator"
)

// Changelog returns a cursor over the site-wide edit history.
func (api *API) Changelog(page, limit int) *paginator.Cursor[ChangelogEntry] {
	return paginator.New[ChangelogEntry](api.getIssuer(changelogPath), pageParams(page, limit))
}

// ChangelogEntry fetches a single changelog entry by ID.
func (api *API) ChangelogEntry(ctx context.Context, id string) (ChangelogEntry, error) {
	res, err := api.client.Get(ctx, changelogEntryPath(id), nil)
	if err != nil {
		return ChangelogEntry{}, err
	}

	var entry ChangelogEntry
	if err := json.Unmarshal([]byte(res.Raw), &entry); err != nil {
		return ChangelogEntry{}, err
	}

	return entry, nil
}
