// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/layolu/godoujinshiinfo/core/paginator"
	"github.com/layolu/godoujinshiinfo/core/requests"
)

// Notifications returns a cursor over the session user's notification
// feed. The feed is session-scoped, so the token is refreshed first when
// near expiry.
func (api *API) Notifications(ctx context.Context, page, limit int) (*paginator.Cursor[Notification], error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	return paginator.New[Notification](
		api.getIssuer(notificationsPath),
		pageParams(page, limit),
	), nil
}

// UnreadNotificationCount returns the number of unread notifications.
func (api *API) UnreadNotificationCount(ctx context.Context) (int, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return 0, err
	}

	res, err := api.client.Get(ctx, notificationsCountPath, nil)
	if err != nil {
		return 0, err
	}

	return int(res.Get("data").Int()), nil
}

// MarkNotificationRead marks one notification as read and returns the
// server's view of the updated entry.
func (api *API) MarkNotificationRead(ctx context.Context, notificationID string) (gjson.Result, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return gjson.Result{}, err
	}

	res, err := api.client.Put(ctx, requests.RequestOptions{
		Path:    notificationsReadPath,
		Form:    map[string]string{"notification": notificationID},
		NoCache: true,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	return res.Get("data"), nil
}

// MarkAllNotificationsRead marks the whole feed as read.
func (api *API) MarkAllNotificationsRead(ctx context.Context) (gjson.Result, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return gjson.Result{}, err
	}

	res, err := api.client.Put(ctx, requests.RequestOptions{
		Path:    notificationsReadAllPath,
		NoCache: true,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	return res.Get("data"), nil
}
