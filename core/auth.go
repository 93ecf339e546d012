// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"net/url"

	"github.com/layolu/godoujinshiinfo/core/requests"
)

// Login authenticates with email and password and installs the returned
// token pair on the session.
//
// Transport errors (invalid credentials included) propagate unwrapped as
// *requests.APIError.
func (api *API) Login(ctx context.Context, email, password string) error {
	res, err := api.client.Post(ctx, requests.RequestOptions{
		Path: authLoginPath,
		Params: url.Values{
			"email":    {email},
			"password": {password},
		},
		NoCache: true,
	})
	if err != nil {
		return err
	}

	return api.tokens.SetTokenPair(
		res.Get("access_token").String(),
		res.Get("refresh_token").String(),
	)
}

// Register creates a new account and installs the returned token pair on
// the session.
func (api *API) Register(ctx context.Context, name, email, password, passwordConfirmation string) error {
	res, err := api.client.Post(ctx, requests.RequestOptions{
		Path: authCreatePath,
		Params: url.Values{
			"name":                  {name},
			"email":                 {email},
			"password":              {password},
			"password_confirmation": {passwordConfirmation},
		},
		NoCache: true,
	})
	if err != nil {
		return err
	}

	return api.tokens.SetTokenPair(
		res.Get("access_token").String(),
		res.Get("refresh_token").String(),
	)
}

// SetAccessToken installs an externally obtained access token on the
// session, e.g. one persisted by the caller. The refresh token, if any,
// must be set through Login or Register.
func (api *API) SetAccessToken(accessToken string) error {
	return api.tokens.SetToken(accessToken)
}
