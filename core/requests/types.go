// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package requests

import (
	"io"
	"net/url"
)

// RequestOptions are parameters for a single API round-trip.
type RequestOptions struct {
	Method string

	// Path is resolved against the configured endpoint base URL.
	Path string

	// Params are sent as query parameters on every method, matching the
	// upstream API's convention of query-string inputs for auth calls.
	Params url.Values

	// Form fields are sent in the request body: urlencoded by default,
	// multipart when Files is non-empty.
	Form map[string]string

	// Files are multipart file attachments, keyed by form field name.
	Files map[string]io.Reader

	// NoCache bypasses the response cache for both reads and writes.
	// Used by token refresh, which must always hit the network.
	NoCache bool
}

// TokenSource supplies the bearer credential attached to requests.
//
// Bearer returns the empty string when no session is held, in which case
// no Authorization header is sent.
type TokenSource interface {
	Bearer() string
}
