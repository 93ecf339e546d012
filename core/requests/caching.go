// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package requests

import (
	"bytes"
	"encoding/gob"
	"hash/fnv"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// cachedItem represents a cached response body along with its expiration
// time and original URL.
type cachedItem struct {
	Body      []byte
	ExpiresAt time.Time
	URL       string
}

// generateCacheKey binds cached responses to both the request URL and the
// full bearer token by combining them into a hashed identifier.
//
// Hashing the entire token rather than its subject keeps cached
// authenticated responses strictly scoped to the exact session that
// originally requested them.
func generateCacheKey(url, bearer string) string {
	hasher := fnv.New32()

	_, _ = hasher.Write([]byte(url + ":" + bearer))

	return strconv.FormatUint(uint64(hasher.Sum32()), 16)
}

// cachedResponse returns a fresh cached body for a GET request, if one exists.
//
// Expired or undecodable entries are removed on sight.
func (c *Client) cachedResponse(opts RequestOptions, targetURL, bearer string) ([]byte, bool) {
	if c.cache == nil || opts.NoCache || opts.Method != http.MethodGet {
		return nil, false
	}

	cacheKey := generateCacheKey(targetURL, bearer)

	cachedBytes, found := c.cache.Get(cacheKey)
	if !found {
		return nil, false
	}

	var item cachedItem
	if err := gob.NewDecoder(bytes.NewReader(cachedBytes)).Decode(&item); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to decode cached item; removing")
		c.cache.Remove(cacheKey)

		return nil, false
	}

	if !time.Now().Before(item.ExpiresAt) {
		c.cache.Remove(cacheKey)

		return nil, false
	}

	return item.Body, true
}

// storeResponse records a successful GET response body in the cache.
func (c *Client) storeResponse(opts RequestOptions, targetURL, bearer string, statusCode int, body []byte) {
	if c.cache == nil || opts.NoCache || opts.Method != http.MethodGet || statusCode != http.StatusOK {
		return
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cachedItem{
		Body:      body,
		ExpiresAt: time.Now().Add(c.cacheTTL),
		URL:       targetURL,
	}); err != nil {
		// Log the error but don't fail the request.
		log.Warn().Err(err).Msg("Failed to serialize item for cache")

		return
	}

	c.cache.Add(generateCacheKey(targetURL, bearer), buf.Bytes())
}
