// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"encoding/json"

	"github.com/layolu/godoujinshiinfo/core/paginator"
	"github.com/layolu/godoujinshiinfo/core/requests"
)

// TagFields are the optional attributes of a tag accepted by the create
// and update endpoints. Empty fields are omitted from the request.
type TagFields struct {
	NameRomaji          string
	NameEnglish         string
	Aliases             string
	DescriptionEnglish  string
	DescriptionJapanese string
	DateStart           string
	DateEnd             string
	Links               string
}

func (f TagFields) apply(form map[string]string) {
	optional := map[string]string{
		"name_romaji":          f.NameRomaji,
		"name_english":         f.NameEnglish,
		"aliases":              f.Aliases,
		"description_english":  f.DescriptionEnglish,
		"description_japanese": f.DescriptionJapanese,
		"date_start":           f.DateStart,
		"date_end":             f.DateEnd,
		"links":                f.Links,
	}

	for key, value := range optional {
		if value != "" {
			form[key] = value
		}
	}
}

// TagTypes returns the list of known tag types.
func (api *API) TagTypes(ctx context.Context) ([]TagType, error) {
	res, err := api.client.Get(ctx, tagTypesPath, nil)
	if err != nil {
		return nil, err
	}

	var types []TagType
	if err := json.Unmarshal([]byte(res.Get("data").Raw), &types); err != nil {
		return nil, err
	}

	return types, nil
}

// Tags returns a cursor over all tags.
func (api *API) Tags(page, limit int) *paginator.Cursor[Tag] {
	return paginator.New[Tag](api.getIssuer(tagsPath), pageParams(page, limit))
}

// TagsByType returns a cursor over all tags of one type.
func (api *API) TagsByType(tagType string, page, limit int) *paginator.Cursor[Tag] {
	return paginator.New[Tag](api.getIssuer(tagsByTypePath(tagType)), pageParams(page, limit))
}

// Tag returns a cursor over the books carrying the tag. The tag's own
// metadata rides alongside the paginated book list in the same response;
// read it from the cursor's Aux after the first fetch.
func (api *API) Tag(tagType, slug string, page, limit int) *paginator.Cursor[Book] {
	return paginator.New[Book](
		api.getIssuer(tagPath(tagType, slug)),
		pageParams(page, limit),
		paginator.WithNestedKey("books"),
	)
}

// TagChangelog returns a cursor over the tag's edit history.
func (api *API) TagChangelog(tagType, slug string, page, limit int) *paginator.Cursor[ChangelogEntry] {
	return paginator.New[ChangelogEntry](
		api.getIssuer(tagChangelogPath(tagType, slug)),
		pageParams(page, limit),
	)
}

// CreateTag submits a new tag. Mutating: the session token is refreshed
// first when near expiry.
func (api *API) CreateTag(
	ctx context.Context,
	tagType, nameJapanese string,
	tagIDs []string,
	fields TagFields,
) (*paginator.Cursor[Book], error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	form := map[string]string{
		"type":          tagType,
		"name_japanese": nameJapanese,
	}
	fields.apply(form)
	tagListToForm(form, tagIDs)

	return paginator.New[Book](
		api.postIssuer(tagsPath, requests.RequestOptions{Form: form, NoCache: true}),
		pageParams(1, 0),
		paginator.WithNestedKey("books"),
	), nil
}

// UpdateTag replaces a tag's attributes. Mutating: the session token is
// refreshed first when near expiry.
func (api *API) UpdateTag(
	ctx context.Context,
	tagType, slug, nameJapanese string,
	tagIDs []string,
	fields TagFields,
) (*paginator.Cursor[Book], error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	form := map[string]string{"name_japanese": nameJapanese}
	fields.apply(form)
	tagListToForm(form, tagIDs)

	return paginator.New[Book](
		api.putIssuer(tagPath(tagType, slug), requests.RequestOptions{Form: form, NoCache: true}),
		pageParams(1, 0),
		paginator.WithNestedKey("books"),
	), nil
}
