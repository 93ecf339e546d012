// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"encoding/json"
	"io"

	"github.com/layolu/godoujinshiinfo/core/paginator"
	"github.com/layolu/godoujinshiinfo/core/requests"
)

// BookFields are the optional attributes of a book accepted by the
// create and update endpoints. Empty fields are omitted from the request.
type BookFields struct {
	NameRomaji   string
	NameEnglish  string
	DateReleased string
	Pages        string
	Price        string
	IsCopybook   string
	IsAnthology  string
	IsAdult      string
	IsNovel      string
	Links        string

	// Cover is an optional cover image, uploaded as a multipart file.
	Cover io.Reader
}

func (f BookFields) apply(form map[string]string, files map[string]io.Reader) {
	optional := map[string]string{
		"name_romaji":   f.NameRomaji,
		"name_english":  f.NameEnglish,
		"date_released": f.DateReleased,
		"pages":         f.Pages,
		"price":         f.Price,
		"is_copybook":   f.IsCopybook,
		"is_anthology":  f.IsAnthology,
		"is_adult":      f.IsAdult,
		"is_novel":      f.IsNovel,
		"links":         f.Links,
	}

	for key, value := range optional {
		if value != "" {
			form[key] = value
		}
	}

	if f.Cover != nil {
		files["cover"] = f.Cover
	}
}

// Books returns a cursor over all books.
func (api *API) Books(page, limit int) *paginator.Cursor[Book] {
	return paginator.New[Book](api.getIssuer(booksPath), pageParams(page, limit))
}

// Book fetches a single book by slug.
func (api *API) Book(ctx context.Context, slug string) (Book, error) {
	res, err := api.client.Get(ctx, bookPath(slug), nil)
	if err != nil {
		return Book{}, err
	}

	var book Book
	if err := json.Unmarshal([]byte(res.Raw), &book); err != nil {
		return Book{}, err
	}

	return book, nil
}

// BookChangelog returns a cursor over the book's edit history.
func (api *API) BookChangelog(slug string, page, limit int) *paginator.Cursor[ChangelogEntry] {
	return paginator.New[ChangelogEntry](
		api.getIssuer(bookChangelogPath(slug)),
		pageParams(page, limit),
	)
}

// CreateBook submits a new book, optionally uploading a cover image.
// Mutating: the session token is refreshed first when near expiry.
func (api *API) CreateBook(
	ctx context.Context,
	nameJapanese string,
	tagIDs []string,
	fields BookFields,
) (Book, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return Book{}, err
	}

	form := map[string]string{"name_japanese": nameJapanese}
	files := map[string]io.Reader{}
	fields.apply(form, files)
	tagListToForm(form, tagIDs)

	res, err := api.client.Post(ctx, requests.RequestOptions{
		Path:    booksPath,
		Form:    form,
		Files:   files,
		NoCache: true,
	})
	if err != nil {
		return Book{}, err
	}

	var book Book
	if err := json.Unmarshal([]byte(res.Raw), &book); err != nil {
		return Book{}, err
	}

	return book, nil
}

// UpdateBook replaces a book's attributes.
//
// The tag ID list REPLACES the book's current tags wholesale; to add or
// remove individual tags, fetch the book's tags first and submit the
// merged list. Mutating: the session token is refreshed first when near
// expiry.
func (api *API) UpdateBook(
	ctx context.Context,
	slug, nameJapanese string,
	tagIDs []string,
	fields BookFields,
) (Book, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return Book{}, err
	}

	form := map[string]string{"name_japanese": nameJapanese}
	files := map[string]io.Reader{}
	fields.apply(form, files)
	tagListToForm(form, tagIDs)

	res, err := api.client.Post(ctx, requests.RequestOptions{
		Path:    bookPath(slug),
		Form:    form,
		Files:   files,
		NoCache: true,
	})
	if err != nil {
		return Book{}, err
	}

	var book Book
	if err := json.Unmarshal([]byte(res.Raw), &book); err != nil {
		return Book{}, err
	}

	return book, nil
}

// ImportBook asks the server to import a book from a supported external
// URL. Mutating: the session token is refreshed first when near expiry.
func (api *API) ImportBook(ctx context.Context, sourceURL string) (Book, error) {
	if err := api.tokens.EnsureFresh(ctx); err != nil {
		return Book{}, err
	}

	res, err := api.client.Post(ctx, requests.RequestOptions{
		Path:    importBookPath,
		Form:    map[string]string{"url": sourceURL},
		NoCache: true,
	})
	if err != nil {
		return Book{}, err
	}

	var book Book
	if err := json.Unmarshal([]byte(res.Raw), &book); err != nil {
		return Book{}, err
	}

	return book, nil
}
