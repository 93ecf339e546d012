// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"net/url"
)

// Relative API paths, resolved against the configured endpoint base URL.

const (
	authLoginPath  = "auth/login"
	authCreatePath = "auth/create"

	tagTypesPath = "tag/types"
	tagsPath     = "tag"

	booksPath      = "book"
	importBookPath = "import"

	changelogPath = "changelog"

	searchBooksPath = "search"
	imageSearchPath = "search/image"

	followingPath = "following"

	notificationsPath        = "notifications"
	notificationsCountPath   = "notifications/count"
	notificationsReadPath    = "notifications/read"
	notificationsReadAllPath = "notifications/read/all"
)

func tagsByTypePath(tagType string) string {
	return fmt.Sprintf("tag/%s", url.PathEscape(tagType))
}

func tagPath(tagType, slug string) string {
	return fmt.Sprintf("tag/%s/%s", url.PathEscape(tagType), url.PathEscape(slug))
}

func tagChangelogPath(tagType, slug string) string {
	return fmt.Sprintf("tag/%s/%s/changelog", url.PathEscape(tagType), url.PathEscape(slug))
}

func bookPath(slug string) string {
	return fmt.Sprintf("book/%s", url.PathEscape(slug))
}

func bookChangelogPath(slug string) string {
	return fmt.Sprintf("book/%s/changelog", url.PathEscape(slug))
}

func changelogEntryPath(id string) string {
	return fmt.Sprintf("changelog/%s", url.PathEscape(id))
}

func searchTagsPath(tagType string) string {
	return fmt.Sprintf("search/tag/%s", url.PathEscape(tagType))
}

func userPath(slug string) string {
	return fmt.Sprintf("user/%s", url.PathEscape(slug))
}

func userContributionsPath(slug string) string {
	return fmt.Sprintf("user/%s/contributions", url.PathEscape(slug))
}

func userLibraryPath(slug, libraryType string) string {
	return fmt.Sprintf("user/%s/library/%s", url.PathEscape(slug), url.PathEscape(libraryType))
}

func userFollowingPath(slug string) string {
	return fmt.Sprintf("user/%s/following", url.PathEscape(slug))
}

func libraryPath(libraryType string) string {
	return fmt.Sprintf("library/%s", url.PathEscape(libraryType))
}

func libraryEntryPath(libraryType, bookID string) string {
	return fmt.Sprintf("library/%s/%s", url.PathEscape(libraryType), url.PathEscape(bookID))
}

func followingEntryPath(tagID string) string {
	return fmt.Sprintf("following/%s", url.PathEscape(tagID))
}
