// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package core

import "encoding/json"

// Name is the trilingual name attached to tags and books.
type Name struct {
	Japanese string `json:"japanese"`
	Romaji   string `json:"romaji"`
	English  string `json:"english"`
}

// Description is the bilingual free-text description attached to tags.
type Description struct {
	Japanese string `json:"japanese"`
	English  string `json:"english"`
}

// TagType categorizes tags (artist, circle, parody, and so on).
type TagType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tag is a metadata tag attached to books.
type Tag struct {
	ID          string      `json:"id"`
	Type        TagType     `json:"type"`
	Name        Name        `json:"name"`
	Slug        string      `json:"slug"`
	Description Description `json:"description"`
	DateStart   string      `json:"date_start"`
	DateEnd     string      `json:"date_end"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`

	// Links carries external URLs in whatever shape the server reports.
	Links json.RawMessage `json:"links"`
}

// Book is a doujinshi record.
type Book struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         Name   `json:"name"`
	DateReleased string `json:"date_released"`
	Pages        int    `json:"pages"`
	Price        int    `json:"price"`
	IsCopybook   bool   `json:"is_copybook"`
	IsAnthology  bool   `json:"is_anthology"`
	IsAdult      bool   `json:"is_adult"`
	IsNovel      bool   `json:"is_novel"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`

	Links json.RawMessage `json:"links"`
}

// ChangelogEntry records one community edit to a tag or book.
type ChangelogEntry struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
	User      User            `json:"user"`
	Changes   json.RawMessage `json:"changes"`
}

// User is a public user profile.
type User struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
}

// Notification is one entry in the session user's notification feed.
type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	ReadAt    string          `json:"read_at"`
	CreatedAt string          `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}
