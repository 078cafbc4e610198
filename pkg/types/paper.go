// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Author is a normalized paper author. Org is nil when the upstream record
// carries no organization.
type Author struct {
	Name string  `json:"name" yaml:"name"`
	Org  *string `json:"org" yaml:"org"`
}

// Venue holds the venue names in every language the upstream provides.
// Missing names stay nil so they encode as null.
type Venue struct {
	NameZh *string `json:"name_zh" yaml:"name_zh"`
	NameEn *string `json:"name_en" yaml:"name_en"`
	Alias  *string `json:"alias" yaml:"alias"`
}

// Paper is a display-ready paper record built from one upstream record.
// Title is never empty ("N/A" when the record has none), Citations
// defaults to 0, and every other optional field is nil when absent.
type Paper struct {
	// Title prefers the Chinese title over the original one.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in upstream order. Never nil.
	Authors []Author `json:"authors" yaml:"authors"`

	// Venue is nil when the record has no venue object.
	Venue *Venue `json:"venue" yaml:"venue"`

	// Year is the publication year.
	Year *int `json:"year" yaml:"year"`

	// Citations is the upstream citation count.
	Citations int `json:"citations" yaml:"citations"`

	// Abstract prefers the Chinese abstract over the original one.
	Abstract *string `json:"abstract" yaml:"abstract"`

	DOI *string `json:"doi" yaml:"doi"`
	URL *string `json:"url" yaml:"url"`

	// Keywords prefers the Chinese keyword list. Never nil.
	Keywords []string `json:"keywords" yaml:"keywords"`

	Language *string `json:"language" yaml:"language"`
}

// PaperWithIndex is a Paper tagged with its 1-based position in the whole
// result set (not just the current page).
type PaperWithIndex struct {
	Index int `json:"index" yaml:"index"`
	Paper `yaml:",inline"`
}

// ErrorResult describes a record that could not be formatted.
type ErrorResult struct {
	Error   string `json:"error" yaml:"error"`
	Message string `json:"message" yaml:"message"`
}
