// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form loads structured form definitions and turns them into
// in-memory identifier indexes. Form mode verifies identifiers against these
// indexes instead of calling a reference system once per cell.
package form

// Document is the subset of a form definition that references concepts.
type Document struct {
	Name    string `json:"name"`
	UUID    string `json:"uuid"`
	Version string `json:"version"`
	Pages   []Page `json:"pages"`
}

// Page is one page of a form.
type Page struct {
	Label    string    `json:"label"`
	Sections []Section `json:"sections"`
}

// Section groups questions within a page.
type Section struct {
	Label     string     `json:"label"`
	Questions []Question `json:"questions"`
}

// Question is one form field. Group questions (obsGroup) nest further
// questions.
type Question struct {
	ID              string          `json:"id"`
	Label           string          `json:"label"`
	Type            string          `json:"type"`
	QuestionOptions QuestionOptions `json:"questionOptions"`
	Questions       []Question      `json:"questions"`
}

// QuestionOptions holds the concept reference and how the field renders.
type QuestionOptions struct {
	Rendering string   `json:"rendering"`
	Concept   string   `json:"concept"`
	Answers   []Answer `json:"answers"`
}

// Answer is one selectable answer of a coded question.
type Answer struct {
	Concept string `json:"concept"`
	Label   string `json:"label"`
}

// EmptyDocument returns the document used when a form cannot be fetched.
// Its index is empty, so every identifier reports not found.
func EmptyDocument() Document {
	return Document{Name: "unavailable"}
}
