// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"strings"
)

// PathSeparator joins the labels of a form path.
const PathSeparator = " > "

// Entry is what a form says about one concept.
type Entry struct {
	Concept string
	Label   string
	Path    string

	// Datatype is inferred from the question rendering. Answers carry none.
	Datatype string

	// OtherPaths lists later occurrences of the same concept.
	OtherPaths []string
}

// Index maps a normalized concept identifier to its first occurrence in a
// form. It is read-only once built.
type Index map[string]Entry

// Lookup returns the entry for id, ignoring case and surrounding space.
func (ix Index) Lookup(id string) (Entry, bool) {
	e, ok := ix[normalizeID(id)]
	return e, ok
}

// Flatten walks every page, section, question and answer of doc and indexes
// each referenced concept under "Page > Section > Question" (answers append
// " > Answer"). The first occurrence of a concept wins.
func Flatten(doc Document) Index {
	ix := make(Index)
	for _, p := range doc.Pages {
		for _, s := range p.Sections {
			base := joinPath(p.Label, s.Label)
			for _, q := range s.Questions {
				ix.addQuestion(base, q)
			}
		}
	}
	return ix
}

func (ix Index) addQuestion(parent string, q Question) {
	label := q.Label
	if label == "" {
		label = q.ID
	}
	path := joinPath(parent, label)

	opts := q.QuestionOptions
	ix.add(Entry{
		Concept:  opts.Concept,
		Label:    label,
		Path:     path,
		Datatype: InferDatatype(opts.Rendering),
	})
	for _, a := range opts.Answers {
		ix.add(Entry{
			Concept: a.Concept,
			Label:   a.Label,
			Path:    joinPath(path, a.Label),
		})
	}
	for _, child := range q.Questions {
		ix.addQuestion(path, child)
	}
}

func (ix Index) add(e Entry) {
	key := normalizeID(e.Concept)
	if key == "" {
		return
	}
	if prev, ok := ix[key]; ok {
		prev.OtherPaths = append(prev.OtherPaths, e.Path)
		ix[key] = prev
		return
	}
	ix[key] = e
}

// InferDatatype maps a question rendering to the datatype a concept behind
// it must have. Unknown renderings infer nothing.
func InferDatatype(rendering string) string {
	switch strings.ToLower(strings.TrimSpace(rendering)) {
	case "number":
		return "Numeric"
	case "select", "radio", "checkbox", "multicheckbox", "toggle", "content-switcher":
		return "Coded"
	case "text", "textarea":
		return "Text"
	case "date":
		return "Date"
	case "datetime":
		return "Datetime"
	case "obsgroup", "group":
		return "N/A"
	}
	return ""
}

func joinPath(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, PathSeparator)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
