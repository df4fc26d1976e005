// Package search provides full-text search over poems using Bleve.
// Every query is scoped by owner so one user's poems never surface in
// another user's results.
package search

import (
	"github.com/srkarthi1982/poem-studio/internal/domain"
)

// PoemDocument is the document structure for the Bleve index.
type PoemDocument struct {
	// Identity
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	// Searchable text
	Title  string `json:"title,omitempty"`
	Body   string `json:"body"`
	Prompt string `json:"prompt,omitempty"`
	Notes  string `json:"notes,omitempty"`

	// Exact-match filters
	CollectionID string `json:"collection_id,omitempty"`
	Form         string `json:"form,omitempty"`
	Style        string `json:"style,omitempty"`
	Language     string `json:"language,omitempty"`

	IsFavorite bool `json:"is_favorite"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *PoemDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":          d.ID,
		"owner_id":    d.OwnerID,
		"body":        d.Body,
		"is_favorite": d.IsFavorite,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Title != "" {
		m["title"] = d.Title
	}
	if d.Prompt != "" {
		m["prompt"] = d.Prompt
	}
	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	if d.CollectionID != "" {
		m["collection_id"] = d.CollectionID
	}
	if d.Form != "" {
		m["form"] = d.Form
	}
	if d.Style != "" {
		m["style"] = d.Style
	}
	if d.Language != "" {
		m["language"] = d.Language
	}

	return m
}

// PoemToDocument converts a domain Poem to a PoemDocument.
func PoemToDocument(p *domain.Poem) *PoemDocument {
	doc := &PoemDocument{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Title:      p.Title,
		Body:       p.Body,
		Prompt:     p.Prompt,
		Notes:      p.Notes,
		Form:       p.Form,
		Style:      p.Style,
		Language:   p.Language,
		IsFavorite: p.IsFavorite,
		CreatedAt:  p.CreatedAt.UnixMilli(),
		UpdatedAt:  p.UpdatedAt.UnixMilli(),
	}
	if p.CollectionID != nil {
		doc.CollectionID = *p.CollectionID
	}
	return doc
}
