package domain

// Poem represents a single work in a user's notebook.
// The body is the only required text field; everything else is optional
// context the author may or may not record. CollectionID is nil when the
// poem is unfiled.
type Poem struct {
	Stamped
	OwnerID      string  `json:"owner_id"`
	CollectionID *string `json:"collection_id,omitempty"`
	Title        string  `json:"title,omitempty"`
	Form         string  `json:"form,omitempty"`     // sonnet, haiku, free verse, ...
	Style        string  `json:"style,omitempty"`    // tone or movement, free text
	Language     string  `json:"language,omitempty"` // free text, normalized best-effort
	Prompt       string  `json:"prompt,omitempty"`   // writing prompt that sparked it
	Body         string  `json:"body"`
	Notes        string  `json:"notes,omitempty"`
	IsFavorite   bool    `json:"is_favorite"`
}

// InCollection reports whether the poem is filed in the given collection.
func (p *Poem) InCollection(collectionID string) bool {
	return p.CollectionID != nil && *p.CollectionID == collectionID
}

// File places the poem in a collection.
func (p *Poem) File(collectionID string) {
	p.CollectionID = &collectionID
}

// Unfile removes the poem from its collection, if any.
func (p *Poem) Unfile() {
	p.CollectionID = nil
}
