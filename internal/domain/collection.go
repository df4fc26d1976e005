package domain

// Collection represents a named grouping of poems belonging to a single user.
// Collections are organizational only: a poem may sit in at most one
// collection, or in none ("unfiled"). Ownership is per user; one user's
// collections are invisible to everyone else.
type Collection struct {
	Stamped
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsDefault   bool   `json:"is_default"`
}
