package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
// OwnerID is mandatory; a query without an owner matches nothing.
type SearchParams struct {
	OwnerID string // Scope filter, always applied
	Query   string // User's search query

	// Filters
	CollectionID  string // Restrict to one collection (exact match)
	Form          string // Restrict to one form (exact match)
	FavoritesOnly bool   // Restrict to favorited poems

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "recent"
	SortOrder string // "asc", "desc"

	// Options
	Highlight bool // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		SortOrder: "desc",
		Highlight: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title,omitempty"`
	Body       string            `json:"body"`
	Form       string            `json:"form,omitempty"`
	Style      string            `json:"style,omitempty"`
	Language   string            `json:"language,omitempty"`
	IsFavorite bool              `json:"is_favorite"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query scoped to the owner in params.
func (s *PoemIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.OwnerID == "" {
		return nil, fmt.Errorf("search requires an owner id")
	}

	// Build the query
	searchQuery := buildSearchQuery(params)

	// Create search request
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	// Add sorting
	addSorting(searchRequest, params)

	// Add highlighting
	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("body")
	}

	// Request stored fields
	searchRequest.Fields = []string{
		"id", "title", "body", "form", "style", "language", "is_favorite",
	}

	// Execute search
	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	// Convert results
	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		// Extract stored fields
		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if b, ok := hit.Fields["body"].(string); ok {
			searchHit.Body = b
		}
		if f, ok := hit.Fields["form"].(string); ok {
			searchHit.Form = f
		}
		if st, ok := hit.Fields["style"].(string); ok {
			searchHit.Style = st
		}
		if l, ok := hit.Fields["language"].(string); ok {
			searchHit.Language = l
		}
		if fav, ok := hit.Fields["is_favorite"].(bool); ok {
			searchHit.IsFavorite = fav
		}

		// Extract highlights
		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
// The owner term clause is always present so results never cross users.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Owner scope - mandatory
	ownerQuery := bleve.NewTermQuery(params.OwnerID)
	ownerQuery.SetField("owner_id")
	queries = append(queries, ownerQuery)

	// Main text query across title, body, prompt, and notes
	if params.Query != "" {
		textQueries := []query.Query{}

		// Title match with highest boost
		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		// Body match
		bodyMatch := bleve.NewMatchQuery(params.Query)
		bodyMatch.SetField("body")
		bodyMatch.SetBoost(2.0)
		textQueries = append(textQueries, bodyMatch)

		// Prompt and notes matches
		promptMatch := bleve.NewMatchQuery(params.Query)
		promptMatch.SetField("prompt")
		textQueries = append(textQueries, promptMatch)

		notesMatch := bleve.NewMatchQuery(params.Query)
		notesMatch.SetField("notes")
		textQueries = append(textQueries, notesMatch)

		// Add fuzzy matching for typo tolerance on title
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		// Combine with OR (match any field)
		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Collection filter
	if params.CollectionID != "" {
		cq := bleve.NewTermQuery(params.CollectionID)
		cq.SetField("collection_id")
		queries = append(queries, cq)
	}

	// Form filter
	if params.Form != "" {
		fq := bleve.NewTermQuery(params.Form)
		fq.SetField("form")
		queries = append(queries, fq)
	}

	// Favorites filter
	if params.FavoritesOnly {
		favQuery := bleve.NewBoolFieldQuery(true)
		favQuery.SetField("is_favorite")
		queries = append(queries, favQuery)
	}

	// Combine all queries with AND
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "title":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-title"})
		} else {
			req.SortBy([]string{"title"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at"})
		} else {
			req.SortBy([]string{"-created_at"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}
