package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srkarthi1982/poem-studio/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchPoems",
		Method:      http.MethodGet,
		Path:        "/api/v1/search/poems",
		Summary:     "Search poems",
		Description: "Full-text search over the current user's poems",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchPoems)
}

// === DTOs ===

// SearchPoemsInput contains parameters for searching poems.
type SearchPoemsInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" validate:"required,min=1,max=200" doc:"Search query"`
	CollectionID  string `query:"collection_id" doc:"Only poems in this collection"`
	Form          string `query:"form" validate:"omitempty,max=50" doc:"Only poems of this form"`
	FavoritesOnly bool   `query:"favorites_only" doc:"Only favorited poems"`
	Limit         int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max results (default 20)"`
	Offset        int    `query:"offset" validate:"omitempty,gte=0" doc:"Pagination offset (default 0)"`
	SortBy        string `query:"sort" validate:"omitempty,oneof=relevance recent title" doc:"Sort order (default relevance)"`
}

// SearchPoemHit contains a single poem search result.
type SearchPoemHit struct {
	ID         string            `json:"id" doc:"Poem ID"`
	Score      float64           `json:"score" doc:"Search relevance score"`
	Title      string            `json:"title,omitempty" doc:"Poem title"`
	Body       string            `json:"body,omitempty" doc:"Poem text"`
	Form       string            `json:"form,omitempty" doc:"Poetic form"`
	Style      string            `json:"style,omitempty" doc:"Stylistic label"`
	Language   string            `json:"language,omitempty" doc:"Language code"`
	IsFavorite bool              `json:"is_favorite" doc:"Whether the poem is favorited"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Highlighted matches"`
}

// SearchPoemsResponse contains poem search results.
type SearchPoemsResponse struct {
	Query  string          `json:"query" doc:"Original search query"`
	Total  int64           `json:"total" doc:"Total matches"`
	TookMs int64           `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []SearchPoemHit `json:"hits" doc:"Search results"`
}

// SearchPoemsOutput wraps the search response for Huma.
type SearchPoemsOutput struct {
	Body SearchPoemsResponse
}

// === Handlers ===

func (s *Server) handleSearchPoems(ctx context.Context, input *SearchPoemsInput) (*SearchPoemsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	// A collection filter goes through the ownership gate like everywhere
	// else: a missing or foreign collection is NOT_FOUND, not an empty list.
	if input.CollectionID != "" {
		if _, err := s.services.Collection.ResolveCollection(ctx, userID, input.CollectionID); err != nil {
			return nil, err
		}
	}

	params := search.DefaultSearchParams()
	params.OwnerID = userID
	params.Query = input.Query
	params.CollectionID = input.CollectionID
	params.Form = input.Form
	params.FavoritesOnly = input.FavoritesOnly
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchPoemHit, len(result.Hits))
	for i, h := range result.Hits {
		hits[i] = SearchPoemHit{
			ID:         h.ID,
			Score:      h.Score,
			Title:      h.Title,
			Body:       h.Body,
			Form:       h.Form,
			Style:      h.Style,
			Language:   h.Language,
			IsFavorite: h.IsFavorite,
			Highlights: h.Highlights,
		}
	}

	return &SearchPoemsOutput{
		Body: SearchPoemsResponse{
			Query:  result.Query,
			Total:  int64(result.Total),
			TookMs: result.TookMs,
			Hits:   hits,
		},
	}, nil
}
