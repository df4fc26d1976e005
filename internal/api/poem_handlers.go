package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srkarthi1982/poem-studio/internal/domain"
	"github.com/srkarthi1982/poem-studio/internal/service"
)

func (s *Server) registerPoemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createPoem",
		Method:      http.MethodPost,
		Path:        "/api/v1/poems",
		Summary:     "Create poem",
		Description: "Creates a new poem owned by the current user",
		Tags:        []string{"Poems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePoem)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPoems",
		Method:      http.MethodGet,
		Path:        "/api/v1/poems",
		Summary:     "List poems",
		Description: "Returns poems owned by the current user, optionally filtered",
		Tags:        []string{"Poems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPoems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPoem",
		Method:      http.MethodGet,
		Path:        "/api/v1/poems/{id}",
		Summary:     "Get poem",
		Description: "Returns a poem owned by the current user",
		Tags:        []string{"Poems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetPoem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePoem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/poems/{id}",
		Summary:     "Update poem",
		Description: "Applies a partial update to a poem owned by the current user",
		Tags:        []string{"Poems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePoem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePoem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/poems/{id}",
		Summary:     "Delete poem",
		Description: "Deletes a poem owned by the current user",
		Tags:        []string{"Poems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePoem)
}

// === DTOs ===

// PoemResponse contains poem data in API responses.
type PoemResponse struct {
	ID           string    `json:"id" doc:"Poem ID"`
	UserID       string    `json:"user_id" doc:"Owning user ID"`
	CollectionID *string   `json:"collection_id,omitempty" doc:"Collection the poem is filed under, if any"`
	Title        string    `json:"title,omitempty" doc:"Poem title"`
	Form         string    `json:"form,omitempty" doc:"Poetic form (haiku, sonnet, free verse, ...)"`
	Style        string    `json:"style,omitempty" doc:"Stylistic label"`
	Language     string    `json:"language,omitempty" doc:"Language code"`
	Prompt       string    `json:"prompt,omitempty" doc:"Writing prompt the poem responds to"`
	Body         string    `json:"body" doc:"Poem text"`
	Notes        string    `json:"notes,omitempty" doc:"Private notes"`
	IsFavorite   bool      `json:"is_favorite" doc:"Whether the poem is favorited"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// CreatePoemRequest is the request body for creating a poem.
// Client-supplied identity fields are ignored; the server assigns the ID and
// owner itself.
type CreatePoemRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	CollectionID *string `json:"collection_id,omitempty" doc:"Collection to file the poem under"`
	Title        string  `json:"title,omitempty" validate:"omitempty,max=200" doc:"Poem title"`
	Form         string  `json:"form,omitempty" validate:"omitempty,max=50" doc:"Poetic form"`
	Style        string  `json:"style,omitempty" validate:"omitempty,max=50" doc:"Stylistic label"`
	Language     string  `json:"language,omitempty" validate:"omitempty,max=50" doc:"Language name or code"`
	Prompt       string  `json:"prompt,omitempty" validate:"omitempty,max=2000" doc:"Writing prompt"`
	Body         string  `json:"body" validate:"required" doc:"Poem text"`
	Notes        string  `json:"notes,omitempty" validate:"omitempty,max=10000" doc:"Private notes"`
	IsFavorite   bool    `json:"is_favorite,omitempty" doc:"Mark as favorite"`
}

// CreatePoemInput wraps the create poem request for Huma.
type CreatePoemInput struct {
	Authorization string `header:"Authorization"`
	Body          CreatePoemRequest
}

// PoemOutput wraps the poem response for Huma.
type PoemOutput struct {
	Body PoemResponse
}

// ListPoemsInput contains parameters for listing poems.
type ListPoemsInput struct {
	Authorization string `header:"Authorization"`
	CollectionID  string `query:"collection_id" doc:"Only poems in this collection"`
	FavoritesOnly bool   `query:"favorites_only" doc:"Only favorited poems"`
}

// ListPoemsResponse contains a list of poems.
type ListPoemsResponse struct {
	Poems []PoemResponse `json:"poems" doc:"List of poems"`
	Total int            `json:"total" doc:"Number of poems returned"`
}

// ListPoemsOutput wraps the list poems response for Huma.
type ListPoemsOutput struct {
	Body ListPoemsResponse
}

// GetPoemInput contains parameters for getting a poem.
type GetPoemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Poem ID"`
}

// UpdatePoemRequest is the request body for updating a poem.
// Omitted fields keep their current values. An explicit empty collection_id
// unfiles the poem from its collection.
type UpdatePoemRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	CollectionID *string `json:"collection_id,omitempty" doc:"Collection to file under; empty string unfiles"`
	Title        *string `json:"title,omitempty" validate:"omitempty,max=200" doc:"Poem title"`
	Form         *string `json:"form,omitempty" validate:"omitempty,max=50" doc:"Poetic form"`
	Style        *string `json:"style,omitempty" validate:"omitempty,max=50" doc:"Stylistic label"`
	Language     *string `json:"language,omitempty" validate:"omitempty,max=50" doc:"Language name or code"`
	Prompt       *string `json:"prompt,omitempty" validate:"omitempty,max=2000" doc:"Writing prompt"`
	Body         *string `json:"body,omitempty" doc:"Poem text"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=10000" doc:"Private notes"`
	IsFavorite   *bool   `json:"is_favorite,omitempty" doc:"Mark as favorite"`
}

// UpdatePoemInput wraps the update poem request for Huma.
type UpdatePoemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Poem ID"`
	Body          UpdatePoemRequest
}

// DeletePoemInput contains parameters for deleting a poem.
type DeletePoemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Poem ID"`
}

func poemToResponse(p *domain.Poem) PoemResponse {
	return PoemResponse{
		ID:           p.ID,
		UserID:       p.OwnerID,
		CollectionID: p.CollectionID,
		Title:        p.Title,
		Form:         p.Form,
		Style:        p.Style,
		Language:     p.Language,
		Prompt:       p.Prompt,
		Body:         p.Body,
		Notes:        p.Notes,
		IsFavorite:   p.IsFavorite,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleCreatePoem(ctx context.Context, input *CreatePoemInput) (*PoemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	poem, err := s.services.Poem.CreatePoem(ctx, userID, service.CreatePoemInput{
		CollectionID: input.Body.CollectionID,
		Title:        input.Body.Title,
		Form:         input.Body.Form,
		Style:        input.Body.Style,
		Language:     input.Body.Language,
		Prompt:       input.Body.Prompt,
		Body:         input.Body.Body,
		Notes:        input.Body.Notes,
		IsFavorite:   input.Body.IsFavorite,
	})
	if err != nil {
		return nil, err
	}

	return &PoemOutput{Body: poemToResponse(poem)}, nil
}

func (s *Server) handleListPoems(ctx context.Context, input *ListPoemsInput) (*ListPoemsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	opts := service.PoemListOptions{FavoritesOnly: input.FavoritesOnly}
	if input.CollectionID != "" {
		opts.CollectionID = &input.CollectionID
	}

	poems, err := s.services.Poem.ListPoems(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	resp := make([]PoemResponse, len(poems))
	for i, p := range poems {
		resp[i] = poemToResponse(p)
	}

	return &ListPoemsOutput{Body: ListPoemsResponse{Poems: resp, Total: len(resp)}}, nil
}

func (s *Server) handleGetPoem(ctx context.Context, input *GetPoemInput) (*PoemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	poem, err := s.services.Poem.GetPoem(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &PoemOutput{Body: poemToResponse(poem)}, nil
}

func (s *Server) handleUpdatePoem(ctx context.Context, input *UpdatePoemInput) (*PoemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	poem, err := s.services.Poem.UpdatePoem(ctx, userID, input.ID, service.PoemPatch{
		CollectionID: input.Body.CollectionID,
		Title:        input.Body.Title,
		Form:         input.Body.Form,
		Style:        input.Body.Style,
		Language:     input.Body.Language,
		Prompt:       input.Body.Prompt,
		Body:         input.Body.Body,
		Notes:        input.Body.Notes,
		IsFavorite:   input.Body.IsFavorite,
	})
	if err != nil {
		return nil, err
	}

	return &PoemOutput{Body: poemToResponse(poem)}, nil
}

func (s *Server) handleDeletePoem(ctx context.Context, input *DeletePoemInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Poem.DeletePoem(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Poem deleted"}}, nil
}
