package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srkarthi1982/poem-studio/internal/domain"
	"github.com/srkarthi1982/poem-studio/internal/service"
)

func (s *Server) registerCollectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createCollection",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections",
		Summary:     "Create collection",
		Description: "Creates a new collection owned by the current user",
		Tags:        []string{"Collections"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "List collections",
		Description: "Returns all collections owned by the current user",
		Tags:        []string{"Collections"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListCollections)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCollection",
		Method:      http.MethodPatch,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Update collection",
		Description: "Applies a partial update to a collection owned by the current user",
		Tags:        []string{"Collections"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCollection)
}

// === DTOs ===

// CollectionResponse contains collection data in API responses.
type CollectionResponse struct {
	ID          string    `json:"id" doc:"Collection ID"`
	UserID      string    `json:"user_id" doc:"Owning user ID"`
	Name        string    `json:"name" doc:"Collection name"`
	Description string    `json:"description,omitempty" doc:"Collection description"`
	Icon        string    `json:"icon,omitempty" doc:"Display icon"`
	IsDefault   bool      `json:"is_default" doc:"Whether this is the user's default collection"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// CreateCollectionRequest is the request body for creating a collection.
// Client-supplied identity fields are ignored; the server assigns the ID and
// owner itself.
type CreateCollectionRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Name        string `json:"name" validate:"required,min=1,max=120" doc:"Collection name"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000" doc:"Collection description"`
	Icon        string `json:"icon,omitempty" validate:"omitempty,max=50" doc:"Display icon"`
	IsDefault   bool   `json:"is_default,omitempty" doc:"Mark as default collection"`
}

// CreateCollectionInput wraps the create collection request for Huma.
type CreateCollectionInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateCollectionRequest
}

// CollectionOutput wraps the collection response for Huma.
type CollectionOutput struct {
	Body CollectionResponse
}

// ListCollectionsInput contains parameters for listing collections.
type ListCollectionsInput struct {
	Authorization string `header:"Authorization"`
}

// ListCollectionsResponse contains a list of collections.
type ListCollectionsResponse struct {
	Collections []CollectionResponse `json:"collections" doc:"List of collections"`
	Total       int                  `json:"total" doc:"Number of collections returned"`
}

// ListCollectionsOutput wraps the list collections response for Huma.
type ListCollectionsOutput struct {
	Body ListCollectionsResponse
}

// UpdateCollectionRequest is the request body for updating a collection.
// Omitted fields keep their current values.
type UpdateCollectionRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120" doc:"Collection name"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000" doc:"Collection description"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=50" doc:"Display icon"`
	IsDefault   *bool   `json:"is_default,omitempty" doc:"Mark as default collection"`
}

// UpdateCollectionInput wraps the update collection request for Huma.
type UpdateCollectionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Collection ID"`
	Body          UpdateCollectionRequest
}

func collectionToResponse(c *domain.Collection) CollectionResponse {
	return CollectionResponse{
		ID:          c.ID,
		UserID:      c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		IsDefault:   c.IsDefault,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleCreateCollection(ctx context.Context, input *CreateCollectionInput) (*CollectionOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	collection, err := s.services.Collection.CreateCollection(ctx, userID, service.CreateCollectionInput{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Icon:        input.Body.Icon,
		IsDefault:   input.Body.IsDefault,
	})
	if err != nil {
		return nil, err
	}

	return &CollectionOutput{Body: collectionToResponse(collection)}, nil
}

func (s *Server) handleListCollections(ctx context.Context, _ *ListCollectionsInput) (*ListCollectionsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	collections, err := s.services.Collection.ListCollections(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]CollectionResponse, len(collections))
	for i, c := range collections {
		resp[i] = collectionToResponse(c)
	}

	return &ListCollectionsOutput{Body: ListCollectionsResponse{Collections: resp, Total: len(resp)}}, nil
}

func (s *Server) handleUpdateCollection(ctx context.Context, input *UpdateCollectionInput) (*CollectionOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	collection, err := s.services.Collection.UpdateCollection(ctx, userID, input.ID, service.CollectionPatch{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Icon:        input.Body.Icon,
		IsDefault:   input.Body.IsDefault,
	})
	if err != nil {
		return nil, err
	}

	return &CollectionOutput{Body: collectionToResponse(collection)}, nil
}
