// Package service implements the business rules of the poem-studio server.
// Services sit between the HTTP handlers and the store: they validate input,
// resolve ownership, stamp timestamps, and keep the search index current.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/srkarthi1982/poem-studio/internal/domain"
	domainerrors "github.com/srkarthi1982/poem-studio/internal/errors"
	"github.com/srkarthi1982/poem-studio/internal/id"
	"github.com/srkarthi1982/poem-studio/internal/store"
)

// CollectionService orchestrates collection operations with ownership enforcement.
type CollectionService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store *store.Store, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:  store,
		logger: logger,
	}
}

// CreateCollectionInput carries the caller-supplied fields for a new collection.
// Identity and ownership always come from the authenticated caller, never
// from the input.
type CreateCollectionInput struct {
	Name        string
	Description string
	Icon        string
	IsDefault   bool
}

// CollectionPatch is a partial update. Nil fields are left untouched.
type CollectionPatch struct {
	Name        *string
	Description *string
	Icon        *string
	IsDefault   *bool
}

// Empty reports whether the patch carries no fields at all.
func (p CollectionPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Icon == nil && p.IsDefault == nil
}

// CreateCollection creates a new collection for the user.
func (s *CollectionService) CreateCollection(ctx context.Context, ownerID string, in CreateCollectionInput) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if in.Name == "" {
		return nil, domainerrors.Validation("collection name cannot be empty")
	}

	collectionID, err := id.NewCollectionID()
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}

	collection := &domain.Collection{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		IsDefault:   in.IsDefault,
	}
	collection.ID = collectionID
	collection.InitTimestamps()

	if err := s.store.CreateCollection(ctx, collection); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.logger.Info("collection created",
		"collection_id", collectionID,
		"owner_id", ownerID,
		"name", in.Name,
	)

	return collection, nil
}

// UpdateCollection applies a partial update to a collection the user owns.
// A patch with no fields is rejected before any storage access.
// Returns NOT_FOUND whether the collection is missing or owned by someone
// else; the two cases are indistinguishable on purpose.
func (s *CollectionService) UpdateCollection(ctx context.Context, ownerID, collectionID string, patch CollectionPatch) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if patch.Empty() {
		return nil, domainerrors.Validation("at least one field must be provided")
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, domainerrors.Validation("collection name cannot be empty")
	}

	collection, err := s.store.GetCollection(ctx, collectionID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("collection not found")
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}

	if patch.Name != nil {
		collection.Name = *patch.Name
	}
	if patch.Description != nil {
		collection.Description = *patch.Description
	}
	if patch.Icon != nil {
		collection.Icon = *patch.Icon
	}
	if patch.IsDefault != nil {
		collection.IsDefault = *patch.IsDefault
	}
	collection.Touch()

	if err := s.store.UpdateCollection(ctx, collection); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("collection not found")
		}
		return nil, fmt.Errorf("update collection: %w", err)
	}

	s.logger.Info("collection updated",
		"collection_id", collectionID,
		"owner_id", ownerID,
	)

	return collection, nil
}

// ListCollections returns all collections the user owns.
func (s *CollectionService) ListCollections(ctx context.Context, ownerID string) ([]*domain.Collection, error) {
	collections, err := s.store.ListCollectionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// ResolveCollection fetches a collection the user owns.
// Returns NOT_FOUND for missing and not-owned alike.
func (s *CollectionService) ResolveCollection(ctx context.Context, ownerID, collectionID string) (*domain.Collection, error) {
	collection, err := s.store.GetCollection(ctx, collectionID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("collection not found")
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return collection, nil
}
