package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/srkarthi1982/poem-studio/internal/domain"
	domainerrors "github.com/srkarthi1982/poem-studio/internal/errors"
	"github.com/srkarthi1982/poem-studio/internal/id"
	"github.com/srkarthi1982/poem-studio/internal/normalize"
	"github.com/srkarthi1982/poem-studio/internal/store"
)

// PoemService orchestrates poem operations with ownership enforcement and
// keeps the search index in sync with writes.
type PoemService struct {
	store  *store.Store
	search *SearchService
	logger *slog.Logger
}

// NewPoemService creates a new poem service. The search service may be nil,
// in which case index maintenance is skipped.
func NewPoemService(store *store.Store, search *SearchService, logger *slog.Logger) *PoemService {
	return &PoemService{
		store:  store,
		search: search,
		logger: logger,
	}
}

// CreatePoemInput carries the caller-supplied fields for a new poem.
// The poem's ID and owner are assigned by the service.
type CreatePoemInput struct {
	CollectionID *string
	Title        string
	Form         string
	Style        string
	Language     string
	Prompt       string
	Body         string
	Notes        string
	IsFavorite   bool
}

// PoemPatch is a partial update. Nil fields are left untouched.
// A non-nil empty CollectionID unfiles the poem from its collection.
type PoemPatch struct {
	CollectionID *string
	Title        *string
	Form         *string
	Style        *string
	Language     *string
	Prompt       *string
	Body         *string
	Notes        *string
	IsFavorite   *bool
}

// Empty reports whether the patch carries no fields at all.
func (p PoemPatch) Empty() bool {
	return p.CollectionID == nil && p.Title == nil && p.Form == nil &&
		p.Style == nil && p.Language == nil && p.Prompt == nil &&
		p.Body == nil && p.Notes == nil && p.IsFavorite == nil
}

// CreatePoem creates a new poem for the user. When a collection is named it
// must exist and belong to the same user, otherwise NOT_FOUND is returned.
func (s *PoemService) CreatePoem(ctx context.Context, ownerID string, in CreatePoemInput) (*domain.Poem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if in.Body == "" {
		return nil, domainerrors.Validation("poem body cannot be empty")
	}

	var collectionID *string
	if in.CollectionID != nil && *in.CollectionID != "" {
		if _, err := s.resolveCollection(ctx, ownerID, *in.CollectionID); err != nil {
			return nil, err
		}
		collectionID = in.CollectionID
	}

	poemID, err := id.NewPoemID()
	if err != nil {
		return nil, fmt.Errorf("generate poem ID: %w", err)
	}

	poem := &domain.Poem{
		OwnerID:      ownerID,
		CollectionID: collectionID,
		Title:        in.Title,
		Form:         in.Form,
		Style:        in.Style,
		Language:     normalizeLanguage(in.Language),
		Prompt:       in.Prompt,
		Body:         in.Body,
		Notes:        in.Notes,
		IsFavorite:   in.IsFavorite,
	}
	poem.ID = poemID
	poem.InitTimestamps()

	if err := s.store.CreatePoem(ctx, poem); err != nil {
		return nil, fmt.Errorf("create poem: %w", err)
	}

	s.indexPoem(ctx, poem)

	s.logger.Info("poem created",
		"poem_id", poemID,
		"owner_id", ownerID,
	)

	return poem, nil
}

// GetPoem fetches a poem the user owns.
// Returns NOT_FOUND for missing and not-owned alike.
func (s *PoemService) GetPoem(ctx context.Context, ownerID, poemID string) (*domain.Poem, error) {
	poem, err := s.store.GetPoem(ctx, poemID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("poem not found")
		}
		return nil, fmt.Errorf("get poem: %w", err)
	}
	return poem, nil
}

// UpdatePoem applies a partial update to a poem the user owns. A patch with
// no fields is rejected before any storage access. Moving the poem into a
// collection re-checks that the target collection belongs to the same user.
func (s *PoemService) UpdatePoem(ctx context.Context, ownerID, poemID string, patch PoemPatch) (*domain.Poem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if patch.Empty() {
		return nil, domainerrors.Validation("at least one field must be provided")
	}
	if patch.Body != nil && *patch.Body == "" {
		return nil, domainerrors.Validation("poem body cannot be empty")
	}

	poem, err := s.store.GetPoem(ctx, poemID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("poem not found")
		}
		return nil, fmt.Errorf("get poem: %w", err)
	}

	if patch.CollectionID != nil {
		if *patch.CollectionID == "" {
			poem.Unfile()
		} else {
			if _, err := s.resolveCollection(ctx, ownerID, *patch.CollectionID); err != nil {
				return nil, err
			}
			poem.File(*patch.CollectionID)
		}
	}
	if patch.Title != nil {
		poem.Title = *patch.Title
	}
	if patch.Form != nil {
		poem.Form = *patch.Form
	}
	if patch.Style != nil {
		poem.Style = *patch.Style
	}
	if patch.Language != nil {
		poem.Language = normalizeLanguage(*patch.Language)
	}
	if patch.Prompt != nil {
		poem.Prompt = *patch.Prompt
	}
	if patch.Body != nil {
		poem.Body = *patch.Body
	}
	if patch.Notes != nil {
		poem.Notes = *patch.Notes
	}
	if patch.IsFavorite != nil {
		poem.IsFavorite = *patch.IsFavorite
	}
	poem.Touch()

	if err := s.store.UpdatePoem(ctx, poem); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("poem not found")
		}
		return nil, fmt.Errorf("update poem: %w", err)
	}

	s.indexPoem(ctx, poem)

	s.logger.Info("poem updated",
		"poem_id", poemID,
		"owner_id", ownerID,
	)

	return poem, nil
}

// DeletePoem removes a poem the user owns. The delete is a single
// owner-scoped statement; a poem that is missing or owned by someone else
// yields the same NOT_FOUND.
func (s *PoemService) DeletePoem(ctx context.Context, ownerID, poemID string) error {
	if err := s.store.DeletePoem(ctx, poemID, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("poem not found")
		}
		return fmt.Errorf("delete poem: %w", err)
	}

	if s.search != nil {
		if err := s.search.DeletePoem(poemID); err != nil {
			s.logger.Warn("failed to remove poem from search index",
				"poem_id", poemID,
				"error", err,
			)
		}
	}

	s.logger.Info("poem deleted",
		"poem_id", poemID,
		"owner_id", ownerID,
	)

	return nil
}

// PoemListOptions filters ListPoems.
type PoemListOptions struct {
	// CollectionID restricts results to one collection. The collection must
	// belong to the caller.
	CollectionID *string
	// FavoritesOnly restricts results to favorited poems.
	FavoritesOnly bool
}

// ListPoems returns poems the user owns, optionally filtered by collection
// and favorite status. Filtering by a collection the user does not own
// returns NOT_FOUND rather than an empty list.
func (s *PoemService) ListPoems(ctx context.Context, ownerID string, opts PoemListOptions) ([]*domain.Poem, error) {
	filter := store.PoemFilter{FavoritesOnly: opts.FavoritesOnly}

	if opts.CollectionID != nil && *opts.CollectionID != "" {
		if _, err := s.resolveCollection(ctx, ownerID, *opts.CollectionID); err != nil {
			return nil, err
		}
		filter.CollectionID = opts.CollectionID
	}

	poems, err := s.store.ListPoems(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list poems: %w", err)
	}
	return poems, nil
}

func (s *PoemService) resolveCollection(ctx context.Context, ownerID, collectionID string) (*domain.Collection, error) {
	collection, err := s.store.GetCollection(ctx, collectionID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("collection not found")
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return collection, nil
}

func (s *PoemService) indexPoem(ctx context.Context, poem *domain.Poem) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexPoem(ctx, poem); err != nil {
		s.logger.Warn("failed to index poem",
			"poem_id", poem.ID,
			"error", err,
		)
	}
}

// normalizeLanguage maps a language name or code to a canonical BCP 47 base
// code, keeping the raw value when it is not recognized.
func normalizeLanguage(raw string) string {
	if raw == "" {
		return ""
	}
	if code := normalize.LanguageCode(raw); code != "" {
		return code
	}
	return raw
}
