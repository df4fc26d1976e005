package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/srkarthi1982/poem-studio/internal/domain"
	"github.com/srkarthi1982/poem-studio/internal/search"
	"github.com/srkarthi1982/poem-studio/internal/store"
)

// SearchService bridges the poem store and the bleve search index.
type SearchService struct {
	index  *search.PoemIndex
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.PoemIndex, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search runs a full-text query over the caller's poems. Results are always
// scoped to the owner; the index never leaks another user's documents.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexPoem adds or updates a poem in the search index.
func (s *SearchService) IndexPoem(ctx context.Context, poem *domain.Poem) error {
	return s.index.IndexPoem(search.PoemToDocument(poem))
}

// DeletePoem removes a poem from the search index.
func (s *SearchService) DeletePoem(poemID string) error {
	return s.index.DeletePoem(poemID)
}

// DocumentCount returns the number of indexed poems.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the search index from the store. Used after a mapping
// version bump or when the index directory is lost.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	poems, err := s.store.ListAllPoems(ctx)
	if err != nil {
		return fmt.Errorf("list poems: %w", err)
	}

	docs := make([]*search.PoemDocument, 0, len(poems))
	for _, poem := range poems {
		docs = append(docs, search.PoemToDocument(poem))
	}

	if err := s.index.IndexPoems(docs); err != nil {
		return fmt.Errorf("index poems: %w", err)
	}

	s.logger.Info("search index rebuilt", "poems", len(docs))
	return nil
}
