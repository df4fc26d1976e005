package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	domainerrors "github.com/srkarthi1982/poem-studio/internal/errors"
	"github.com/srkarthi1982/poem-studio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPoemTest creates poem and collection services sharing a temporary
// database. The search index is left nil; index behavior has its own tests.
func setupPoemTest(t *testing.T) (*PoemService, *CollectionService) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.DiscardHandler)
	return NewPoemService(s, nil, logger), NewCollectionService(s, logger)
}

func TestPoemService_CreatePoem(t *testing.T) {
	poems, _ := setupPoemTest(t)
	ctx := context.Background()

	poem, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{
		Title:    "Morning Frost",
		Form:     "haiku",
		Language: "English",
		Body:     "white breath on glass\nthe kettle hums to itself\nwinter leans closer",
	})
	require.NoError(t, err)

	assert.Contains(t, poem.ID, "poem-")
	assert.Equal(t, "user-alice", poem.OwnerID)
	assert.Nil(t, poem.CollectionID)
	assert.Equal(t, "en", poem.Language)
	assert.False(t, poem.IsFavorite)
}

func TestPoemService_CreatePoem_EmptyBody(t *testing.T) {
	poems, _ := setupPoemTest(t)

	_, err := poems.CreatePoem(context.Background(), "user-alice", CreatePoemInput{Title: "Untitled"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestPoemService_CreatePoem_InCollection(t *testing.T) {
	poems, collections := setupPoemTest(t)
	ctx := context.Background()

	collection, err := collections.CreateCollection(ctx, "user-alice", CreateCollectionInput{Name: "Winter"})
	require.NoError(t, err)

	poem, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{
		CollectionID: &collection.ID,
		Body:         "snow again",
	})
	require.NoError(t, err)
	require.NotNil(t, poem.CollectionID)
	assert.Equal(t, collection.ID, *poem.CollectionID)
}

func TestPoemService_CreatePoem_ForeignCollection(t *testing.T) {
	poems, collections := setupPoemTest(t)
	ctx := context.Background()

	collection, err := collections.CreateCollection(ctx, "user-bob", CreateCollectionInput{Name: "Bob's"})
	require.NoError(t, err)

	// Alice cannot file a poem into Bob's collection, and the error does
	// not reveal that the collection exists.
	_, err = poems.CreatePoem(ctx, "user-alice", CreatePoemInput{
		CollectionID: &collection.ID,
		Body:         "trespassing",
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestPoemService_CreatePoem_UnknownLanguageKeptVerbatim(t *testing.T) {
	poems, _ := setupPoemTest(t)

	poem, err := poems.CreatePoem(context.Background(), "user-alice", CreatePoemInput{
		Language: "Old Tongue",
		Body:     "untranslatable",
	})
	require.NoError(t, err)
	assert.Equal(t, "Old Tongue", poem.Language)
}

func TestPoemService_UpdatePoem(t *testing.T) {
	poems, _ := setupPoemTest(t)
	ctx := context.Background()

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{
		Title: "Draft",
		Body:  "first attempt",
	})
	require.NoError(t, err)

	favorite := true
	updated, err := poems.UpdatePoem(ctx, "user-alice", created.ID, PoemPatch{IsFavorite: &favorite})
	require.NoError(t, err)

	assert.True(t, updated.IsFavorite)
	// Untouched fields survive the patch.
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "first attempt", updated.Body)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestPoemService_UpdatePoem_EmptyPatch(t *testing.T) {
	poems, _ := setupPoemTest(t)
	ctx := context.Background()

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "something"})
	require.NoError(t, err)

	_, err = poems.UpdatePoem(ctx, "user-alice", created.ID, PoemPatch{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestPoemService_UpdatePoem_ClearBodyRejected(t *testing.T) {
	poems, _ := setupPoemTest(t)
	ctx := context.Background()

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "keep me"})
	require.NoError(t, err)

	empty := ""
	_, err = poems.UpdatePoem(ctx, "user-alice", created.ID, PoemPatch{Body: &empty})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestPoemService_UpdatePoem_MoveAndUnfile(t *testing.T) {
	poems, collections := setupPoemTest(t)
	ctx := context.Background()

	collection, err := collections.CreateCollection(ctx, "user-alice", CreateCollectionInput{Name: "Filed"})
	require.NoError(t, err)

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "wandering"})
	require.NoError(t, err)

	moved, err := poems.UpdatePoem(ctx, "user-alice", created.ID, PoemPatch{CollectionID: &collection.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.CollectionID)
	assert.Equal(t, collection.ID, *moved.CollectionID)

	// An explicit empty collection ID unfiles the poem.
	empty := ""
	unfiled, err := poems.UpdatePoem(ctx, "user-alice", created.ID, PoemPatch{CollectionID: &empty})
	require.NoError(t, err)
	assert.Nil(t, unfiled.CollectionID)
}

func TestPoemService_UpdatePoem_MoveToForeignCollection(t *testing.T) {
	poems, collections := setupPoemTest(t)
	ctx := context.Background()

	collection, err := collections.CreateCollection(ctx, "user-bob", CreateCollectionInput{Name: "Bob's"})
	require.NoError(t, err)

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "stays put"})
	require.NoError(t, err)

	_, err = poems.UpdatePoem(ctx, "user-alice", created.ID, PoemPatch{CollectionID: &collection.ID})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)

	// The failed move leaves the poem untouched.
	got, err := poems.GetPoem(ctx, "user-alice", created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CollectionID)
}

func TestPoemService_UpdatePoem_NotOwned(t *testing.T) {
	poems, _ := setupPoemTest(t)
	ctx := context.Background()

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "mine"})
	require.NoError(t, err)

	title := "Stolen"
	_, err = poems.UpdatePoem(ctx, "user-bob", created.ID, PoemPatch{Title: &title})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestPoemService_DeletePoem(t *testing.T) {
	poems, _ := setupPoemTest(t)
	ctx := context.Background()

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "ephemeral"})
	require.NoError(t, err)

	require.NoError(t, poems.DeletePoem(ctx, "user-alice", created.ID))

	_, err = poems.GetPoem(ctx, "user-alice", created.ID)
	require.Error(t, err)

	// Deleting again reports NOT_FOUND.
	err = poems.DeletePoem(ctx, "user-alice", created.ID)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestPoemService_DeletePoem_NotOwned(t *testing.T) {
	poems, _ := setupPoemTest(t)
	ctx := context.Background()

	created, err := poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "protected"})
	require.NoError(t, err)

	err = poems.DeletePoem(ctx, "user-bob", created.ID)
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)

	// Still there for the owner.
	_, err = poems.GetPoem(ctx, "user-alice", created.ID)
	require.NoError(t, err)
}

func TestPoemService_ListPoems(t *testing.T) {
	poems, collections := setupPoemTest(t)
	ctx := context.Background()

	collection, err := collections.CreateCollection(ctx, "user-alice", CreateCollectionInput{Name: "Filed"})
	require.NoError(t, err)

	_, err = poems.CreatePoem(ctx, "user-alice", CreatePoemInput{Body: "loose one"})
	require.NoError(t, err)
	_, err = poems.CreatePoem(ctx, "user-alice", CreatePoemInput{
		CollectionID: &collection.ID,
		Body:         "filed one",
		IsFavorite:   true,
	})
	require.NoError(t, err)
	_, err = poems.CreatePoem(ctx, "user-bob", CreatePoemInput{Body: "bob's"})
	require.NoError(t, err)

	all, err := poems.ListPoems(ctx, "user-alice", PoemListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	favorites, err := poems.ListPoems(ctx, "user-alice", PoemListOptions{FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "filed one", favorites[0].Body)

	filed, err := poems.ListPoems(ctx, "user-alice", PoemListOptions{CollectionID: &collection.ID})
	require.NoError(t, err)
	require.Len(t, filed, 1)
	assert.Equal(t, "filed one", filed[0].Body)
}

func TestPoemService_ListPoems_ForeignCollectionFilter(t *testing.T) {
	poems, collections := setupPoemTest(t)
	ctx := context.Background()

	collection, err := collections.CreateCollection(ctx, "user-bob", CreateCollectionInput{Name: "Bob's"})
	require.NoError(t, err)

	_, err = poems.ListPoems(ctx, "user-alice", PoemListOptions{CollectionID: &collection.ID})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}
