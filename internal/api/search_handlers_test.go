package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPoems(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.authHeader(t, "user-alice")

	resp := ts.api.Post("/api/v1/poems", alice, map[string]any{
		"title": "Winter Morning",
		"body":  "frost gathers on the window",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Post("/api/v1/poems", alice, map[string]any{
		"title": "Summer Evening",
		"body":  "cicadas in the warm dark",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search/poems?q=frost", alice)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SearchPoemsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "frost", envelope.Data.Query)
	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, "Winter Morning", envelope.Data.Hits[0].Title)
}

func TestSearchPoems_ScopedToOwner(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.authHeader(t, "user-alice")
	bob := ts.authHeader(t, "user-bob")

	resp := ts.api.Post("/api/v1/poems", alice, map[string]any{
		"title": "Secret Garden",
		"body":  "roses behind the locked gate",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// Bob's search never surfaces Alice's poems.
	resp = ts.api.Get("/api/v1/search/poems?q=roses", bob)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchPoemsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Hits)
}

func TestSearchPoems_CollectionFilterChecksOwnership(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.authHeader(t, "user-alice")
	bob := ts.authHeader(t, "user-bob")

	resp := ts.api.Post("/api/v1/collections", alice, map[string]any{"name": "Haiku"})
	require.Equal(t, http.StatusOK, resp.Code)

	var collection testEnvelope[CollectionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &collection))

	resp = ts.api.Post("/api/v1/poems", alice, map[string]any{
		"collection_id": collection.Data.ID,
		"title":         "Pond",
		"body":          "old pond, a frog leaps in",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// The owner can filter search by their collection.
	resp = ts.api.Get("/api/v1/search/poems?q=frog&collection_id="+collection.Data.ID, alice)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var hits testEnvelope[SearchPoemsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &hits))
	require.Len(t, hits.Data.Hits, 1)

	// Someone else's collection looks missing, same as listing.
	resp = ts.api.Get("/api/v1/search/poems?q=frog&collection_id="+collection.Data.ID, bob)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "NOT_FOUND")

	// So does a collection that never existed.
	resp = ts.api.Get("/api/v1/search/poems?q=frog&collection_id=col-missing", alice)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSearchPoems_MissingQuery(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.authHeader(t, "user-alice")

	resp := ts.api.Get("/api/v1/search/poems", alice)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSearchPoems_DeletedPoemLeavesIndex(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.authHeader(t, "user-alice")

	resp := ts.api.Post("/api/v1/poems", alice, map[string]any{
		"title": "Fleeting",
		"body":  "gone before the ink dries",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var created testEnvelope[PoemResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = ts.api.Delete("/api/v1/poems/"+created.Data.ID, alice)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search/poems?q=ink", alice)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchPoemsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Hits)
}
