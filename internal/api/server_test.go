package api

import (
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srkarthi1982/poem-studio/internal/auth"
	"github.com/srkarthi1982/poem-studio/internal/search"
	"github.com/srkarthi1982/poem-studio/internal/service"
	"github.com/srkarthi1982/poem-studio/internal/store"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api    humatest.TestAPI
	tokens *auth.TokenService
	keyHex string
	store  *store.Store
	index  *search.PoemIndex
}

// setupTestServer creates a full API server backed by temporary storage and
// a temporary search index.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := store.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewPoemIndex(search.Options{
		DataPath: tmpDir,
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(hex.EncodeToString(authKey), 15*time.Minute)
	require.NoError(t, err)

	searchService := service.NewSearchService(index, st, logger)
	services := &Services{
		Collection: service.NewCollectionService(st, logger),
		Poem:       service.NewPoemService(st, searchService, logger),
		Search:     searchService,
	}

	s := NewServer(st, services, tokens, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		tokens: tokens,
		keyHex: hex.EncodeToString(authKey),
		store:  st,
		index:  index,
	}
}

// authHeader mints a token for the user and formats the Authorization header.
func (ts *testServer) authHeader(t *testing.T, userID string) string {
	t.Helper()

	token, err := ts.tokens.GenerateAccessToken(userID)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

func TestServerClose_Idempotent(t *testing.T) {
	ts := setupTestServer(t)

	// Cleanup closes again; both calls must be safe.
	ts.Close()
	ts.Close()
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, 200, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"database"`)
	assert.Contains(t, body, `"search"`)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	ts := setupTestServer(t)

	paths := []string{
		"/api/v1/collections",
		"/api/v1/poems",
		"/api/v1/search/poems?q=moon",
	}

	for _, path := range paths {
		resp := ts.api.Get(path)
		assert.Equal(t, 401, resp.Code, "GET %s should require auth", path)
		assert.Contains(t, resp.Body.String(), "UNAUTHORIZED")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/collections", "Authorization: Bearer not-a-real-token")
	assert.Equal(t, 401, resp.Code)
	assert.Contains(t, resp.Body.String(), "UNAUTHORIZED")
}

func TestExpiredTokenReportsExpiry(t *testing.T) {
	ts := setupTestServer(t)

	// Same key, lifetime already over.
	expiredTokens, err := auth.NewTokenService(ts.keyHex, -time.Minute)
	require.NoError(t, err)

	token, err := expiredTokens.GenerateAccessToken("user-alice")
	require.NoError(t, err)

	resp := ts.api.Get("/api/v1/collections", "Authorization: Bearer "+token)
	assert.Equal(t, 401, resp.Code)
	assert.Contains(t, resp.Body.String(), "TOKEN_EXPIRED")
}
