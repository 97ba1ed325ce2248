package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/ratelimit"
	"github.com/inkwellapp/inkwell-server/internal/search"
	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
)

// itoa formats an entity ID for use in request paths.
func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Version int  `json:"v"`
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a fully wired server against a temporary
// database and search index.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.DiscardHandler)

	idx, err := search.NewIndex(search.Options{
		Path:   filepath.Join(tmpDir, "search.bleve"),
		Logger: logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	keyBytes := make([]byte, 32)
	_, err = rand.Read(keyBytes)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(keyBytes), 24*time.Hour)
	require.NoError(t, err)

	services := &Services{
		Auth:    service.NewAuthService(st, tokenService, logger),
		Book:    service.NewBookService(st, idx, logger),
		Review:  service.NewReviewService(st, logger),
		Comment: service.NewCommentService(st, logger),
	}

	// Generous limits so ordinary tests never trip the throttle.
	limiter := ratelimit.New(100, 100)

	s := NewServer(st, services, limiter, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// registerUser registers a member through the API and returns their token.
func (ts *testServer) registerUser(t *testing.T, username string) string {
	t.Helper()

	email := username + "@example.com"

	resp := ts.api.Post("/register", map[string]any{
		"username": username,
		"email":    email,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	return ts.login(t, email)
}

// registerAdmin creates an admin account directly in the store, the way
// the seed command does, and returns their token.
func (ts *testServer) registerAdmin(t *testing.T, username string) string {
	t.Helper()

	email := username + "@example.com"

	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, ts.store.CreateUser(context.Background(), user))

	return ts.login(t, email)
}

func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/login", map[string]any{
		"email":    email,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken
}

// createBook adds a book through the API and returns its ID.
func (ts *testServer) createBook(t *testing.T, token, title string) int64 {
	t.Helper()

	resp := ts.api.Post("/add_book",
		map[string]any{
			"title":            title,
			"author":           "Frank Herbert",
			"genre":            "Science Fiction",
			"synopsis":         "A desert planet and the spice that rules it.",
			"publication_year": 1965,
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "add_book failed: %s", resp.Body.String())

	var envelope testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	return envelope.Data.ID
}

// createReview adds a review through the API and returns its ID.
func (ts *testServer) createReview(t *testing.T, token string, bookID int64) int64 {
	t.Helper()

	resp := ts.api.Post("/add_review",
		map[string]any{
			"book_id": bookID,
			"content": "An instant favourite.",
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "add_review failed: %s", resp.Body.String())

	var envelope testEnvelope[ReviewResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	return envelope.Data.ID
}

// createComment adds a comment through the API and returns its ID.
func (ts *testServer) createComment(t *testing.T, token string, reviewID int64) int64 {
	t.Helper()

	resp := ts.api.Post("/add_comment",
		map[string]any{
			"review_id": reviewID,
			"content":   "Completely agree.",
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "add_comment failed: %s", resp.Body.String())

	var envelope testEnvelope[CommentResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	return envelope.Data.ID
}
