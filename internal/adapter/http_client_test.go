// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/user-service/models"
)

func newTestAdapter(t *testing.T, serverURL string) ServerAdapter {
	t.Helper()
	return NewHTTPServerAdapter(HTTPClientConfig{BaseURL: serverURL})
}

func ptr[T any](v T) *T { return &v }

// ── ListUsers ───────────────────────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "true", r.URL.Query().Get("is_active"))

		json.NewEncoder(w).Encode(models.ListUsersResponse{
			Users:      []models.User{{ID: "1", Username: "alice"}},
			Pagination: models.Pagination{Page: 2, PerPage: 10, Total: 11, Pages: 2},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListUsers(context.Background(), models.ListUsersRequest{
		Page:   2,
		Filter: models.UserFilter{IsActive: ptr(true)},
	})

	require.NoError(t, err)
	assert.Len(t, got.Users, 1)
	assert.Equal(t, 11, got.Pagination.Total)
}

// ── GetUser ─────────────────────────────────────────────────────────────────

func TestGetUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "User not found"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetUser(context.Background(), "missing")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "User not found")
}

// ── CreateUser ──────────────────────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)

		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		user.ID = "assigned-id"
		user.IsActive = true

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.CreateUser(context.Background(), models.User{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	})

	require.NoError(t, err)
	assert.Equal(t, "assigned-id", got.ID)
	assert.True(t, got.IsActive)
}

func TestCreateUser_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "username already exists"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateUser(context.Background(), models.User{Username: "alice"})

	assert.ErrorIs(t, err, ErrConflict)
}

// ── UpdateUser ──────────────────────────────────────────────────────────────

func TestUpdateUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/abc", r.URL.Path)

		json.NewEncoder(w).Encode(models.User{ID: "abc", Email: "new@example.com"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.UpdateUser(context.Background(), "abc",
		models.UserUpdate{Email: ptr("new@example.com")})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
}

// ── DeleteUser / RestoreUser ────────────────────────────────────────────────

func TestDeleteUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/abc", r.URL.Path)

		json.NewEncoder(w).Encode(models.MessageResponse{Message: "User deleted successfully"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	assert.NoError(t, a.DeleteUser(context.Background(), "abc"))
}

func TestRestoreUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/abc/restore", r.URL.Path)

		json.NewEncoder(w).Encode(models.User{ID: "abc", IsActive: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.RestoreUser(context.Background(), "abc")

	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

// ── GetServerVersion ────────────────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Write([]byte("1.2.3"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	version, err := a.GetServerVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}
