// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

// Package store owns the canonical collection of user records.
//
// Three interchangeable backends implement [UserRepository]: a PostgreSQL
// repository, a SQLite repository (both share the database/sql
// implementation), and a process-local in-memory repository. The backend is
// selected at startup from configuration; all other packages access records
// only through the repository interface, never through its internals.
package store

import (
	"context"

	"github.com/dkotelnikov/user-service/models"
)

// Searchable user fields accepted by [UserRepository.FindUserByField].
const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// UserRepository is the storage contract for user records.
//
// All lookups signal a missing record with [ErrUserNotFound] rather than a
// driver-specific error, so callers can translate it uniformly. Mutating
// operations on a given id appear atomic to concurrent readers of that id.
type UserRepository interface {
	// ListUsers returns the page of users selected by req along with the
	// total number of records matching the filter (before pagination).
	// An out-of-range page yields an empty slice and the true total.
	ListUsers(ctx context.Context, req models.ListUsersRequest) ([]models.User, int, error)

	// GetUserByID returns the record with the given id regardless of its
	// is_active flag.
	GetUserByID(ctx context.Context, id string) (models.User, error)

	// FindUserByField returns the record whose field (FieldUsername or
	// FieldEmail) equals value. When excludeID is non-empty, a record with
	// that id is ignored — used for uniqueness checks during updates.
	FindUserByField(ctx context.Context, field string, value string, excludeID string) (models.User, error)

	// CreateUser persists a new record and returns it with the assigned id
	// and timestamps. The candidate's ID field is ignored.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdateUser applies the non-nil fields of update to the record with
	// the given id and refreshes updated_at.
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)

	// DeleteUser removes the record from default visibility. SQL backends
	// flip is_active to false and keep the row; the memory backend drops
	// the record permanently.
	DeleteUser(ctx context.Context, id string) error

	// RestoreUser flips is_active back to true and returns the record.
	// Backends that delete permanently report ErrUserNotFound.
	RestoreUser(ctx context.Context, id string) (models.User, error)
}
