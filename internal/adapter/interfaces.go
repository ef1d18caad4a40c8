// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

// Package adapter provides transport-layer abstractions for communicating
// with the user service.
//
// The primary abstraction is [ServerAdapter], which decouples callers from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/dkotelnikov/user-service/models"
)

// ServerAdapter defines transport-agnostic communication with the user
// service. Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type ServerAdapter interface {
	// ListUsers fetches one page of users matching req.
	ListUsers(ctx context.Context, req models.ListUsersRequest) (models.ListUsersResponse, error)

	// GetUser fetches a single user by id.
	GetUser(ctx context.Context, id string) (models.User, error)

	// CreateUser sends a new user record and returns the stored record with
	// its server-assigned id and timestamps.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdateUser applies a partial update and returns the updated record.
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)

	// DeleteUser removes or deactivates the record with the given id.
	DeleteUser(ctx context.Context, id string) error

	// RestoreUser reactivates a previously deleted record.
	RestoreUser(ctx context.Context, id string) (models.User, error)

	// GetServerVersion returns the version string reported by the server.
	GetServerVersion(ctx context.Context) (string, error)
}
