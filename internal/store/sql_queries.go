// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/dkotelnikov/user-service/models"
)

// userColumns is the canonical column order shared by every SELECT and
// RETURNING clause; scanUser relies on it.
var userColumns = []string{
	"id",
	"username",
	"email",
	"first_name",
	"last_name",
	"age",
	"is_active",
	"created_at",
	"updated_at",
}

// psql builds all queries with PostgreSQL-style $N placeholders. SQLite
// accepts the same placeholder syntax, so both SQL backends share these
// builders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// applyUserFilter adds the list predicates to a SELECT. All supplied
// predicates combine with AND; records without an age never satisfy an age
// bound.
func applyUserFilter(b sq.SelectBuilder, filter models.UserFilter) sq.SelectBuilder {
	if filter.IsActive != nil {
		b = b.Where(sq.Eq{"is_active": *filter.IsActive})
	}
	if filter.MinAge != nil {
		b = b.Where(sq.GtOrEq{"age": *filter.MinAge})
	}
	if filter.MaxAge != nil {
		b = b.Where(sq.LtOrEq{"age": *filter.MaxAge})
	}
	return b
}

// buildListUsersQuery returns the paginated SELECT for a list request.
// Ordering is by creation time (id as tie-breaker) so pages are stable
// across requests.
func buildListUsersQuery(req models.ListUsersRequest) (string, []any, error) {
	offset := uint64(req.Page-1) * uint64(req.PerPage)

	b := psql.Select(userColumns...).
		From("users").
		OrderBy("created_at", "id").
		Limit(uint64(req.PerPage)).
		Offset(offset)

	return applyUserFilter(b, req.Filter).ToSql()
}

// buildCountUsersQuery returns the COUNT(*) query matching the same filter
// as buildListUsersQuery, without pagination.
func buildCountUsersQuery(filter models.UserFilter) (string, []any, error) {
	b := psql.Select("COUNT(*)").From("users")

	return applyUserFilter(b, filter).ToSql()
}

// buildGetUserByIDQuery returns the lookup for a single record by id.
// The is_active flag is deliberately not part of the predicate: inactive
// records stay addressable by id.
func buildGetUserByIDQuery(id string) (string, []any, error) {
	return psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildFindUserByFieldQuery returns the lookup used by uniqueness
// pre-checks. When excludeID is non-empty the record with that id is
// skipped, so updating a user does not conflict with itself.
func buildFindUserByFieldQuery(field string, value string, excludeID string) (string, []any, error) {
	b := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{field: value})

	if excludeID != "" {
		b = b.Where(sq.NotEq{"id": excludeID})
	}

	return b.ToSql()
}

// buildInsertUserQuery returns the INSERT for a new record. All columns are
// supplied by the caller (the repository assigns id and timestamps); the
// RETURNING clause hands back the canonical stored row.
func buildInsertUserQuery(user models.User) (string, []any, error) {
	return psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Email, user.FirstName, user.LastName,
			user.Age, user.IsActive, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
}

// buildUpdateUserQuery returns the partial UPDATE for a record. Only the
// non-nil fields of update become SET clauses; updated_at is always
// refreshed, even for an empty update.
func buildUpdateUserQuery(id string, update models.UserUpdate, now time.Time) (string, []any, error) {
	b := psql.Update("users").Set("updated_at", now)

	if update.Username != nil {
		b = b.Set("username", *update.Username)
	}
	if update.Email != nil {
		b = b.Set("email", *update.Email)
	}
	if update.FirstName != nil {
		b = b.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		b = b.Set("last_name", *update.LastName)
	}
	if update.Age != nil {
		b = b.Set("age", *update.Age)
	}

	return b.Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
}

// buildSetActiveQuery returns the UPDATE that toggles the soft-delete flag
// (delete sets false, restore sets true) and refreshes updated_at.
func buildSetActiveQuery(id string, active bool, now time.Time) (string, []any, error) {
	return psql.Update("users").
		Set("is_active", active).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
}

func returningColumns() string {
	return strings.Join(userColumns, ", ")
}
