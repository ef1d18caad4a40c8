package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		driver:             "pgx",
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func newTestRepo(t *testing.T, db *sql.DB) UserRepository {
	t.Helper()
	return NewSQLUserRepository(newDBFromSQL(db), logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

type userRow struct {
	id        string
	username  string
	email     string
	firstName string
	lastName  string
	age       driver.Value // int64 or nil
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func (r userRow) toRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(r.id, r.username, r.email, r.firstName, r.lastName,
			r.age, r.isActive, r.createdAt, r.updatedAt)
}

func sampleRow() userRow {
	now := time.Now().UTC()
	return userRow{
		id:        "0190a6e2-0000-7000-8000-000000000001",
		username:  "john_doe",
		email:     "john@example.com",
		firstName: "John",
		lastName:  "Doe",
		age:       int64(30),
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
}

// uniqueViolation fabricates the pgx error a violated unique index yields.
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// ── GetUserByID ─────────────────────────────────────────────────────────────

func TestGetUserByID_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(row.id).
		WillReturnRows(row.toRows())

	got, err := repo.GetUserByID(testContext(), row.id)

	require.NoError(t, err)
	assert.Equal(t, row.username, got.Username)
	require.NotNil(t, got.Age)
	assert.Equal(t, 30, *got.Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByID(testContext(), "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NullAge(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()
	row.age = nil

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(row.id).
		WillReturnRows(row.toRows())

	got, err := repo.GetUserByID(testContext(), row.id)

	require.NoError(t, err)
	assert.Nil(t, got.Age)
}

// ── ListUsers ───────────────────────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))
	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY created_at, id LIMIT 10 OFFSET 0`).
		WillReturnRows(row.toRows())

	users, total, err := repo.ListUsers(testContext(), models.ListUsersRequest{Page: 1, PerPage: 10})

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 15, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_FilterArgs(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE is_active = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE is_active = \$1 ORDER BY created_at, id`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, total, err := repo.ListUsers(testContext(), models.ListUsersRequest{
		Page:    1,
		PerPage: 10,
		Filter:  models.UserFilter{IsActive: boolPtr(true)},
	})

	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Zero(t, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.ListUsers(testContext(), models.ListUsersRequest{Page: 1, PerPage: 10})

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── FindUserByField ─────────────────────────────────────────────────────────

func TestFindUserByField_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs(row.username).
		WillReturnRows(row.toRows())

	got, err := repo.FindUserByField(testContext(), FieldUsername, row.username, "")

	require.NoError(t, err)
	assert.Equal(t, row.id, got.ID)
}

func TestFindUserByField_ExcludeID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1 AND id <> \$2`).
		WithArgs("john@example.com", "self-id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByField(testContext(), FieldEmail, "john@example.com", "self-id")

	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── CreateUser ──────────────────────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()

	mock.ExpectQuery(`INSERT INTO users .+ RETURNING`).
		WillReturnRows(row.toRows())

	created, err := repo.CreateUser(testContext(), models.User{
		Username:  row.username,
		Email:     row.email,
		FirstName: row.firstName,
		LastName:  row.lastName,
		Age:       intPtr(30),
	})

	require.NoError(t, err)
	assert.Equal(t, row.id, created.ID)
	assert.True(t, created.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UsernameUniqueViolation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(uniqueViolation("users_username_key"))

	_, err := repo.CreateUser(testContext(), models.User{Username: "john_doe"})

	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestCreateUser_EmailUniqueViolation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(uniqueViolation("users_email_key"))

	_, err := repo.CreateUser(testContext(), models.User{Email: "john@example.com"})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

// ── UpdateUser ──────────────────────────────────────────────────────────────

func TestUpdateUser_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()
	row.email = "new@example.com"

	mock.ExpectQuery(`UPDATE users SET updated_at = \$1, email = \$2 WHERE id = \$3 RETURNING`).
		WillReturnRows(row.toRows())

	updated, err := repo.UpdateUser(testContext(), row.id,
		models.UserUpdate{Email: strPtr("new@example.com")})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`UPDATE users SET`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUser(testContext(), "missing", models.UserUpdate{})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_UniqueViolation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`UPDATE users SET`).
		WillReturnError(uniqueViolation("users_email_key"))

	_, err := repo.UpdateUser(testContext(), "some-id",
		models.UserUpdate{Email: strPtr("taken@example.com")})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

// ── DeleteUser / RestoreUser ────────────────────────────────────────────────

func TestDeleteUser_SetsInactive(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()
	row.isActive = false

	mock.ExpectQuery(`UPDATE users SET is_active = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
		WillReturnRows(row.toRows())

	require.NoError(t, repo.DeleteUser(testContext(), row.id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`UPDATE users SET is_active`).
		WillReturnError(sql.ErrNoRows)

	assert.ErrorIs(t, repo.DeleteUser(testContext(), "missing"), ErrUserNotFound)
}

func TestRestoreUser_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	row := sampleRow()

	mock.ExpectQuery(`UPDATE users SET is_active = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
		WillReturnRows(row.toRows())

	restored, err := repo.RestoreUser(testContext(), row.id)

	require.NoError(t, err)
	assert.True(t, restored.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}
