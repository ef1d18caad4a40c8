package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/internal/utils"
	"github.com/dkotelnikov/user-service/models"
)

// sqlUserRepository is the database/sql-backed implementation of
// [UserRepository], shared by the postgres and sqlite drivers. It handles
// all operations against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
//
// Records are soft-deleted: DeleteUser flips is_active to false and
// RestoreUser flips it back. Uniqueness of username and email is backed by
// the table's unique constraints; a violation surfaces as
// [ErrUsernameAlreadyExists] or [ErrEmailAlreadyExists] even if the
// caller's pre-check raced with a concurrent writer.
type sqlUserRepository struct {
	logger *logger.Logger
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
}

// NewSQLUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewSQLUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating sql user repository")
	return &sqlUserRepository{
		db:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
	}
}

// ListUsers returns one page of users matching the request's filter plus
// the total match count. The page window and total come from two queries
// over the same predicates; an out-of-range page yields an empty slice.
func (r *sqlUserRepository) ListUsers(ctx context.Context, req models.ListUsersRequest) ([]models.User, int, error) {
	log := logger.FromContext(ctx)

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	countQuery, countArgs, err := buildCountUsersQuery(req.Filter)
	if err != nil {
		log.Err(err).Str("func", "sqlUserRepository.ListUsers").Msg("failed to build count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.logRetryability(log, err)
		log.Err(err).Str("func", "sqlUserRepository.ListUsers").Msg("failed to count users")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildListUsersQuery(req)
	if err != nil {
		log.Err(err).Str("func", "sqlUserRepository.ListUsers").Msg("failed to build list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logRetryability(log, err)
		log.Err(err).Str("func", "sqlUserRepository.ListUsers").Int("page", req.Page).Msg("failed to execute list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, req.PerPage)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "sqlUserRepository.ListUsers").Msg("failed to scan user row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "sqlUserRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, total, nil
}

// GetUserByID retrieves a single record by id. Inactive (soft-deleted)
// records are returned as well; only their is_active flag tells them apart.
func (r *sqlUserRepository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetUserByIDQuery(id)
	if err != nil {
		log.Err(err).Str("func", "sqlUserRepository.GetUserByID").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "sqlUserRepository.GetUserByID").Str("id", id).Msg("failed to scan user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// FindUserByField retrieves the record whose field equals value, skipping
// excludeID when non-empty. Used for uniqueness pre-checks before insert
// and update.
func (r *sqlUserRepository) FindUserByField(ctx context.Context, field string, value string, excludeID string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByFieldQuery(field, value, excludeID)
	if err != nil {
		log.Err(err).Str("func", "sqlUserRepository.FindUserByField").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "sqlUserRepository.FindUserByField").Str("field", field).Msg("failed to scan user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// CreateUser persists a new record and returns the fully populated
// [models.User] with the server-assigned id and timestamps.
//
// The INSERT returns all columns via a RETURNING clause, so the caller
// receives the canonical database representation of the new record.
//
// Error handling:
//   - unique violation on username/email → [ErrUsernameAlreadyExists] /
//     [ErrEmailAlreadyExists] (constraint backstop behind the service-level
//     pre-check).
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *sqlUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.now().UTC()
	user.ID = r.ids.Generate()
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "sqlUserRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if conflictErr := r.conflictError(err); conflictErr != nil {
			log.Err(err).Str("func", "sqlUserRepository.CreateUser").Msg("unique constraint violated")
			return models.User{}, conflictErr
		}
		r.logRetryability(log, err)
		log.Err(err).Str("func", "sqlUserRepository.CreateUser").Msg("error saving user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// UpdateUser applies the non-nil fields of update to the record with the
// given id, refreshes updated_at, and returns the stored row.
//
// An empty update is valid: it only refreshes updated_at.
func (r *sqlUserRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(id, update, r.now().UTC())
	if err != nil {
		log.Err(err).Str("func", "sqlUserRepository.UpdateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		if conflictErr := r.conflictError(err); conflictErr != nil {
			log.Err(err).Str("func", "sqlUserRepository.UpdateUser").Str("id", id).Msg("unique constraint violated")
			return models.User{}, conflictErr
		}
		r.logRetryability(log, err)
		log.Err(err).Str("func", "sqlUserRepository.UpdateUser").Str("id", id).Msg("error updating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteUser soft-deletes the record: the row stays in the table with
// is_active = false and remains queryable by id.
func (r *sqlUserRepository) DeleteUser(ctx context.Context, id string) error {
	_, err := r.setActive(ctx, id, false)
	return err
}

// RestoreUser reactivates a soft-deleted record and returns it. Apart from
// updated_at the record is indistinguishable from its pre-delete state.
func (r *sqlUserRepository) RestoreUser(ctx context.Context, id string) (models.User, error) {
	return r.setActive(ctx, id, true)
}

func (r *sqlUserRepository) setActive(ctx context.Context, id string, active bool) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSetActiveQuery(id, active, r.now().UTC())
	if err != nil {
		log.Err(err).Str("func", "sqlUserRepository.setActive").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		r.logRetryability(log, err)
		log.Err(err).Str("func", "sqlUserRepository.setActive").Str("id", id).Bool("active", active).Msg("error toggling is_active")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// conflictError translates a driver-level unique violation into the
// matching sentinel, or returns nil when err is not a unique violation.
func (r *sqlUserRepository) conflictError(err error) error {
	switch r.db.errorClassificator.ConflictColumn(err) {
	case FieldUsername:
		return ErrUsernameAlreadyExists
	case FieldEmail:
		return ErrEmailAlreadyExists
	}
	return nil
}

// logRetryability adds a warning for transient driver errors so operators
// can tell contention from real failures in the logs.
func (r *sqlUserRepository) logRetryability(log *logger.Logger, err error) {
	if r.db.errorClassificator.Classify(err) == Retryable {
		log.Warn().Err(err).Msg("transient database error, operation may succeed on retry")
	}
}

// rowScanner is the subset of *sql.Row / *sql.Rows needed by scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Age,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
