package store

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/models"
)

// memoryUserRepository is the process-local implementation of
// [UserRepository]. Records live for the lifetime of the process only.
//
// Ids are a monotonically increasing integer sequence rendered as decimal
// strings; an id is never reused, even after its record is deleted. Unlike
// the SQL backends, DeleteUser removes the record permanently, so a
// subsequent get, update, or restore reports [ErrUserNotFound].
//
// A sync.RWMutex guards all state: reads share the lock, mutations take it
// exclusively, and every record is replaced wholesale so concurrent readers
// never observe a half-applied update.
type memoryUserRepository struct {
	logger *logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	nextID int64
	order  []string               // ids in insertion order
	items  map[string]models.User // id to record
}

// NewMemoryUserRepository constructs the in-memory [UserRepository].
func NewMemoryUserRepository(logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		logger: logger,
		now:    time.Now,
		nextID: 1,
		items:  make(map[string]models.User),
	}
}

// ListUsers returns the requested page of records in insertion order plus
// the total number of records matching the filter.
func (r *memoryUserRepository) ListUsers(_ context.Context, req models.ListUsersRequest) ([]models.User, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		user := r.items[id]
		if matchesFilter(user, req.Filter) {
			matched = append(matched, user)
		}
	}

	total := len(matched)
	start := (req.Page - 1) * req.PerPage
	if start >= total {
		return []models.User{}, total, nil
	}
	end := start + req.PerPage
	if end > total {
		end = total
	}

	page := make([]models.User, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

// GetUserByID returns the record with the given id.
func (r *memoryUserRepository) GetUserByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// FindUserByField returns the record whose field equals value, skipping
// excludeID when non-empty.
func (r *memoryUserRepository) FindUserByField(_ context.Context, field string, value string, excludeID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		user := r.items[id]

		var fieldValue string
		switch field {
		case FieldUsername:
			fieldValue = user.Username
		case FieldEmail:
			fieldValue = user.Email
		default:
			return models.User{}, ErrUserNotFound
		}

		if strings.EqualFold(fieldValue, value) {
			return user, nil
		}
	}

	return models.User{}, ErrUserNotFound
}

// CreateUser stores a new record under the next id in the sequence.
func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	user.ID = strconv.FormatInt(r.nextID, 10)
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++

	r.items[user.ID] = user
	r.order = append(r.order, user.ID)

	return user, nil
}

// UpdateUser applies the non-nil fields of update to the record and
// refreshes UpdatedAt. The record is replaced atomically under the lock.
func (r *memoryUserRepository) UpdateUser(_ context.Context, id string, update models.UserUpdate) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.items[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Age != nil {
		age := *update.Age
		user.Age = &age
	}
	user.UpdatedAt = r.now().UTC()

	r.items[id] = user
	return user, nil
}

// DeleteUser removes the record permanently. The freed id is never reused.
func (r *memoryUserRepository) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrUserNotFound
	}

	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// RestoreUser reports ErrUserNotFound for ids this backend has deleted;
// records it still holds are reactivated in place for interface parity
// with the SQL backends.
func (r *memoryUserRepository) RestoreUser(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.items[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	user.IsActive = true
	user.UpdatedAt = r.now().UTC()
	r.items[id] = user
	return user, nil
}

func matchesFilter(user models.User, filter models.UserFilter) bool {
	if filter.IsActive != nil && user.IsActive != *filter.IsActive {
		return false
	}
	if filter.MinAge != nil && (user.Age == nil || *user.Age < *filter.MinAge) {
		return false
	}
	if filter.MaxAge != nil && (user.Age == nil || *user.Age > *filter.MaxAge) {
		return false
	}
	return true
}
