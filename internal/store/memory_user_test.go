package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/models"
)

func newMemoryRepo(t *testing.T) UserRepository {
	t.Helper()
	return NewMemoryUserRepository(logger.Nop())
}

func mustCreate(t *testing.T, repo UserRepository, username string) models.User {
	t.Helper()
	created, err := repo.CreateUser(context.Background(), models.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
	})
	require.NoError(t, err)
	return created
}

func TestMemoryCreateUser_AssignsSequentialIDs(t *testing.T) {
	repo := newMemoryRepo(t)

	first := mustCreate(t, repo, "alice")
	second := mustCreate(t, repo, "bob")

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.True(t, first.IsActive)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryGetUserByID(t *testing.T) {
	repo := newMemoryRepo(t)
	created := mustCreate(t, repo, "alice")

	got, err := repo.GetUserByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestMemoryGetUserByID_NotFound(t *testing.T) {
	repo := newMemoryRepo(t)

	_, err := repo.GetUserByID(context.Background(), "404")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryFindUserByField_CaseInsensitive(t *testing.T) {
	repo := newMemoryRepo(t)
	created := mustCreate(t, repo, "alice")

	got, err := repo.FindUserByField(context.Background(), FieldUsername, "ALICE", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.FindUserByField(context.Background(), FieldUsername, "alice", created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound, "own record must be excluded")
}

func TestMemoryListUsers_Pagination(t *testing.T) {
	repo := newMemoryRepo(t)
	for i := 0; i < 15; i++ {
		mustCreate(t, repo, fmt.Sprintf("user%02d", i))
	}

	ctx := context.Background()

	firstPage, total, err := repo.ListUsers(ctx, models.ListUsersRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	require.Len(t, firstPage, 10)
	assert.Equal(t, "user00", firstPage[0].Username)

	secondPage, _, err := repo.ListUsers(ctx, models.ListUsersRequest{Page: 2, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, secondPage, 5)
	assert.Equal(t, "user10", secondPage[0].Username)

	thirdPage, total, err := repo.ListUsers(ctx, models.ListUsersRequest{Page: 3, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Empty(t, thirdPage)
}

func TestMemoryListUsers_Filter(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	young := mustCreate(t, repo, "young")
	old := mustCreate(t, repo, "old")
	mustCreate(t, repo, "ageless")

	_, err := repo.UpdateUser(ctx, young.ID, models.UserUpdate{Age: intPtr(20)})
	require.NoError(t, err)
	_, err = repo.UpdateUser(ctx, old.ID, models.UserUpdate{Age: intPtr(70)})
	require.NoError(t, err)

	users, total, err := repo.ListUsers(ctx, models.ListUsersRequest{
		Page:    1,
		PerPage: 10,
		Filter:  models.UserFilter{MinAge: intPtr(18), MaxAge: intPtr(65)},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "young", users[0].Username, "records without age never satisfy age bounds")
}

func TestMemoryUpdateUser_PartialFields(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()
	created := mustCreate(t, repo, "alice")

	updated, err := repo.UpdateUser(ctx, created.ID, models.UserUpdate{
		Email: strPtr("new@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username, "untouched fields keep their values")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestMemoryDeleteUser_IsPermanent(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()
	created := mustCreate(t, repo, "alice")

	require.NoError(t, repo.DeleteUser(ctx, created.ID))

	_, err := repo.GetUserByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.RestoreUser(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound, "memory backend cannot restore deleted records")

	_, _, err = repo.ListUsers(ctx, models.ListUsersRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
}

func TestMemoryDeleteUser_IDNotReused(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "alice")
	require.NoError(t, repo.DeleteUser(ctx, first.ID))

	second := mustCreate(t, repo, "bob")

	assert.NotEqual(t, first.ID, second.ID)
}

func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.CreateUser(ctx, models.User{
				Username:  fmt.Sprintf("user%d", n),
				Email:     fmt.Sprintf("user%d@example.com", n),
				FirstName: "First",
				LastName:  "Last",
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	_, total, err := repo.ListUsers(ctx, models.ListUsersRequest{Page: 1, PerPage: 100})
	require.NoError(t, err)
	assert.Equal(t, 20, total)
}
