package user

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateAndLookup(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "jane@example.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := svc.GetUserByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := svc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.PasswordHash)
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "jane@example.com", "a")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "jane@example.com", "b")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_UnknownUser(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())

	_, err := svc.GetUserByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.GetUserByEmail(context.Background(), "nope@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryRepository_ConcurrentRegistrationOfSameEmail(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CreateUser(ctx, "race@example.com", "hash"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &User{ID: "u-1", Email: "a@example.com"}))
	found, err := repo.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	found.Email = "changed@example.com"

	again, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", again.Email)
}
