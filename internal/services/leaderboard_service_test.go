package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/pointsledger/referral-backend/internal/models"
	"github.com/pointsledger/referral-backend/internal/repositories/memory"
	"github.com/pointsledger/referral-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPoints(t *testing.T, repo *memory.UserRepository, balances map[string]int64) {
	t.Helper()
	ctx := context.Background()
	for userID, points := range balances {
		if points == 0 {
			// A registered user with no balance
			_, err := repo.Upsert(ctx, userID, models.DefaultUsername)
			require.NoError(t, err)
			continue
		}
		_, err := repo.IncrementPoints(ctx, userID, points)
		require.NoError(t, err)
	}
}

func TestTopUsers_OrdersByPointsDescending(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewLeaderboardService(repo)
	seedPoints(t, repo, map[string]int64{
		"alice": 300,
		"bob":   150,
		"carol": 450,
		"dave":  75,
	})

	entries, err := svc.TopUsers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "carol", entries[0].UserID)
	assert.Equal(t, "alice", entries[1].UserID)
	assert.Equal(t, "bob", entries[2].UserID)
	assert.Equal(t, "dave", entries[3].UserID)
}

func TestTopUsers_TiesBreakByUserID(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewLeaderboardService(repo)
	seedPoints(t, repo, map[string]int64{
		"zoe":   100,
		"amy":   100,
		"mike":  100,
		"carol": 200,
	})

	entries, err := svc.TopUsers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "carol", entries[0].UserID)
	assert.Equal(t, "amy", entries[1].UserID)
	assert.Equal(t, "mike", entries[2].UserID)
	assert.Equal(t, "zoe", entries[3].UserID)
}

func TestTopUsers_ExcludesZeroBalances(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewLeaderboardService(repo)
	seedPoints(t, repo, map[string]int64{
		"alice": 100,
		"bob":   0,
	})

	entries, err := svc.TopUsers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].UserID)
}

func TestTopUsers_TruncatesToLimit(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewLeaderboardService(repo)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := repo.IncrementPoints(ctx, fmt.Sprintf("user-%02d", i), int64(10*(i+1)))
		require.NoError(t, err)
	}

	entries, err := svc.TopUsers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "user-09", entries[0].UserID)
	assert.Equal(t, "user-08", entries[1].UserID)
	assert.Equal(t, "user-07", entries[2].UserID)
}

func TestTopUsers_DefaultsAndClampsLimit(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewLeaderboardService(repo)
	ctx := context.Background()

	for i := 0; i < services.MaxLeaderboardLimit+20; i++ {
		_, err := repo.IncrementPoints(ctx, fmt.Sprintf("user-%03d", i), int64(i+1))
		require.NoError(t, err)
	}

	// limit <= 0 falls back to the default
	entries, err := svc.TopUsers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, services.DefaultLeaderboardLimit)

	// oversized limits are clamped
	entries, err = svc.TopUsers(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, entries, services.MaxLeaderboardLimit)
}

func TestTopUsers_EmptyBoardIsEmptySlice(t *testing.T) {
	svc := services.NewLeaderboardService(memory.NewUserRepository())

	entries, err := svc.TopUsers(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestTopUsers_AnonymousFallbackForUnregisteredUsers(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewLeaderboardService(repo)
	ctx := context.Background()

	// alice earned points without ever registering a username
	_, err := repo.IncrementPoints(ctx, "alice", 40)
	require.NoError(t, err)

	entries, err := svc.TopUsers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.DefaultUsername, entries[0].Username)
}
