package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pointsledger/referral-backend/internal/apperrors"
	"github.com/pointsledger/referral-backend/internal/repositories"
	"github.com/pointsledger/referral-backend/internal/repositories/memory"
	"github.com/pointsledger/referral-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPoints_NewUser(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewPointsService(repo)

	balance, err := svc.AddPoints(context.Background(), "alice", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)
}

func TestAddPoints_Accumulates(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewPointsService(repo)
	ctx := context.Background()

	_, err := svc.AddPoints(ctx, "alice", 50)
	require.NoError(t, err)
	balance, err := svc.AddPoints(ctx, "alice", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(75), balance)
}

func TestAddPoints_RejectsInvalidInput(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewPointsService(repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		amount int64
	}{
		{"empty user id", "", 10},
		{"zero amount", "alice", 0},
		{"negative amount", "alice", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddPoints(ctx, tt.userID, tt.amount)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidArgument(err))
		})
	}

	// Rejected input must not create records
	balance, err := svc.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

// Concurrent increments on the same user must all be reflected.
func TestAddPoints_NoLostUpdates(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewPointsService(repo)
	ctx := context.Background()

	const workers = 50
	const amount = 7

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddPoints(ctx, "alice", amount)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := svc.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*amount), balance)
}

func TestGetBalance_UnknownUserReadsZero(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := services.NewPointsService(repo)
	ctx := context.Background()

	balance, err := svc.GetBalance(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// The read must not create a record
	user, err := repo.FindByUserID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetBalance_EmptyUserID(t *testing.T) {
	svc := services.NewPointsService(memory.NewUserRepository())

	_, err := svc.GetBalance(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
}

// flakyRepo fails a fixed number of increments before delegating, to
// exercise the transient-failure retry path.
type flakyRepo struct {
	repositories.UserRepository
	mu       sync.Mutex
	failures int
}

func (f *flakyRepo) IncrementPoints(ctx context.Context, userID string, delta int64) (int64, error) {
	f.mu.Lock()
	shouldFail := f.failures > 0
	if shouldFail {
		f.failures--
	}
	f.mu.Unlock()
	if shouldFail {
		return 0, apperrors.New(apperrors.CodeUnavailable, "store unavailable")
	}
	return f.UserRepository.IncrementPoints(ctx, userID, delta)
}

func TestAddPoints_RetriesTransientFailures(t *testing.T) {
	repo := &flakyRepo{UserRepository: memory.NewUserRepository(), failures: 2}
	svc := services.NewPointsService(repo)

	balance, err := svc.AddPoints(context.Background(), "alice", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestAddPoints_SurfacesExhaustedRetries(t *testing.T) {
	repo := &flakyRepo{UserRepository: memory.NewUserRepository(), failures: 10}
	svc := services.NewPointsService(repo)

	_, err := svc.AddPoints(context.Background(), "alice", 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))

	// The failed operation must not have applied anything
	user, err := repo.UserRepository.FindByUserID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, user)
}
