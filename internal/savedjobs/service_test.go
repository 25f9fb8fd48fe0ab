package savedjobs

import (
	"context"
	"testing"

	"github.com/hirewire/jobboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ userID, jobID string }

// mockRepository implements Repository for testing, backed by a set keyed
// on (user, job) like the unique constraint.
type mockRepository struct {
	saved      map[pair]bool
	knownJobs  map[string]bool
	jobsByUser map[string][]domain.Job
}

func newMockRepository(jobIDs ...string) *mockRepository {
	known := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		known[id] = true
	}
	return &mockRepository{
		saved:      make(map[pair]bool),
		knownJobs:  known,
		jobsByUser: make(map[string][]domain.Job),
	}
}

func (m *mockRepository) DeleteSavedJob(_ context.Context, userID, jobID string) (int64, error) {
	key := pair{userID, jobID}
	if m.saved[key] {
		delete(m.saved, key)
		return 1, nil
	}
	return 0, nil
}

func (m *mockRepository) InsertSavedJob(_ context.Context, userID, jobID string) error {
	if !m.knownJobs[jobID] {
		return ErrJobNotFound
	}
	m.saved[pair{userID, jobID}] = true
	return nil
}

func (m *mockRepository) ListSavedJobs(_ context.Context, userID string) ([]domain.Job, error) {
	return m.jobsByUser[userID], nil
}

func TestToggle_SavesThenUnsaves(t *testing.T) {
	repo := newMockRepository("j1")
	service := NewService(repo)

	saved, err := service.Toggle(context.Background(), "u1", "j1")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = service.Toggle(context.Background(), "u1", "j1")
	require.NoError(t, err)
	assert.False(t, saved)

	// Two toggles restore the original state.
	assert.Empty(t, repo.saved)
}

func TestToggle_UnknownJob(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	_, err := service.Toggle(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestToggle_IndependentPerUser(t *testing.T) {
	repo := newMockRepository("j1")
	service := NewService(repo)

	saved, err := service.Toggle(context.Background(), "u1", "j1")
	require.NoError(t, err)
	assert.True(t, saved)

	// A different user toggling the same job saves it for them, it does
	// not unsave it for the first user.
	saved, err = service.Toggle(context.Background(), "u2", "j1")
	require.NoError(t, err)
	assert.True(t, saved)

	assert.True(t, repo.saved[pair{"u1", "j1"}])
	assert.True(t, repo.saved[pair{"u2", "j1"}])
}
