package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hirewire/jobboard/internal/directory"
	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDirectory implements Directory for testing.
type mockDirectory struct {
	users   []domain.DirectoryUser
	listErr error
	known   map[string]bool
	banned  map[string]bool
	apiErr  error
}

func newMockDirectory(ids ...string) *mockDirectory {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &mockDirectory{known: known, banned: make(map[string]bool)}
}

func (m *mockDirectory) ListUsers(_ context.Context) ([]domain.DirectoryUser, error) {
	return m.users, m.listErr
}

func (m *mockDirectory) DeleteUser(_ context.Context, id string) error {
	if m.apiErr != nil {
		return m.apiErr
	}
	if !m.known[id] {
		return directory.ErrUserNotFound
	}
	delete(m.known, id)
	return nil
}

func (m *mockDirectory) BanUser(_ context.Context, id string) error {
	if !m.known[id] {
		return directory.ErrUserNotFound
	}
	m.banned[id] = true
	return nil
}

func (m *mockDirectory) UnbanUser(_ context.Context, id string) error {
	if !m.known[id] {
		return directory.ErrUserNotFound
	}
	delete(m.banned, id)
	return nil
}

// mockJobStore implements JobStore and JobLister for testing.
type mockJobStore struct {
	jobs       map[string]*domain.Job
	deleteRows int64
	forceZero  bool
}

func newMockJobStore() *mockJobStore {
	return &mockJobStore{jobs: make(map[string]*domain.Job), deleteRows: 1}
}

func (m *mockJobStore) GetJobByID(_ context.Context, id string) (*domain.Job, error) {
	if job, ok := m.jobs[id]; ok {
		return job, nil
	}
	return nil, jobs.ErrJobNotFound
}

func (m *mockJobStore) DeleteJob(_ context.Context, id string) (int64, error) {
	if m.forceZero {
		return 0, nil
	}
	if _, ok := m.jobs[id]; !ok {
		return 0, nil
	}
	delete(m.jobs, id)
	return m.deleteRows, nil
}

func (m *mockJobStore) CountJobs(_ context.Context) (int, error) {
	return len(m.jobs), nil
}

func (m *mockJobStore) ListWithRecruiters(_ context.Context, _ jobs.Filter) ([]domain.EnrichedJob, error) {
	enriched := make([]domain.EnrichedJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		enriched = append(enriched, job.Enrich(nil))
	}
	return enriched, nil
}

func newTestRouter(dir Directory, store *mockJobStore) chi.Router {
	r := chi.NewRouter()
	NewHandler(dir, store, store).RegisterRoutes(r)
	return r
}

func do(router chi.Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListDirectoryUsers(t *testing.T) {
	dir := newMockDirectory()
	dir.users = []domain.DirectoryUser{{ID: "u1", Email: "a@b.test", Name: "A"}}
	router := newTestRouter(dir, newMockJobStore())

	rec := do(router, http.MethodGet, "/get-clerk-users")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"a@b.test"`)
}

func TestListDirectoryUsers_UpstreamFailureIsBadGateway(t *testing.T) {
	dir := newMockDirectory()
	dir.listErr = &directory.APIError{Status: 500, Message: "upstream broke"}
	router := newTestRouter(dir, newMockJobStore())

	rec := do(router, http.MethodGet, "/get-clerk-users")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream broke")
}

func TestDeleteUser(t *testing.T) {
	dir := newMockDirectory("u1")
	router := newTestRouter(dir, newMockJobStore())

	rec := do(router, http.MethodDelete, "/delete-user/u1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/delete-user/u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBanUnbanUser(t *testing.T) {
	dir := newMockDirectory("u1")
	router := newTestRouter(dir, newMockJobStore())

	rec := do(router, http.MethodPost, "/ban-user/u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, dir.banned["u1"])

	rec = do(router, http.MethodPost, "/unban-user/u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, dir.banned["u1"])

	rec = do(router, http.MethodPost, "/ban-user/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListJobs_EmptyIsArray(t *testing.T) {
	router := newTestRouter(newMockDirectory(), newMockJobStore())

	rec := do(router, http.MethodGet, "/get-jobs")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": []}`, rec.Body.String())
}

func TestProbeStorage(t *testing.T) {
	store := newMockJobStore()
	store.jobs["j1"] = &domain.Job{ID: "j1"}
	router := newTestRouter(newMockDirectory(), store)

	rec := do(router, http.MethodGet, "/test-supabase")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": {"count": 1}}`, rec.Body.String())
}

func TestDeleteJob(t *testing.T) {
	store := newMockJobStore()
	store.jobs["j1"] = &domain.Job{ID: "j1", Title: "Go Engineer"}
	router := newTestRouter(newMockDirectory(), store)

	rec := do(router, http.MethodDelete, "/delete-job/j1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Go Engineer"`)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestDeleteJob_NotFound(t *testing.T) {
	router := newTestRouter(newMockDirectory(), newMockJobStore())

	rec := do(router, http.MethodDelete, "/delete-job/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// A job that exists but whose delete affects zero rows is a server error,
// not a not-found.
func TestDeleteJob_ZeroRowsIsServerError(t *testing.T) {
	store := newMockJobStore()
	store.jobs["j1"] = &domain.Job{ID: "j1"}
	store.forceZero = true
	router := newTestRouter(newMockDirectory(), store)

	rec := do(router, http.MethodDelete, "/delete-job/j1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "no rows")
}
