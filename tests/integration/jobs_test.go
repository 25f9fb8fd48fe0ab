//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/hirewire/jobboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountID(t *testing.T, client *testutil.Client) string {
	t.Helper()

	resp, err := client.GET("/api/me")
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var me struct {
		ID string `json:"id"`
	}
	dataField(t, resp, &me)
	return me.ID
}

type enrichedJob struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	IsOpen         bool   `json:"is_open"`
	RecruiterID    string `json:"recruiter_id"`
	RecruiterEmail string `json:"recruiter_email"`
	RecruiterName  string `json:"recruiter_name"`
}

func findJob(jobs []enrichedJob, id string) *enrichedJob {
	for i := range jobs {
		if jobs[i].ID == id {
			return &jobs[i]
		}
	}
	return nil
}

func TestJobListing_EnrichesRecruiterIdentity(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	recruiterID := accountID(t, recruiter)
	testDirectory.addUser(recruiterID, "Rita", "Recruiter", "rita@corp.test")

	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "Enriched Role")

	candidate, _ := signUpWithRole(t, "candidate")
	resp, err := candidate.GET("/api/jobs")
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var jobs []enrichedJob
	dataField(t, resp, &jobs)

	job := findJob(jobs, jobID)
	require.NotNil(t, job)
	assert.Equal(t, "rita@corp.test", job.RecruiterEmail)
	assert.Equal(t, "Rita Recruiter", job.RecruiterName)
}

// A recruiter the directory cannot resolve degrades to the placeholder
// identity instead of failing the listing.
func TestJobListing_UnresolvableRecruiterFallsBack(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	// No matching directory record for this recruiter.

	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "Orphaned Role")

	candidate, _ := signUpWithRole(t, "candidate")
	resp, err := candidate.GET("/api/jobs")
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var jobs []enrichedJob
	dataField(t, resp, &jobs)

	job := findJob(jobs, jobID)
	require.NotNil(t, job)
	assert.Equal(t, "N/A", job.RecruiterEmail)
	assert.Equal(t, "N/A", job.RecruiterName)
}

func TestJobFilters(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "Filterable Gopher Role")

	candidate, _ := signUpWithRole(t, "candidate")

	resp, err := candidate.GET("/api/jobs?search=Filterable+Gopher&company_id=" + companyID)
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var jobs []enrichedJob
	dataField(t, resp, &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, jobID, jobs[0].ID)

	resp, err = candidate.GET("/api/jobs?search=no-such-title-anywhere")
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	jobs = nil
	dataField(t, resp, &jobs)
	assert.Empty(t, jobs)
}

func TestUpdateHiringStatus_OwnerOnly(t *testing.T) {
	owner, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, owner)
	jobID := createTestJob(t, owner, companyID, "Closable Role")

	other, _ := signUpWithRole(t, "recruiter")
	resp, err := other.PATCH("/api/jobs/"+jobID+"/status", map[string]bool{"is_open": false})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = owner.PATCH("/api/jobs/"+jobID+"/status", map[string]bool{"is_open": false})
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var job enrichedJob
	dataField(t, resp, &job)
	assert.False(t, job.IsOpen)
}

func TestCreateJob_CandidateIsForbidden(t *testing.T) {
	candidate, _ := signUpWithRole(t, "candidate")

	resp, err := candidate.POST("/api/jobs", map[string]interface{}{
		"title":       "Sneaky Posting",
		"description": "But candidates cannot post.",
		"location":    "Remote",
		"company_id":  "00000000-0000-0000-0000-000000000000",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCreateJob_UnknownCompany(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")

	resp, err := recruiter.POST("/api/jobs", map[string]interface{}{
		"title":       "Orphan Role",
		"description": "References a company that does not exist.",
		"location":    "Remote",
		"company_id":  "00000000-0000-0000-0000-000000000000",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetJob_MalformedIDIsNotFound(t *testing.T) {
	candidate, _ := signUpWithRole(t, "candidate")

	// An id that cannot be a UUID names no job; it must not surface as a
	// server error.
	resp, err := candidate.GET("/api/jobs/not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestMyJobs(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "My Posting")

	resp, err := recruiter.GET("/api/my-jobs")
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var jobs []enrichedJob
	dataField(t, resp, &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, jobID, jobs[0].ID)
}
