//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/hirewire/jobboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyToJob(t *testing.T, candidate *testutil.Client, jobID string) *http.Response {
	t.Helper()

	resp, err := candidate.POST("/api/jobs/"+jobID+"/apply", map[string]interface{}{
		"name":       "Casey Candidate",
		"experience": 4,
		"skills":     "Go, SQL",
		"education":  "BSc",
	})
	require.NoError(t, err)
	return resp
}

func TestApply(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "Applicable Role")

	candidate, _ := signUpWithRole(t, "candidate")
	resp := applyToJob(t, candidate, jobID)
	requireStatus(t, resp, http.StatusCreated)

	var application struct {
		ID     string `json:"id"`
		JobID  string `json:"job_id"`
		Status string `json:"status"`
	}
	dataField(t, resp, &application)
	assert.Equal(t, jobID, application.JobID)
	assert.Equal(t, "applied", application.Status)

	resp, err := candidate.GET("/api/applications")
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var list []struct {
		ID string `json:"id"`
	}
	dataField(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, application.ID, list[0].ID)
}

func TestApply_TwiceIsConflict(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "Single Application Role")

	candidate, _ := signUpWithRole(t, "candidate")

	resp := applyToJob(t, candidate, jobID)
	requireStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	resp = applyToJob(t, candidate, jobID)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestApply_ClosedJobIsConflict(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "Closing Role")

	resp, err := recruiter.PATCH("/api/jobs/"+jobID+"/status", map[string]bool{"is_open": false})
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)
	_ = resp.Body.Close()

	candidate, _ := signUpWithRole(t, "candidate")
	resp = applyToJob(t, candidate, jobID)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestApplicationPipeline_OwnerOnly(t *testing.T) {
	owner, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, owner)
	jobID := createTestJob(t, owner, companyID, "Pipeline Role")

	candidate, _ := signUpWithRole(t, "candidate")
	resp := applyToJob(t, candidate, jobID)
	requireStatus(t, resp, http.StatusCreated)

	var application struct {
		ID string `json:"id"`
	}
	dataField(t, resp, &application)

	// A different recruiter can neither read nor move the pipeline.
	other, _ := signUpWithRole(t, "recruiter")
	resp, err := other.GET("/api/jobs/" + jobID + "/applications")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = other.PATCH("/api/applications/"+application.ID+"/status",
		map[string]string{"status": "hired"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// The owner moves it through the pipeline.
	resp, err = owner.PATCH("/api/applications/"+application.ID+"/status",
		map[string]string{"status": "interviewing"})
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var updated struct {
		Status string `json:"status"`
	}
	dataField(t, resp, &updated)
	assert.Equal(t, "interviewing", updated.Status)

	resp, err = owner.GET("/api/jobs/" + jobID + "/applications")
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusOK)

	var list []struct {
		Status string `json:"status"`
	}
	dataField(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "interviewing", list[0].Status)
}

func TestCandidateRoutes_GuardAndRoleEnforcement(t *testing.T) {
	recruiter, _ := signUpWithRole(t, "recruiter")
	companyID := createTestCompany(t, recruiter)
	jobID := createTestJob(t, recruiter, companyID, "Guarded Apply Role")

	// Admin sessions are captured to their destination, not admitted.
	admin, _ := signUpAdmin(t)
	admin.HTTPClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp := applyToJob(t, admin, jobID)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
	_ = resp.Body.Close()

	// Roleless sessions get the onboarding redirect, same as listings.
	roleless, _ := signUpWithRole(t, "")
	roleless.HTTPClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := roleless.GET("/api/applications")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/onboarding", resp.Header.Get("Location"))
	_ = resp.Body.Close()

	// Recruiters pass the guard but fail the role check.
	resp, err = recruiter.GET("/api/applications")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestApplicationStatus_UnknownValueRejected(t *testing.T) {
	owner, _ := signUpWithRole(t, "recruiter")

	resp, err := owner.PATCH("/api/applications/some-id/status",
		map[string]string{"status": "shortlisted"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}
