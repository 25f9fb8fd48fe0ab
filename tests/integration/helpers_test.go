//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/hirewire/jobboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

// signUpWithRole registers a fresh account, signs it in and assigns the
// given role. Returns the client and the account's email.
func signUpWithRole(t *testing.T, role string) (*testutil.Client, string) {
	t.Helper()

	client := newTestClient()
	email := testutil.RandomEmail(role)

	client.Register(t, email, "password123", "Test "+role)
	client.LoginAs(t, email, "password123")
	if role != "" {
		client.AssignRole(t, role)
	}
	return client, email
}

// signUpAdmin registers a fresh account and promotes it to admin in storage.
func signUpAdmin(t *testing.T) (*testutil.Client, string) {
	t.Helper()

	client := newTestClient()
	email := testutil.RandomEmail("admin")

	client.Register(t, email, "password123", "Test admin")
	promoteToAdmin(t, email)
	client.LoginAs(t, email, "password123")
	return client, email
}

// createTestCompany registers a company and returns its id.
func createTestCompany(t *testing.T, recruiter *testutil.Client) string {
	t.Helper()

	resp, err := recruiter.POST("/api/companies", map[string]string{
		"name": "Company " + testutil.RandomEmail("co"),
	})
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusCreated)

	var company struct {
		ID string `json:"id"`
	}
	dataField(t, resp, &company)
	require.NotEmpty(t, company.ID)
	return company.ID
}

// createTestJob posts a job for the given company and returns the job id.
func createTestJob(t *testing.T, recruiter *testutil.Client, companyID, title string) string {
	t.Helper()

	resp, err := recruiter.POST("/api/jobs", map[string]interface{}{
		"title":        title,
		"description":  fmt.Sprintf("Description for %s", title),
		"location":     "Remote",
		"requirements": "Go",
		"company_id":   companyID,
	})
	require.NoError(t, err)
	requireStatus(t, resp, http.StatusCreated)

	var job struct {
		ID string `json:"id"`
	}
	dataField(t, resp, &job)
	require.NotEmpty(t, job.ID)
	return job.ID
}
