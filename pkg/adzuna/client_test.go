package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	assert.True(t, NewClient("id", "key", "us").Available())
	assert.False(t, NewClient("", "key", "us").Available())
	assert.False(t, NewClient("id", "", "us").Available())
}

func TestFetchJobs_ParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "software engineer", r.URL.Query().Get("what"))
		_, _ = w.Write([]byte(`{
			"results": [
				{
					"title": "Backend Engineer",
					"description": "Go services",
					"redirect_url": "https://example.com/1",
					"salary_min": 120000,
					"salary_max": 150000,
					"company": {"display_name": "Acme"},
					"location": {"display_name": "Remote"}
				},
				{
					"title": "No URL Job",
					"description": "dropped"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("id", "key", "us")
	client.baseURL = server.URL
	client.client = server.Client()

	jobs, err := client.FetchJobs(context.Background(), "software engineer", "United States")
	require.NoError(t, err)
	require.Len(t, jobs, 1, "results without a redirect URL are dropped")

	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "120000 - 150000", jobs[0].Salary)
	assert.Equal(t, "Remote", jobs[0].Location)
	assert.Equal(t, "https://example.com/1", jobs[0].ExternalURL)
}

func TestFetchJobs_ErrorStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("id", "key", "us")
	client.baseURL = server.URL
	client.client = server.Client()

	_, err := client.FetchJobs(context.Background(), "q", "l")
	assert.Error(t, err)
}

func TestFetchJobs_RequiresCredentials(t *testing.T) {
	client := NewClient("", "", "us")
	_, err := client.FetchJobs(context.Background(), "q", "l")
	assert.Error(t, err)
}

func TestBuildSalary(t *testing.T) {
	min, max := 100.0, 200.0
	assert.Equal(t, "100 - 200", buildSalary(&min, &max))
	assert.Equal(t, "From 100", buildSalary(&min, nil))
	assert.Equal(t, "Up to 200", buildSalary(nil, &max))
	assert.Equal(t, "", buildSalary(nil, nil))
}
