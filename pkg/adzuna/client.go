// Package adzuna fetches job postings from the Adzuna Job Search API.
// Requires ADZUNA_APP_ID and ADZUNA_APP_KEY; without them the client reports
// itself unavailable and the job feed simply stays empty.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jobdomain "jobtrack-backend/internal/job/domain"
)

const (
	baseURL        = "https://api.adzuna.com/v1/api/jobs"
	resultsPerPage = 25
)

type Client struct {
	appID   string
	appKey  string
	country string
	baseURL string
	client  *http.Client
}

func NewClient(appID, appKey, country string) *Client {
	if country == "" {
		country = "us"
	}
	return &Client{
		appID:   appID,
		appKey:  appKey,
		country: country,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Available reports whether API credentials are configured.
func (c *Client) Available() bool {
	return c.appID != "" && c.appKey != ""
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

// FetchJobs queries the first results page for the given search terms.
func (c *Client) FetchJobs(ctx context.Context, query, location string) ([]jobdomain.Job, error) {
	if !c.Available() {
		return nil, fmt.Errorf("adzuna credentials not configured")
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", fmt.Sprintf("%d", resultsPerPage))
	params.Set("what", query)
	params.Set("where", location)

	endpoint := fmt.Sprintf("%s/%s/search/1?%s", c.baseURL, c.country, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned status %d", resp.StatusCode)
	}

	var parsed adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("adzuna response decode failed: %w", err)
	}

	jobs := make([]jobdomain.Job, 0, len(parsed.Results))
	for _, aj := range parsed.Results {
		if aj.RedirectURL == "" {
			continue
		}
		jobs = append(jobs, jobdomain.Job{
			Title:       aj.Title,
			Company:     aj.Company.DisplayName,
			Salary:      buildSalary(aj.SalaryMin, aj.SalaryMax),
			Description: aj.Description,
			Location:    aj.Location.DisplayName,
			ExternalURL: aj.RedirectURL,
		})
	}
	return jobs, nil
}

func buildSalary(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%.0f - %.0f", *min, *max)
	case min != nil:
		return fmt.Sprintf("From %.0f", *min)
	case max != nil:
		return fmt.Sprintf("Up to %.0f", *max)
	}
	return ""
}
