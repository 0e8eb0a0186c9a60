// Package usecase drives the imported job feed: daily refresh from Adzuna,
// skill-based recommendations with a Redis-backed result cache, and one-click
// apply that turns a feed job into an application record.
package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	appdomain "jobtrack-backend/internal/application/domain"
	authdomain "jobtrack-backend/internal/auth/domain"
	jobdomain "jobtrack-backend/internal/job/domain"
	"jobtrack-backend/internal/job/repository"

	"github.com/redis/go-redis/v9"
)

const (
	recommendCacheTTL = 10 * time.Minute
	cacheVersionKey   = "jobrec:version"
)

// JobFetcher pulls job postings from an external feed.
type JobFetcher interface {
	Available() bool
	FetchJobs(ctx context.Context, query, location string) ([]jobdomain.Job, error)
}

// ApplicationCreator files a new application record for a user. Satisfied by
// the application usecase, so applying to a feed job goes through the same
// validation and reminder hooks as manual creation.
type ApplicationCreator interface {
	Create(ctx context.Context, user *authdomain.User, app *appdomain.Application) error
}

// JobUsecase defines job feed operations.
type JobUsecase interface {
	RefreshJobs(ctx context.Context, query, location string) (int, error)
	// List returns imported jobs the user has not yet applied to.
	List(userID string) ([]jobdomain.Job, error)
	Count() (int64, error)
	// Apply creates an APPLIED application from a feed job and records the
	// link so the job stops appearing in listings and recommendations.
	Apply(ctx context.Context, user *authdomain.User, jobID string) (*appdomain.Application, error)
	// Recommend scores jobs against a skill list: one point per skill found
	// in the job's title, company, or description. Applied jobs are excluded.
	Recommend(ctx context.Context, userID string, skills []string, limit int) ([]jobdomain.Recommendation, error)
}

type jobUsecase struct {
	jobs         repository.JobRepository
	applied      repository.AppliedJobRepository
	fetcher      JobFetcher
	applications ApplicationCreator
	cache        *redis.Client
}

func NewJobUsecase(
	jobs repository.JobRepository,
	applied repository.AppliedJobRepository,
	fetcher JobFetcher,
	applications ApplicationCreator,
	cache *redis.Client,
) JobUsecase {
	return &jobUsecase{
		jobs:         jobs,
		applied:      applied,
		fetcher:      fetcher,
		applications: applications,
		cache:        cache,
	}
}

func (u *jobUsecase) RefreshJobs(ctx context.Context, query, location string) (int, error) {
	if u.fetcher == nil || !u.fetcher.Available() {
		log.Println("[Jobs] Feed credentials not configured, skipping refresh")
		return 0, nil
	}

	fetched, err := u.fetcher.FetchJobs(ctx, query, location)
	if err != nil {
		return 0, err
	}
	if err := u.jobs.Upsert(fetched); err != nil {
		return 0, err
	}

	u.bumpCacheVersion(ctx)
	return len(fetched), nil
}

func (u *jobUsecase) List(userID string) ([]jobdomain.Job, error) {
	jobs, err := u.jobs.FindAll()
	if err != nil {
		return nil, err
	}

	applied, err := u.appliedSet(userID)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return jobs, nil
	}

	out := make([]jobdomain.Job, 0, len(jobs))
	for _, job := range jobs {
		if !applied[job.ID] {
			out = append(out, job)
		}
	}
	return out, nil
}

func (u *jobUsecase) Count() (int64, error) {
	return u.jobs.Count()
}

func (u *jobUsecase) Apply(ctx context.Context, user *authdomain.User, jobID string) (*appdomain.Application, error) {
	job, err := u.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("job not found")
	}

	if u.applied != nil {
		exists, err := u.applied.Exists(user.ID, jobID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.New("already applied to this job")
		}
	}

	// No foreign key from applications to feed jobs, so the display fields
	// are copied outright.
	now := time.Now()
	app := &appdomain.Application{
		Company:   job.Company,
		Title:     job.Title,
		Status:    appdomain.StatusApplied,
		Location:  job.Location,
		Salary:    job.Salary,
		JobLink:   job.ExternalURL,
		Notes:     "[Applied from job recommendation]\n" + job.Description,
		AppliedAt: &now,
	}
	if err := u.applications.Create(ctx, user, app); err != nil {
		return nil, err
	}

	if u.applied != nil {
		if err := u.applied.Create(&jobdomain.AppliedJob{UserID: user.ID, JobID: job.ID}); err != nil {
			return nil, err
		}
	}

	log.Printf("[Jobs] User %s applied to %s - %s", user.Username, job.Company, job.Title)
	return app, nil
}

func (u *jobUsecase) Recommend(ctx context.Context, userID string, skills []string, limit int) ([]jobdomain.Recommendation, error) {
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			normalized = append(normalized, skill)
		}
	}
	if len(normalized) == 0 {
		return nil, nil
	}

	cacheKey := u.recommendCacheKey(ctx, normalized)
	scored := u.cacheGet(ctx, cacheKey)
	if scored == nil {
		jobs, err := u.jobs.FindAll()
		if err != nil {
			return nil, err
		}

		for _, job := range jobs {
			text := strings.ToLower(job.Title + " " + job.Company + " " + job.Description)
			score := 0
			for _, skill := range normalized {
				if strings.Contains(text, skill) {
					score++
				}
			}
			if score > 0 {
				scored = append(scored, jobdomain.Recommendation{Job: job, Score: score})
			}
		}

		sort.Slice(scored, func(i, j int) bool {
			if scored[i].Score != scored[j].Score {
				return scored[i].Score > scored[j].Score
			}
			return scored[i].Title < scored[j].Title
		})

		u.cacheSet(ctx, cacheKey, scored)
	}

	// Applied-job filtering happens after the cache so the cached score list
	// stays shared across users.
	applied, err := u.appliedSet(userID)
	if err != nil {
		return nil, err
	}

	out := make([]jobdomain.Recommendation, 0, len(scored))
	for _, rec := range scored {
		if !applied[rec.ID] {
			out = append(out, rec)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (u *jobUsecase) appliedSet(userID string) (map[string]bool, error) {
	if u.applied == nil || userID == "" {
		return nil, nil
	}
	ids, err := u.applied.FindJobIDsByUser(userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// recommendCacheKey includes a version counter bumped on every feed refresh,
// so stale entries die without needing a keyspace scan.
func (u *jobUsecase) recommendCacheKey(ctx context.Context, skills []string) string {
	version := "0"
	if u.cache != nil {
		if v, err := u.cache.Get(ctx, cacheVersionKey).Result(); err == nil {
			version = v
		}
	}

	sorted := append([]string(nil), skills...)
	sort.Strings(sorted)
	sum := sha1.Sum([]byte(strings.Join(sorted, ",")))
	return "jobrec:" + version + ":" + hex.EncodeToString(sum[:])
}

func (u *jobUsecase) cacheGet(ctx context.Context, key string) []jobdomain.Recommendation {
	if u.cache == nil {
		return nil
	}
	raw, err := u.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var out []jobdomain.Recommendation
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func (u *jobUsecase) cacheSet(ctx context.Context, key string, value []jobdomain.Recommendation) {
	if u.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := u.cache.Set(ctx, key, raw, recommendCacheTTL).Err(); err != nil {
		log.Printf("[Jobs] Failed to cache recommendations: %v", err)
	}
}

func (u *jobUsecase) bumpCacheVersion(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Incr(ctx, cacheVersionKey).Err(); err != nil {
		log.Printf("[Jobs] Failed to bump recommendation cache version: %v", err)
	}
}
