package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	appdomain "jobtrack-backend/internal/application/domain"
	authdomain "jobtrack-backend/internal/auth/domain"
	jobdomain "jobtrack-backend/internal/job/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	jobs []jobdomain.Job
}

func (r *fakeJobRepo) Upsert(jobs []jobdomain.Job) error {
	r.jobs = append(r.jobs, jobs...)
	return nil
}

func (r *fakeJobRepo) FindAll() ([]jobdomain.Job, error) {
	return r.jobs, nil
}

func (r *fakeJobRepo) FindByID(id string) (*jobdomain.Job, error) {
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			return &r.jobs[i], nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) Count() (int64, error) {
	return int64(len(r.jobs)), nil
}

type fakeAppliedRepo struct {
	links map[string][]string
}

func newFakeAppliedRepo() *fakeAppliedRepo {
	return &fakeAppliedRepo{links: make(map[string][]string)}
}

func (r *fakeAppliedRepo) Create(link *jobdomain.AppliedJob) error {
	r.links[link.UserID] = append(r.links[link.UserID], link.JobID)
	return nil
}

func (r *fakeAppliedRepo) Exists(userID, jobID string) (bool, error) {
	for _, id := range r.links[userID] {
		if id == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppliedRepo) FindJobIDsByUser(userID string) ([]string, error) {
	return r.links[userID], nil
}

type fakeAppCreator struct {
	apps []*appdomain.Application
}

func (f *fakeAppCreator) Create(_ context.Context, user *authdomain.User, app *appdomain.Application) error {
	app.ID = "app-" + strconv.Itoa(len(f.apps)+1)
	app.UserID = user.ID
	f.apps = append(f.apps, app)
	return nil
}

type fakeFetcher struct {
	available bool
	jobs      []jobdomain.Job
	err       error
	calls     int
}

func (f *fakeFetcher) Available() bool { return f.available }

func (f *fakeFetcher) FetchJobs(context.Context, string, string) ([]jobdomain.Job, error) {
	f.calls++
	return f.jobs, f.err
}

func seedJobs() []jobdomain.Job {
	return []jobdomain.Job{
		{ID: "1", Title: "Senior Go Developer", Company: "Acme", Description: "golang kubernetes postgres"},
		{ID: "2", Title: "Frontend Engineer", Company: "Widget Co", Description: "react typescript css"},
		{ID: "3", Title: "Platform Engineer", Company: "Initech", Description: "go terraform kubernetes aws"},
	}
}

func applicant() *authdomain.User {
	return &authdomain.User{ID: "user-1", Username: "alice"}
}

func TestRecommend_ScoresAndSorts(t *testing.T) {
	repo := &fakeJobRepo{jobs: seedJobs()}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), nil, nil, nil)

	recs, err := uc.Recommend(context.Background(), "user-1", []string{"kubernetes", "terraform", "go"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2, "jobs with zero matching skills are excluded")

	assert.Equal(t, "Platform Engineer", recs[0].Title)
	assert.Equal(t, 3, recs[0].Score)
	assert.Equal(t, "Senior Go Developer", recs[1].Title)
	assert.Equal(t, 2, recs[1].Score)
}

func TestRecommend_LimitAndNormalization(t *testing.T) {
	repo := &fakeJobRepo{jobs: seedJobs()}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), nil, nil, nil)

	recs, err := uc.Recommend(context.Background(), "user-1", []string{"  KUBERNETES  ", ""}, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Score)
}

func TestRecommend_EmptySkillsReturnNothing(t *testing.T) {
	repo := &fakeJobRepo{jobs: seedJobs()}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), nil, nil, nil)

	recs, err := uc.Recommend(context.Background(), "user-1", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestApply_CreatesApplicationAndHidesJob(t *testing.T) {
	repo := &fakeJobRepo{jobs: seedJobs()}
	applied := newFakeAppliedRepo()
	creator := &fakeAppCreator{}
	uc := NewJobUsecase(repo, applied, nil, creator, nil)

	app, err := uc.Apply(context.Background(), applicant(), "1")
	require.NoError(t, err)
	require.Len(t, creator.apps, 1)

	assert.Equal(t, "Acme", app.Company)
	assert.Equal(t, "Senior Go Developer", app.Title)
	assert.Equal(t, appdomain.StatusApplied, app.Status)
	assert.Contains(t, app.Notes, "[Applied from job recommendation]")
	assert.NotNil(t, app.AppliedAt)

	jobs, err := uc.List("user-1")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, job := range jobs {
		assert.NotEqual(t, "1", job.ID)
	}
}

func TestApply_RejectsDuplicateAndUnknownJob(t *testing.T) {
	repo := &fakeJobRepo{jobs: seedJobs()}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), nil, &fakeAppCreator{}, nil)

	_, err := uc.Apply(context.Background(), applicant(), "1")
	require.NoError(t, err)

	_, err = uc.Apply(context.Background(), applicant(), "1")
	assert.EqualError(t, err, "already applied to this job")

	_, err = uc.Apply(context.Background(), applicant(), "missing")
	assert.EqualError(t, err, "job not found")
}

func TestApply_ScopedPerUser(t *testing.T) {
	repo := &fakeJobRepo{jobs: seedJobs()}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), nil, &fakeAppCreator{}, nil)

	_, err := uc.Apply(context.Background(), applicant(), "1")
	require.NoError(t, err)

	jobs, err := uc.List("user-2")
	require.NoError(t, err)
	assert.Len(t, jobs, 3, "one user's application must not hide jobs from another")
}

func TestRecommend_ExcludesAppliedJobs(t *testing.T) {
	repo := &fakeJobRepo{jobs: seedJobs()}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), nil, &fakeAppCreator{}, nil)

	_, err := uc.Apply(context.Background(), applicant(), "3")
	require.NoError(t, err)

	recs, err := uc.Recommend(context.Background(), "user-1", []string{"kubernetes", "terraform", "go"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Senior Go Developer", recs[0].Title)
}

func TestRefreshJobs_SkipsWithoutCredentials(t *testing.T) {
	repo := &fakeJobRepo{}
	fetcher := &fakeFetcher{available: false}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), fetcher, nil, nil)

	count, err := uc.RefreshJobs(context.Background(), "software engineer", "United States")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, fetcher.calls)
}

func TestRefreshJobs_UpsertsFetchedJobs(t *testing.T) {
	repo := &fakeJobRepo{}
	fetcher := &fakeFetcher{available: true, jobs: seedJobs()}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), fetcher, nil, nil)

	count, err := uc.RefreshJobs(context.Background(), "software engineer", "United States")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, repo.jobs, 3)
}

func TestRefreshJobs_PropagatesFetchError(t *testing.T) {
	repo := &fakeJobRepo{}
	fetcher := &fakeFetcher{available: true, err: errors.New("feed down")}
	uc := NewJobUsecase(repo, newFakeAppliedRepo(), fetcher, nil, nil)

	_, err := uc.RefreshJobs(context.Background(), "software engineer", "United States")
	assert.Error(t, err)
	assert.Empty(t, repo.jobs)
}
