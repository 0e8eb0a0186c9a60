package scheduler

import (
	"context"
	"log"

	"jobtrack-backend/internal/job/usecase"

	"github.com/robfig/cron/v3"
)

const (
	defaultQuery    = "software engineer"
	defaultLocation = "United States"
)

// JobFetchScheduler refreshes the imported job feed on a cron schedule, with
// an immediate fetch on startup when the table is empty.
type JobFetchScheduler struct {
	jobUsecase usecase.JobUsecase
	spec       string
	cron       *cron.Cron
}

// NewJobFetchScheduler creates a new scheduler
func NewJobFetchScheduler(jobUsecase usecase.JobUsecase, spec string) *JobFetchScheduler {
	return &JobFetchScheduler{
		jobUsecase: jobUsecase,
		spec:       spec,
		cron:       cron.New(),
	}
}

// Start registers the cron entry and runs the initial fetch if needed.
func (s *JobFetchScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.fetch); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[JobScheduler] Started daily job fetch (cron: %s)", s.spec)

	go func() {
		count, err := s.jobUsecase.Count()
		if err != nil {
			log.Printf("[JobScheduler] Failed to count jobs: %v", err)
			return
		}
		if count == 0 {
			log.Println("[JobScheduler] Job table empty on startup, performing initial fetch")
			s.fetch()
		}
	}()
	return nil
}

// Stop halts the cron loop.
func (s *JobFetchScheduler) Stop() {
	s.cron.Stop()
}

func (s *JobFetchScheduler) fetch() {
	count, err := s.jobUsecase.RefreshJobs(context.Background(), defaultQuery, defaultLocation)
	if err != nil {
		log.Printf("[JobScheduler] Job fetch failed: %v", err)
		return
	}
	log.Printf("[JobScheduler] Job fetch completed, %d jobs upserted", count)
}
