package scheduler

import (
	"context"
	"log"
	"time"

	"jobtrack-backend/internal/scanner/usecase"
)

// ScanScheduler fires the email scan on a fixed period.
type ScanScheduler struct {
	scanner  *usecase.Scanner
	interval time.Duration
	stopChan chan struct{}
}

// NewScanScheduler creates a new scheduler
func NewScanScheduler(scanner *usecase.Scanner, interval time.Duration) *ScanScheduler {
	return &ScanScheduler{
		scanner:  scanner,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ScanScheduler) Start() {
	log.Printf("[ScanScheduler] Starting email scan scheduler (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stopChan:
				log.Println("[ScanScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *ScanScheduler) Stop() {
	close(s.stopChan)
}

func (s *ScanScheduler) runOnce() {
	reports := s.scanner.ScanAll(context.Background())
	for _, report := range reports {
		if len(report.Items) == 0 {
			continue
		}
		var created, updated int
		for _, item := range report.Items {
			switch item.Outcome {
			case usecase.OutcomeCreated:
				created++
			case usecase.OutcomeUpdated:
				updated++
			}
		}
		log.Printf("[ScanScheduler] User %s: %d messages, %d created, %d updated (watermark advanced: %t)",
			report.UserID, len(report.Items), created, updated, report.Advanced)
	}
}
