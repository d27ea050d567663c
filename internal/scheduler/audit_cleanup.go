package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lunvik/libris/internal/audit"
)

// AuditCleanupScheduler periodically removes audit files older than the
// configured retention.
type AuditCleanupScheduler struct {
	auditor       *audit.Auditor
	retentionDays int
	schedule      string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

func NewAuditCleanupScheduler(auditor *audit.Auditor, retentionDays int, schedule string) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		auditor:       auditor,
		retentionDays: retentionDays,
		schedule:      schedule,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. Retention <= 0 disables cleanup entirely.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.retentionDays <= 0 {
		log.Printf("Audit cleanup scheduler: disabled (no retention configured)")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit cleanup scheduler: started (schedule %q, retention %d days)", s.schedule, s.retentionDays)

	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

func (s *AuditCleanupScheduler) runCleanup() {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	removed, err := s.auditor.RemoveOlderThan(cutoff)
	if err != nil {
		log.Printf("Audit cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Audit cleanup removed %d event(s) older than %s", removed, cutoff.Format(time.RFC3339))
	}
}
