package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/notehive/notehive/internal/config"
	"github.com/notehive/notehive/internal/tasks"
	"github.com/robfig/cron/v3"
)

// CleanupScheduler enqueues the periodic maintenance tasks (import record
// retention, stale upload directory sweeps, audit file retention) on the
// configured cron schedule.
type CleanupScheduler struct {
	tasksClient *tasks.Client
	cfg         *config.Config

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCleanupScheduler creates a new scheduler instance.
func NewCleanupScheduler(tasksClient *tasks.Client, cfg *config.Config) *CleanupScheduler {
	return &CleanupScheduler{
		tasksClient: tasksClient,
		cfg:         cfg,
		cron:        cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.cfg.Cleanup.Schedule == "" {
		log.Printf("Cleanup scheduler: no schedule configured, disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Cleanup.Schedule, func() {
		s.enqueueCleanup()
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule '%s': %w", s.cfg.Cleanup.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Cleanup scheduler: started with schedule '%s'", s.cfg.Cleanup.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Cleanup scheduler: stopped")
}

// RunNow enqueues the cleanup tasks immediately.
func (s *CleanupScheduler) RunNow() error {
	s.enqueueCleanup()
	return nil
}

// IsRunning returns whether the scheduler is active.
func (s *CleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will be enqueued.
func (s *CleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CleanupScheduler) enqueueCleanup() {
	if s.tasksClient == nil {
		log.Printf("Cleanup scheduler: task client not configured, skipping")
		return
	}

	toEnqueue := []backlite.Task{
		tasks.CleanupImportRecordsTask{RetentionDays: s.cfg.Cleanup.ImportRetentionDays},
		tasks.CleanupUploadDirsTask{
			UploadDir:     s.cfg.Storage.UploadDir,
			MaxAgeMinutes: int(s.cfg.Cleanup.UploadMaxAge / time.Minute),
		},
		tasks.CleanupAuditFilesTask{RetentionDays: s.cfg.Audit.RetentionDays},
	}

	for _, task := range toEnqueue {
		if _, err := s.tasksClient.Add(task).Save(); err != nil {
			log.Printf("Cleanup scheduler: failed to enqueue %T: %v", task, err)
		}
	}
}
