// services/scheduler.go
package services

import (
	"log"
	"sync"
	"time"

	"challenge-hub-system/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// statusSweepCron fires once per day at midnight.
const statusSweepCron = "0 0 * * *"

// StatusSweeper reconciles challenge status with the clock on a fixed
// schedule. It is an owned object with an explicit lifecycle so tests and
// shutdown can tear it down without leaking a timer.
type StatusSweeper struct {
	db *gorm.DB

	mu    sync.Mutex
	sched gocron.Scheduler
}

func NewStatusSweeper(db *gorm.DB) *StatusSweeper {
	return &StatusSweeper{db: db}
}

// Start registers the daily sweep. Calling Start on a running sweeper is a
// no-op, so restarts never stack a second trigger.
func (s *StatusSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched != nil {
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.CronJob(statusSweepCron, false),
		gocron.NewTask(func() {
			// A failed run is logged and dropped; the next scheduled run
			// is unaffected.
			if err := s.Sweep(time.Now()); err != nil {
				log.Printf("[Sweeper] sweep failed: %v", err)
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	s.sched = sched
	return nil
}

// Stop cancels the periodic trigger. In-flight CRUD traffic is untouched.
func (s *StatusSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return
	}
	if err := s.sched.Shutdown(); err != nil {
		log.Printf("[Sweeper] shutdown error: %v", err)
	}
	s.sched = nil
}

// Sweep applies both status transitions as bulk predicate updates, so no
// per-row read-modify-write is involved: past-deadline challenges become
// completed, future-deadline challenges revert to open. Nothing here ever
// assigns ongoing: start_time is not consulted, so challenges stay open
// until their deadline passes. Kept that way until product decides what
// the ongoing transition should be.
func (s *StatusSweeper) Sweep(now time.Time) error {
	res := s.db.Model(&models.Challenge{}).
		Where("deadline < ? AND status <> ?", now, models.StatusCompleted).
		Update("status", models.StatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	completed := res.RowsAffected

	res = s.db.Model(&models.Challenge{}).
		Where("deadline >= ? AND status <> ?", now, models.StatusOpen).
		Update("status", models.StatusOpen)
	if res.Error != nil {
		return res.Error
	}

	if completed > 0 || res.RowsAffected > 0 {
		log.Printf("[Sweeper] reconciled statuses: %d completed, %d reopened", completed, res.RowsAffected)
	}
	return nil
}
