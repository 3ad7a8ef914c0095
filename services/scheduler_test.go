package services

import (
	"testing"
	"time"

	"challenge-hub-system/models"
)

func TestSweepClosesPastDeadlines(t *testing.T) {
	svc := NewChallengeService(setupTestDB(t))
	now := time.Now()

	expired := seedChallenge(t, svc, models.StatusOpen, now.Add(-48*time.Hour))
	expiredOngoing := seedChallenge(t, svc, models.StatusOngoing, now.Add(-time.Hour))
	active := seedChallenge(t, svc, models.StatusOpen, now.Add(72*time.Hour))

	sweeper := NewStatusSweeper(svc.DB)
	if err := sweeper.Sweep(now); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	assertStatus(t, svc, expired.ID, models.StatusCompleted)
	assertStatus(t, svc, expiredOngoing.ID, models.StatusCompleted)
	assertStatus(t, svc, active.ID, models.StatusOpen)
}

func TestSweepReopensMisclosedChallenges(t *testing.T) {
	svc := NewChallengeService(setupTestDB(t))
	now := time.Now()

	// Closed by hand, or by an earlier run against a later-edited deadline.
	misclosed := seedChallenge(t, svc, models.StatusCompleted, now.Add(24*time.Hour))

	sweeper := NewStatusSweeper(svc.DB)
	if err := sweeper.Sweep(now); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	assertStatus(t, svc, misclosed.ID, models.StatusOpen)
}

func TestSweepIsIdempotent(t *testing.T) {
	svc := NewChallengeService(setupTestDB(t))
	now := time.Now()

	expired := seedChallenge(t, svc, models.StatusOpen, now.Add(-48*time.Hour))
	active := seedChallenge(t, svc, models.StatusCompleted, now.Add(48*time.Hour))

	sweeper := NewStatusSweeper(svc.DB)
	for i := 0; i < 2; i++ {
		if err := sweeper.Sweep(now); err != nil {
			t.Fatalf("sweep #%d: %v", i+1, err)
		}
	}

	assertStatus(t, svc, expired.ID, models.StatusCompleted)
	assertStatus(t, svc, active.ID, models.StatusOpen)
}

func TestSweeperStartStop(t *testing.T) {
	sweeper := NewStatusSweeper(setupTestDB(t))

	if err := sweeper.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Second Start must not stack another trigger.
	if err := sweeper.Start(); err != nil {
		t.Fatalf("second start: %v", err)
	}
	sweeper.Stop()
	// Stop on a stopped sweeper is a no-op.
	sweeper.Stop()

	if err := sweeper.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	sweeper.Stop()
}

func assertStatus(t *testing.T, svc *ChallengeService, id, want string) {
	t.Helper()
	var c models.Challenge
	if err := svc.DB.First(&c, "id = ?", id).Error; err != nil {
		t.Fatalf("load %s: %v", id, err)
	}
	if c.Status != want {
		t.Errorf("challenge %s status = %q, want %q", id, c.Status, want)
	}
}
