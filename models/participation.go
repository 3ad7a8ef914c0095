package models

import (
	"time"
)

// ChallengeParticipant records one user's membership in one challenge.
// The composite unique index is what makes Join safe under concurrent
// requests: a second insert for the same (challenge, user) pair hits the
// constraint instead of creating a duplicate.
type ChallengeParticipant struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ChallengeID string    `json:"challenge_id" gorm:"not null;uniqueIndex:idx_challenge_user"`
	UserID      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_challenge_user"`
	JoinedAt    time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
