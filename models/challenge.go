package models

import (
	"time"
)

// Challenge status values. The sweeper only ever writes open/completed;
// ongoing is set manually by admins for now.
const (
	StatusOpen      = "open"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Challenge represents a time-boxed work opportunity
type Challenge struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"not null"`
	Slug           string    `json:"slug" gorm:"index"`
	Brief          string    `json:"brief" gorm:"type:text"`
	Description    []string  `json:"description" gorm:"type:text;serializer:json"`
	Requirements   []string  `json:"requirements" gorm:"type:text;serializer:json"`
	Deliverables   []string  `json:"deliverables" gorm:"type:text;serializer:json"`
	SeniorityLevel []string  `json:"seniority_level" gorm:"type:text;serializer:json"`
	Skills         []string  `json:"skills" gorm:"type:text;serializer:json"`
	StartTime      time.Time `json:"start_time" gorm:"not null"`
	Deadline       time.Time `json:"deadline" gorm:"not null;index"`
	Duration       string    `json:"duration"`
	Prize          string    `json:"prize"`
	ContactEmail   string    `json:"contact_email"`
	Status         string    `json:"status" gorm:"default:'open';index"`
	CoverURL       string    `json:"cover_url,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Participants []ChallengeParticipant `json:"participants,omitempty" gorm:"foreignKey:ChallengeID"`

	// Calculated fields (not stored in DB)
	DeadlineDisplay  string `json:"deadline_display,omitempty" gorm:"-"`
	ParticipantCount int64  `json:"participant_count,omitempty" gorm:"-"`
}
