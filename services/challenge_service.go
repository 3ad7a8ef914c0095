package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"challenge-hub-system/models"
	"challenge-hub-system/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// deadlineDisplayFormat is the read-time rendering of deadlines (MM/DD/YYYY).
const deadlineDisplayFormat = "01/02/2006"

var seniorityCaser = cases.Title(language.English)

type ChallengeService struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{DB: db, validate: validator.New()}
}

type CreateChallengeInput struct {
	Title          string    `json:"title" validate:"required"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	Deadline       time.Time `json:"deadline"`
	Prize          string    `json:"prize" validate:"required"`
	ContactEmail   string    `json:"contact_email" validate:"required,email"`
	Brief          string    `json:"brief" validate:"required"`
	Description    []string  `json:"description" validate:"required,min=1,dive,required"`
	Requirements   []string  `json:"requirements" validate:"required,min=1,dive,required"`
	Deliverables   []string  `json:"deliverables" validate:"required,min=1,dive,required"`
	SeniorityLevel []string  `json:"seniority_level" validate:"required,min=1,dive,required"`
	Skills         []string  `json:"skills" validate:"required,min=1,dive,required"`
}

// formatDuration renders the whole-day span between start and deadline,
// rounding partial days up.
func formatDuration(start, deadline time.Time) string {
	days := int(math.Ceil(deadline.Sub(start).Hours() / 24))
	return fmt.Sprintf("%d days", days)
}

// normalizeTags trims and title-cases seniority tags so "junior" and
// "JUNIOR" land in the store as the same value.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, seniorityCaser.String(strings.ToLower(t)))
	}
	return out
}

// CreateChallenge validates the input, derives the duration once, and
// persists the challenge as open with no participants. The deadline checks
// run before the field validators so their messages win.
func (s *ChallengeService) CreateChallenge(input CreateChallengeInput) (*models.Challenge, error) {
	if input.Deadline.IsZero() {
		return nil, utils.NewValidationError("deadline is required")
	}
	if !input.Deadline.After(input.StartTime) {
		return nil, utils.NewValidationError("deadline must be later than start time")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, utils.NewValidationError(validationMessage(err))
	}

	challenge := &models.Challenge{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Slug:           slug.Make(input.Title),
		Brief:          input.Brief,
		Description:    input.Description,
		Requirements:   input.Requirements,
		Deliverables:   input.Deliverables,
		SeniorityLevel: normalizeTags(input.SeniorityLevel),
		Skills:         input.Skills,
		StartTime:      input.StartTime,
		Deadline:       input.Deadline,
		Duration:       formatDuration(input.StartTime, input.Deadline),
		Prize:          input.Prize,
		ContactEmail:   input.ContactEmail,
		Status:         models.StatusOpen,
	}

	if err := s.DB.Create(challenge).Error; err != nil {
		log.Printf("[Challenge] create failed for %q: %v", input.Title, err)
		return nil, utils.NewStoreError("failed to create challenge", err)
	}
	return challenge, nil
}

// GetChallengeByID fetches one challenge with its participants and fills
// the display-only deadline rendering.
func (s *ChallengeService) GetChallengeByID(id string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.DB.
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		First(&challenge, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("Challenge not found")
		}
		log.Printf("[Challenge] fetch %s failed: %v", id, err)
		return nil, utils.NewStoreError("failed to fetch challenge", err)
	}
	challenge.DeadlineDisplay = challenge.Deadline.Format(deadlineDisplayFormat)
	challenge.ParticipantCount = int64(len(challenge.Participants))
	return &challenge, nil
}

// GetAllChallenges runs the generic list query and reports the total count
// of matches before pagination so callers can compute page counts.
func (s *ChallengeService) GetAllChallenges(params map[string]string) ([]models.Challenge, int64, error) {
	q := NewChallengeQuery(params)

	counted, err := q.Filter(s.DB.Model(&models.Challenge{}))
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := counted.Count(&total).Error; err != nil {
		log.Printf("[Challenge] count failed: %v", err)
		return nil, 0, utils.NewStoreError("failed to count challenges", err)
	}

	db, err := q.Filter(s.DB.Model(&models.Challenge{}))
	if err != nil {
		return nil, 0, err
	}
	if db, err = q.Sort(db); err != nil {
		return nil, 0, err
	}
	if db, err = q.Project(db); err != nil {
		return nil, 0, err
	}
	var challenges []models.Challenge
	if err := q.Paginate(db).Find(&challenges).Error; err != nil {
		log.Printf("[Challenge] list failed: %v", err)
		return nil, 0, utils.NewStoreError("failed to fetch challenges", err)
	}
	return challenges, total, nil
}

type UpdateChallengeInput struct {
	Title          *string    `json:"title" validate:"omitempty,min=1"`
	StartTime      *time.Time `json:"start_time"`
	Deadline       *time.Time `json:"deadline"`
	Duration       *string    `json:"duration" validate:"omitempty,min=1"`
	Prize          *string    `json:"prize" validate:"omitempty,min=1"`
	ContactEmail   *string    `json:"contact_email" validate:"omitempty,email"`
	Brief          *string    `json:"brief" validate:"omitempty,min=1"`
	Description    *[]string  `json:"description" validate:"omitempty,min=1,dive,required"`
	Requirements   *[]string  `json:"requirements" validate:"omitempty,min=1,dive,required"`
	Deliverables   *[]string  `json:"deliverables" validate:"omitempty,min=1,dive,required"`
	SeniorityLevel *[]string  `json:"seniority_level" validate:"omitempty,min=1,dive,required"`
	Skills         *[]string  `json:"skills" validate:"omitempty,min=1,dive,required"`
}

// UpdateChallenge merges the supplied fields onto the stored entity and
// re-runs field validation. Duration is NOT recomputed when the schedule
// changes; callers adjusting start_time or deadline must send a matching
// duration themselves.
func (s *ChallengeService) UpdateChallenge(id string, input UpdateChallengeInput) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := s.DB.First(&challenge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("Challenge not found")
		}
		log.Printf("[Challenge] fetch %s failed: %v", id, err)
		return nil, utils.NewStoreError("failed to fetch challenge", err)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, utils.NewValidationError(validationMessage(err))
	}

	if input.Title != nil {
		challenge.Title = *input.Title
		challenge.Slug = slug.Make(*input.Title)
	}
	if input.StartTime != nil {
		challenge.StartTime = *input.StartTime
	}
	if input.Deadline != nil {
		challenge.Deadline = *input.Deadline
	}
	if input.Duration != nil {
		challenge.Duration = *input.Duration
	}
	if input.Prize != nil {
		challenge.Prize = *input.Prize
	}
	if input.ContactEmail != nil {
		challenge.ContactEmail = *input.ContactEmail
	}
	if input.Brief != nil {
		challenge.Brief = *input.Brief
	}
	if input.Description != nil {
		challenge.Description = *input.Description
	}
	if input.Requirements != nil {
		challenge.Requirements = *input.Requirements
	}
	if input.Deliverables != nil {
		challenge.Deliverables = *input.Deliverables
	}
	if input.SeniorityLevel != nil {
		challenge.SeniorityLevel = normalizeTags(*input.SeniorityLevel)
	}
	if input.Skills != nil {
		challenge.Skills = *input.Skills
	}

	if err := s.DB.Save(&challenge).Error; err != nil {
		log.Printf("[Challenge] update %s failed: %v", id, err)
		return nil, utils.NewStoreError("failed to update challenge", err)
	}
	return &challenge, nil
}

// UpdateCoverURL points the challenge at an already-uploaded cover image.
func (s *ChallengeService) UpdateCoverURL(id, url string) (*models.Challenge, error) {
	result := s.DB.Model(&models.Challenge{}).
		Where("id = ?", id).
		Update("cover_url", url)
	if result.Error != nil {
		log.Printf("[Challenge] cover update %s failed: %v", id, result.Error)
		return nil, utils.NewStoreError("failed to update cover", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, utils.NewNotFound("Challenge not found")
	}
	return s.GetChallengeByID(id)
}

// DeleteChallenge hard-deletes the challenge and its membership rows.
func (s *ChallengeService) DeleteChallenge(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", id).Delete(&models.ChallengeParticipant{}).Error; err != nil {
			log.Printf("[Challenge] participant cleanup for %s failed: %v", id, err)
			return utils.NewStoreError("failed to delete challenge", err)
		}
		result := tx.Delete(&models.Challenge{}, "id = ?", id)
		if result.Error != nil {
			log.Printf("[Challenge] delete %s failed: %v", id, result.Error)
			return utils.NewStoreError("failed to delete challenge", result.Error)
		}
		if result.RowsAffected == 0 {
			return utils.NewNotFound("Challenge not found")
		}
		return nil
	})
}

// JoinChallenge adds userID to the challenge's participant set at most
// once. The friendly duplicate check runs first; the unique index on
// (challenge_id, user_id) closes the window between check and insert, so a
// concurrent duplicate surfaces as the same Conflict.
func (s *ChallengeService) JoinChallenge(challengeID, userID string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := s.DB.First(&challenge, "id = ?", challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("Challenge not found")
		}
		log.Printf("[Challenge] fetch %s failed: %v", challengeID, err)
		return nil, utils.NewStoreError("failed to fetch challenge", err)
	}

	var existing models.ChallengeParticipant
	err := s.DB.Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		First(&existing).Error
	if err == nil {
		return nil, utils.NewConflict("user already joined")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[Challenge] membership check %s/%s failed: %v", challengeID, userID, err)
		return nil, utils.NewStoreError("failed to check membership", err)
	}

	participant := models.ChallengeParticipant{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		UserID:      userID,
	}
	if err := s.DB.Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflict("user already joined")
		}
		log.Printf("[Challenge] join %s/%s failed: %v", challengeID, userID, err)
		return nil, utils.NewStoreError("failed to join challenge", err)
	}

	return s.GetChallengeByID(challengeID)
}

// ChallengeStats is the per-status breakdown of all challenges.
type ChallengeStats struct {
	TotalOpen      int64 `json:"totalOpen"`
	TotalOngoing   int64 `json:"totalOngoing"`
	TotalCompleted int64 `json:"totalCompleted"`
}

// GetChallengeStats groups all challenges by status; statuses with no
// members report zero.
func (s *ChallengeService) GetChallengeStats() (*ChallengeStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.DB.Model(&models.Challenge{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("[Challenge] stats failed: %v", err)
		return nil, utils.NewStoreError("failed to aggregate stats", err)
	}

	stats := &ChallengeStats{}
	for _, row := range rows {
		switch row.Status {
		case models.StatusOpen:
			stats.TotalOpen = row.Count
		case models.StatusOngoing:
			stats.TotalOngoing = row.Count
		case models.StatusCompleted:
			stats.TotalCompleted = row.Count
		}
	}
	return stats, nil
}

// GetTotalParticipants sums participant set sizes across all challenges.
// Membership lives in its own table, so the sum is a single row count; a
// challenge with no rows contributes zero.
func (s *ChallengeService) GetTotalParticipants() (int64, error) {
	var total int64
	if err := s.DB.Model(&models.ChallengeParticipant{}).Count(&total).Error; err != nil {
		log.Printf("[Challenge] participant total failed: %v", err)
		return 0, utils.NewStoreError("failed to count participants", err)
	}
	return total, nil
}

// validationMessage flattens a validator error into one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required", "min":
			return fmt.Sprintf("%s is required", field)
		case "email":
			return fmt.Sprintf("%s must be a valid email address", field)
		default:
			return fmt.Sprintf("%s is invalid", field)
		}
	}
	return err.Error()
}
