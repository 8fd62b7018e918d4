package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/parser"
	"github.com/saeid-a/CoachIntake/internal/repository"
)

type profileParser interface {
	Parse(text string) models.ProfileRecord
}

type intakeStore interface {
	Create(ctx context.Context, message *models.IntakeMessage) error
	LockSession(ctx context.Context, userID int64, sessionID uuid.UUID) error
	LatestBySession(ctx context.Context, userID int64, sessionID uuid.UUID) (*models.IntakeMessage, error)
	ListBySession(ctx context.Context, userID int64, sessionID uuid.UUID, limit int, offset int) ([]models.IntakeMessage, int, error)
}

type IntakeService struct {
	db          *pgxpool.Pool
	parser      profileParser
	intakeRepo  intakeStore
	profileRepo UserProfileUpdater
	maxChars    int
	newSession  func() uuid.UUID
}

// IntakeResult is what a client sees after each message: the profile so far
// and what is still needed before a plan can be generated.
type IntakeResult struct {
	SessionID uuid.UUID             `json:"session_id"`
	Message   *models.IntakeMessage `json:"message,omitempty"`
	Profile   models.ProfileRecord  `json:"profile"`
	Missing   []MissingField        `json:"missing"`
	Ready     bool                  `json:"ready"`
	Prompt    string                `json:"prompt,omitempty"`
}

func NewIntakeService(
	db *pgxpool.Pool,
	intakeRepo *repository.IntakeRepository,
	profileRepo *repository.UserProfileRepository,
	maxChars int,
) *IntakeService {
	return &IntakeService{
		db:          db,
		parser:      parser.Parser{},
		intakeRepo:  intakeRepo,
		profileRepo: profileRepo,
		maxChars:    maxChars,
		newSession:  uuid.New,
	}
}

// Preview parses text without touching storage.
func (s *IntakeService) Preview(text string) (*IntakeResult, error) {
	if err := s.checkLength(text); err != nil {
		return nil, err
	}
	return s.evaluate(s.parser.Parse(text)), nil
}

// Submit parses one message of an intake session, merges it over the profile
// accumulated so far and stores both the message and the updated profile.
// A nil sessionID starts a new session.
func (s *IntakeService) Submit(
	ctx context.Context,
	userID int64,
	role string,
	sessionID uuid.UUID,
	text string,
) (*IntakeResult, error) {
	if role != "user" {
		return nil, ErrForbidden
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}
	if err := s.checkLength(trimmed); err != nil {
		return nil, err
	}

	var result *IntakeResult
	err := s.withTx(ctx, func(intakeRepo intakeStore, profileRepo UserProfileUpdater) error {
		accumulated := models.NewProfileRecord()
		if sessionID == uuid.Nil {
			sessionID = s.newSession()
		} else {
			// Concurrent messages to one session merge in turn.
			if err := intakeRepo.LockSession(ctx, userID, sessionID); err != nil {
				return fmt.Errorf("lock intake session: %w", err)
			}
			latest, err := intakeRepo.LatestBySession(ctx, userID, sessionID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrSessionNotFound
				}
				return fmt.Errorf("load intake session: %w", err)
			}
			accumulated = latest.Parsed
		}

		result = s.evaluate(parser.Merge(accumulated, s.parser.Parse(trimmed)))
		result.SessionID = sessionID
		result.Message = &models.IntakeMessage{
			UserID:    userID,
			SessionID: sessionID,
			Content:   trimmed,
			Parsed:    result.Profile,
			Missing:   missingFieldNames(result.Missing),
			Ready:     result.Ready,
		}

		if err := intakeRepo.Create(ctx, result.Message); err != nil {
			return fmt.Errorf("store intake message: %w", err)
		}
		if _, err := profileRepo.UpdatePartial(ctx, userID, profileUpdate(result.Profile, result.Ready)); err != nil {
			return fmt.Errorf("apply intake to profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *IntakeService) History(
	ctx context.Context,
	userID int64,
	role string,
	sessionID uuid.UUID,
	page int,
	limit int,
) ([]models.IntakeMessage, int, error) {
	if role != "user" {
		return nil, 0, ErrForbidden
	}
	if sessionID == uuid.Nil || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	messages, total, err := s.intakeRepo.ListBySession(ctx, userID, sessionID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list intake messages: %w", err)
	}
	if total == 0 {
		return nil, 0, ErrSessionNotFound
	}
	return messages, total, nil
}

func (s *IntakeService) checkLength(text string) error {
	if s.maxChars > 0 && utf8.RuneCountInString(text) > s.maxChars {
		return ErrPromptTooLong
	}
	return nil
}

func (s *IntakeService) evaluate(record models.ProfileRecord) *IntakeResult {
	record = ResolveGoal(record)
	readiness := CheckReadiness(record)
	return &IntakeResult{
		Profile: record,
		Missing: readiness.Missing,
		Ready:   readiness.Ready,
		Prompt:  readiness.Prompt,
	}
}

// withTx runs fn against repositories bound to one transaction. Without a
// pool the injected repositories are used directly.
func (s *IntakeService) withTx(ctx context.Context, fn func(intakeStore, UserProfileUpdater) error) error {
	if s.db == nil {
		return fn(s.intakeRepo, s.profileRepo)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(repository.NewIntakeRepository(tx), repository.NewUserProfileRepository(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func profileUpdate(record models.ProfileRecord, ready bool) repository.UpdateUserProfileInput {
	req := repository.UpdateUserProfileInput{
		Age:              record.Age,
		Gender:           record.Gender,
		HeightCM:         record.HeightCM,
		WeightKG:         record.WeightKG,
		ActivityLevel:    record.ActivityLevel,
		WorkoutFrequency: record.Frequency,
	}
	if record.Goal != nil {
		req.Goals = &[]string{*record.Goal}
	}
	if record.TargetWeight != nil {
		kg := record.TargetWeight.Value
		req.TargetWeightKG = &kg
	}
	if record.Timeline != nil {
		weeks := int(record.Timeline.Value)
		req.TimelineWeeks = &weeks
	}
	if len(record.Activity) > 0 {
		activities := append([]string(nil), record.Activity...)
		req.Activities = &activities
	}
	if ready {
		req.OnboardingComplete = &ready
	}
	return req
}
