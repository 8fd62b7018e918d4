package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/CoachIntake/internal/models"
)

const userProfileColumns = `id, user_id, full_name, age, gender, height_cm, weight_kg, fitness_level, goals,
		activity_level, workout_frequency, target_weight_kg, timeline_weeks, activities,
		medical_conditions, onboarding_complete, created_at, updated_at`

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO user_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE user_id = $1`
	return scanUserProfile(r.db.QueryRow(ctx, query, userID))
}

// UpdatePartial writes every non-nil field of req and leaves the rest as they
// are. OnboardingComplete can only move from false to true.
func (r *UserProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateUserProfileInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET full_name = COALESCE($1, full_name),
			age = COALESCE($2, age),
			gender = COALESCE($3, gender),
			height_cm = COALESCE($4, height_cm),
			weight_kg = COALESCE($5, weight_kg),
			fitness_level = COALESCE($6, fitness_level),
			goals = COALESCE($7, goals),
			activity_level = COALESCE($8, activity_level),
			workout_frequency = COALESCE($9, workout_frequency),
			target_weight_kg = COALESCE($10, target_weight_kg),
			timeline_weeks = COALESCE($11, timeline_weeks),
			activities = COALESCE($12, activities),
			medical_conditions = COALESCE($13, medical_conditions),
			onboarding_complete = onboarding_complete OR COALESCE($14, FALSE),
			updated_at = NOW()
		WHERE user_id = $15
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		req.FullName,
		req.Age,
		req.Gender,
		req.HeightCM,
		req.WeightKG,
		req.FitnessLevel,
		req.Goals,
		req.ActivityLevel,
		req.WorkoutFrequency,
		req.TargetWeightKG,
		req.TimelineWeeks,
		req.Activities,
		req.MedicalConditions,
		req.OnboardingComplete,
		userID,
	))
}

func scanUserProfile(row pgx.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Age,
		&profile.Gender,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.FitnessLevel,
		&profile.Goals,
		&profile.ActivityLevel,
		&profile.WorkoutFrequency,
		&profile.TargetWeightKG,
		&profile.TimelineWeeks,
		&profile.Activities,
		&profile.MedicalConditions,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateUserProfileInput struct {
	FullName           *string
	Age                *int
	Gender             *string
	HeightCM           *float64
	WeightKG           *float64
	FitnessLevel       *string
	Goals              *[]string
	ActivityLevel      *string
	WorkoutFrequency   *int
	TargetWeightKG     *float64
	TimelineWeeks      *int
	Activities         *[]string
	MedicalConditions  *string
	OnboardingComplete *bool
}
