package models

import "time"

type UserProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	FullName           *string   `json:"full_name"`
	Age                *int      `json:"age"`
	Gender             *string   `json:"gender"`
	HeightCM           *float64  `json:"height_cm"`
	WeightKG           *float64  `json:"weight_kg"`
	FitnessLevel       *string   `json:"fitness_level"`
	Goals              *[]string `json:"goals"`
	ActivityLevel      *string   `json:"activity_level"`
	WorkoutFrequency   *int      `json:"workout_frequency"`
	TargetWeightKG     *float64  `json:"target_weight_kg"`
	TimelineWeeks      *int      `json:"timeline_weeks"`
	Activities         *[]string `json:"activities"`
	MedicalConditions  *string   `json:"medical_conditions"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
