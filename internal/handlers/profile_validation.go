package handlers

import (
	"strings"

	"github.com/saeid-a/CoachIntake/internal/models"
)

const (
	maxWorkoutFrequency = 14
	maxTimelineWeeks    = 520
)

var allowedGenders = map[string]struct{}{
	models.GenderMale:   {},
	models.GenderFemale: {},
	"other":             {},
	"prefer_not_to_say": {},
}

var allowedFitnessLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

var allowedGoals = map[string]struct{}{
	models.GoalWeightLoss:        {},
	models.GoalWeightGain:        {},
	models.GoalMuscleGain:        {},
	models.GoalToning:            {},
	models.GoalWeightMaintenance: {},
	models.GoalStrength:          {},
	models.GoalEndurance:         {},
	models.GoalBodyRecomposition: {},
	models.GoalFitness:           {},
}

var allowedActivityLevels = map[string]struct{}{
	models.ActivitySedentary:        {},
	models.ActivityLightlyActive:    {},
	models.ActivityModeratelyActive: {},
	models.ActivityVeryActive:       {},
	models.ActivityExtremelyActive:  {},
}

func validateUserProfileUpdateRequest(req updateUserProfileRequest) string {
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return "full_name must not be empty"
	}
	if req.Age != nil && *req.Age <= 0 {
		return "age must be greater than 0"
	}
	if req.Gender != nil {
		if _, ok := allowedGenders[strings.TrimSpace(*req.Gender)]; !ok {
			return "gender must be one of: male, female, other, prefer_not_to_say"
		}
	}
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return "height_cm must be greater than 0"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	if req.FitnessLevel != nil {
		if _, ok := allowedFitnessLevels[strings.TrimSpace(*req.FitnessLevel)]; !ok {
			return "fitness_level must be one of: beginner, intermediate, advanced"
		}
	}
	if req.Goals != nil {
		for _, goal := range *req.Goals {
			if _, ok := allowedGoals[goal]; !ok {
				return "goals contains an unknown goal: " + goal
			}
		}
	}
	if req.ActivityLevel != nil {
		if _, ok := allowedActivityLevels[*req.ActivityLevel]; !ok {
			return "activity_level must be one of: sedentary, lightly active, moderately active, very active, extremely active"
		}
	}
	if req.WorkoutFrequency != nil && (*req.WorkoutFrequency < 1 || *req.WorkoutFrequency > maxWorkoutFrequency) {
		return "workout_frequency must be between 1 and 14"
	}
	if req.TargetWeightKG != nil && *req.TargetWeightKG <= 0 {
		return "target_weight_kg must be greater than 0"
	}
	if req.TimelineWeeks != nil && (*req.TimelineWeeks < 1 || *req.TimelineWeeks > maxTimelineWeeks) {
		return "timeline_weeks must be between 1 and 520"
	}
	if req.Activities != nil {
		for _, activity := range *req.Activities {
			if strings.TrimSpace(activity) == "" {
				return "activities must not contain empty values"
			}
		}
	}
	if req.MedicalConditions != nil && strings.TrimSpace(*req.MedicalConditions) == "" {
		return "medical_conditions must not be empty"
	}
	return ""
}
