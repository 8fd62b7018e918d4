package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/repository"
)

type profileService interface {
	GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error)
}

type ProfileHandler struct {
	profileService profileService
}

func NewProfileHandler(profileService profileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type updateUserProfileRequest struct {
	FullName          *string   `json:"full_name"`
	Age               *int      `json:"age"`
	Gender            *string   `json:"gender"`
	HeightCM          *float64  `json:"height_cm"`
	WeightKG          *float64  `json:"weight_kg"`
	FitnessLevel      *string   `json:"fitness_level"`
	Goals             *[]string `json:"goals"`
	ActivityLevel     *string   `json:"activity_level"`
	WorkoutFrequency  *int      `json:"workout_frequency"`
	TargetWeightKG    *float64  `json:"target_weight_kg"`
	TimelineWeeks     *int      `json:"timeline_weeks"`
	Activities        *[]string `json:"activities"`
	MedicalConditions *string   `json:"medical_conditions"`
}

func (h *ProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "user" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileService.GetUserProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

// UpdateUserProfile lets the user correct what the intake extracted.
func (h *ProfileHandler) UpdateUserProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "user" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateUserProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileService.UpdateUserProfile(c.Context(), userID, repository.UpdateUserProfileInput{
		FullName:          req.FullName,
		Age:               req.Age,
		Gender:            req.Gender,
		HeightCM:          req.HeightCM,
		WeightKG:          req.WeightKG,
		FitnessLevel:      req.FitnessLevel,
		Goals:             req.Goals,
		ActivityLevel:     req.ActivityLevel,
		WorkoutFrequency:  req.WorkoutFrequency,
		TargetWeightKG:    req.TargetWeightKG,
		TimelineWeeks:     req.TimelineWeeks,
		Activities:        req.Activities,
		MedicalConditions: req.MedicalConditions,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func parseProfileUserID(c *fiber.Ctx) (int64, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
