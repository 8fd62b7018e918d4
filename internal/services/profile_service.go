package services

import (
	"context"

	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/repository"
)

type UserProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error)
}

type UserProfileStore interface {
	UserProfileUpdater
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type ProfileService struct {
	userProfileRepo UserProfileStore
}

func NewProfileService(userProfileRepo UserProfileStore) *ProfileService {
	return &ProfileService{userProfileRepo: userProfileRepo}
}

func (s *ProfileService) GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.userProfileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) UpdateUserProfile(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error) {
	return s.userProfileRepo.UpdatePartial(ctx, userID, req)
}
