package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// FollowAction is the result of a follow toggle.
type FollowAction string

const (
	ActionFollowed   FollowAction = "followed"
	ActionUnfollowed FollowAction = "unfollowed"
)

// ToggleFollow flips the viewer's follow edge toward the named user.
// Self-follow is rejected.
func (s *FollowService) ToggleFollow(ctx context.Context, viewerID uint, username string) (FollowAction, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if target.ID == viewerID {
		return "", models.NewValidationError("You cannot follow yourself")
	}
	following, err := s.followRepo.Toggle(ctx, viewerID, target.ID)
	if err != nil {
		return "", err
	}
	if following {
		return ActionFollowed, nil
	}
	return ActionUnfollowed, nil
}

// Following returns the users the viewer follows, for the message compose
// picker.
func (s *FollowService) Following(ctx context.Context, viewerID uint) ([]models.User, error) {
	return s.followRepo.FollowingUsers(ctx, viewerID)
}

// Relationships lists the followers or following of the named target, each
// annotated with whether the viewer follows that user.
func (s *FollowService) Relationships(ctx context.Context, viewerID uint, viewType, username string) ([]models.RelationshipView, error) {
	if viewType != "followers" && viewType != "following" {
		return nil, models.NewValidationError("View type must be followers or following")
	}
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if viewType == "followers" {
		users, err = s.followRepo.FollowerUsers(ctx, target.ID)
	} else {
		users, err = s.followRepo.FollowingUsers(ctx, target.ID)
	}
	if err != nil {
		return nil, err
	}

	viewerFollows, err := s.followRepo.FollowedIDSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	views := make([]models.RelationshipView, 0, len(users))
	for _, u := range users {
		views = append(views, models.RelationshipView{
			Username:    u.Username,
			UserID:      u.ID,
			IsFollowing: viewerFollows[u.ID],
		})
	}
	return views, nil
}

// RemoveFollower deletes the edge where the named user follows the viewer.
// The edge must exist; removing yourself is rejected.
func (s *FollowService) RemoveFollower(ctx context.Context, viewerID uint, username string) error {
	follower, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if follower.ID == viewerID {
		return models.NewValidationError("You cannot remove yourself")
	}
	removed, err := s.followRepo.Remove(ctx, follower.ID, viewerID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("This user does not follow you")
	}
	return nil
}
