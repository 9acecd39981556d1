package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type UserService struct {
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	followRepo   repository.FollowRepository
	reactionRepo repository.ReactionRepository

	// staticBaseURL prefixes stored image paths into public URLs.
	staticBaseURL string
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	reactionRepo repository.ReactionRepository,
	staticBaseURL string,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		postRepo:      postRepo,
		followRepo:    followRepo,
		reactionRepo:  reactionRepo,
		staticBaseURL: staticBaseURL,
	}
}

// ProfileView is the profile header rendered above a user's posts.
type ProfileView struct {
	Username       string  `json:"username"`
	Handle         string  `json:"handle"`
	FollowerCount  int64   `json:"followerCount"`
	FollowingCount int64   `json:"followingCount"`
	IsFollowing    bool    `json:"isFollowing"`
	IsOwnProfile   bool    `json:"isOwnProfile"`
	JoinedDate     string  `json:"joinedDate"`
	TotalLikes     int64   `json:"totalLikes"`
	TotalRetweets  int64   `json:"totalRetweets"`
	TotalComments  int64   `json:"totalComments"`
	ProfileImage   string  `json:"profileImage"`
	BannerImage    *string `json:"bannerImage"`
}

// ProfileResult bundles the profile header with the user's annotated posts.
type ProfileResult struct {
	Profile ProfileView       `json:"profile"`
	Posts   []models.PostView `json:"posts"`
}

// Profile assembles the named user's profile for the viewer: follower counts,
// relationship flags, joined date and totals aggregated over the user's posts.
func (s *UserService) Profile(ctx context.Context, viewerID uint, username string) (*ProfileResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	isFollowing, err := s.followRepo.Exists(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ByUser(ctx, user.ID, viewerID)
	if err != nil {
		return nil, err
	}
	var totalLikes, totalRetweets, totalComments int64
	for i := range posts {
		totalLikes += posts[i].LikeCount
		totalRetweets += posts[i].RetweetCount
		totalComments += posts[i].CommentCount
	}

	var banner *string
	if user.BannerImage != "" {
		url := s.staticURL(user.BannerImage)
		banner = &url
	}

	return &ProfileResult{
		Profile: ProfileView{
			Username:       user.Username,
			Handle:         user.Handle(),
			FollowerCount:  followerCount,
			FollowingCount: followingCount,
			IsFollowing:    isFollowing,
			IsOwnProfile:   user.ID == viewerID,
			JoinedDate:     user.CreatedAt.Format("January 2006"),
			TotalLikes:     totalLikes,
			TotalRetweets:  totalRetweets,
			TotalComments:  totalComments,
			ProfileImage:   s.staticURL(user.AvatarPath()),
			BannerImage:    banner,
		},
		Posts: models.NewPostViews(posts, viewerID),
	}, nil
}

// LikedPosts returns the posts the named user liked, annotated for the viewer.
func (s *UserService) LikedPosts(ctx context.Context, viewerID uint, username string) ([]models.PostView, error) {
	return s.reactedPosts(ctx, viewerID, username, models.ReactionLike)
}

// RetweetedPosts returns the posts the named user retweeted.
func (s *UserService) RetweetedPosts(ctx context.Context, viewerID uint, username string) ([]models.PostView, error) {
	return s.reactedPosts(ctx, viewerID, username, models.ReactionRetweet)
}

func (s *UserService) reactedPosts(ctx context.Context, viewerID uint, username string, kind models.ReactionKind) ([]models.PostView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ReactedBy(ctx, user.ID, kind, viewerID)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, viewerID), nil
}

// CommentedPosts returns the distinct posts the named user commented on.
func (s *UserService) CommentedPosts(ctx context.Context, viewerID uint, username string) ([]models.PostView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.CommentedBy(ctx, user.ID, viewerID)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, viewerID), nil
}

// UserSearchView is one row in a username search result.
type UserSearchView struct {
	Username     string `json:"username"`
	UserID       uint   `json:"user_id"`
	ProfileImage string `json:"profile_image"`
	IsFollowing  bool   `json:"isFollowing"`
}

// SearchUsersPrefix finds users whose username starts with the query,
// excluding the viewer. Used by the mention/compose autocomplete.
func (s *UserService) SearchUsersPrefix(ctx context.Context, viewerID uint, query string, limit int) ([]UserSearchView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	users, err := s.userRepo.SearchPrefix(ctx, query, viewerID, limit)
	if err != nil {
		return nil, err
	}
	return s.annotateUsers(ctx, viewerID, users)
}

// SearchUsersContains finds users whose username contains the query.
func (s *UserService) SearchUsersContains(ctx context.Context, viewerID uint, query string, limit int) ([]UserSearchView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	users, err := s.userRepo.SearchContains(ctx, query, viewerID, limit)
	if err != nil {
		return nil, err
	}
	return s.annotateUsers(ctx, viewerID, users)
}

func (s *UserService) annotateUsers(ctx context.Context, viewerID uint, users []models.User) ([]UserSearchView, error) {
	viewerFollows, err := s.followRepo.FollowedIDSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	views := make([]UserSearchView, 0, len(users))
	for _, u := range users {
		views = append(views, UserSearchView{
			Username:     u.Username,
			UserID:       u.ID,
			ProfileImage: s.staticURL(u.AvatarPath()),
			IsFollowing:  viewerFollows[u.ID],
		})
	}
	return views, nil
}

// UpdateProfileImage records a newly uploaded avatar path on the user and
// returns its public URL.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID uint, path string) (string, error) {
	if err := s.userRepo.UpdateImages(ctx, userID, map[string]interface{}{"profile_image": path}); err != nil {
		return "", err
	}
	return s.staticURL(path), nil
}

// UpdateBannerImage records a newly uploaded banner path on the user.
func (s *UserService) UpdateBannerImage(ctx context.Context, userID uint, path string) (string, error) {
	if err := s.userRepo.UpdateImages(ctx, userID, map[string]interface{}{"banner_image": path}); err != nil {
		return "", err
	}
	return s.staticURL(path), nil
}

func (s *UserService) staticURL(path string) string {
	return strings.TrimRight(s.staticBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
