// Package service contains the business rules. Services validate input,
// resolve references and delegate persistence to repositories; handlers stay
// thin on top of them.
package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

// maxPostLen bounds chirp content; the column is text so this is an
// application rule, not a schema one.
const maxPostLen = 10000

var mentionRe = regexp.MustCompile(`@(\w+)`)

type PostService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	reactionRepo repository.ReactionRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	reactionRepo repository.ReactionRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		followRepo:   followRepo,
		reactionRepo: reactionRepo,
	}
}

// CreatePost persists a new chirp and fans out notifications in the same
// transaction: one `mention` per distinct resolvable mentioned user (never the
// author), one `new_post` per follower not already mentioned.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxPostLen {
		return nil, models.NewValidationError("Content is too long")
	}

	mentionedIDs, err := s.resolveMentions(ctx, authorID, content)
	if err != nil {
		return nil, err
	}
	followerIDs, err := s.followRepo.FollowerIDs(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{UserID: authorID, Content: content}
	err = s.postRepo.CreateWithNotifications(ctx, post, func(postID uint) []*models.Notification {
		var notifications []*models.Notification
		for _, id := range mentionedIDs {
			notifications = append(notifications, &models.Notification{
				UserID:  id,
				ActorID: authorID,
				PostID:  postID,
				Kind:    models.NotificationMention,
			})
		}
		mentioned := make(map[uint]bool, len(mentionedIDs))
		for _, id := range mentionedIDs {
			mentioned[id] = true
		}
		for _, id := range followerIDs {
			// A mention about this post supersedes the follower ping.
			if mentioned[id] {
				continue
			}
			notifications = append(notifications, &models.Notification{
				UserID:  id,
				ActorID: authorID,
				PostID:  postID,
				Kind:    models.NotificationNewPost,
			})
		}
		observability.NotificationFanout.WithLabelValues(string(models.NotificationMention)).Add(float64(len(mentionedIDs)))
		observability.NotificationFanout.WithLabelValues(string(models.NotificationNewPost)).Add(float64(len(notifications) - len(mentionedIDs)))
		return notifications
	})
	if err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID, authorID)
	if err != nil {
		return nil, err
	}
	created.CanDelete = true
	return created, nil
}

// resolveMentions scans content for @handles and returns the IDs of distinct
// existing users, excluding the author. Unresolvable handles are skipped.
func (s *PostService) resolveMentions(ctx context.Context, authorID uint, content string) ([]uint, error) {
	matches := mentionRe.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool, len(matches))
	var ids []uint
	for _, m := range matches {
		username := m[1]
		if seen[username] {
			continue
		}
		seen[username] = true
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			if models.HTTPStatus(err) == 404 {
				continue
			}
			return nil, err
		}
		if user.ID == authorID {
			continue
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

// Feed returns the viewer's timeline with each view annotated for them.
func (s *PostService) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.PostView, error) {
	defer observability.ObserveFeedQuery(time.Now())
	posts, err := s.postRepo.Feed(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, viewerID), nil
}

// DeletePost removes a post and its dependents. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, viewerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return err
	}
	if post.UserID != viewerID {
		return models.NewForbiddenError("You can only delete your own chirps")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ReactResult reports the post-toggle state of one reaction kind.
type ReactResult struct {
	Toggled  bool  `json:"toggled"`
	NewCount int64 `json:"newCount"`
}

// React toggles a reaction of the given kind on a post. The kind set is
// closed; the post must exist.
func (s *PostService) React(ctx context.Context, viewerID, postID uint, kind models.ReactionKind) (*ReactResult, error) {
	if !kind.Valid() {
		return nil, models.NewValidationError("Unknown reaction kind")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	active, count, err := s.reactionRepo.Toggle(ctx, viewerID, postID, kind)
	if err != nil {
		return nil, err
	}
	direction := "off"
	if active {
		direction = "on"
	}
	observability.ReactionToggles.WithLabelValues(string(kind), direction).Inc()
	return &ReactResult{Toggled: active, NewCount: count}, nil
}

// Bookmarks returns the viewer's bookmarked posts, most recent bookmark first.
func (s *PostService) Bookmarks(ctx context.Context, viewerID uint) ([]models.PostView, error) {
	posts, err := s.postRepo.Bookmarked(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, viewerID), nil
}

// SearchPosts finds posts whose content contains the query, case-insensitive.
func (s *PostService) SearchPosts(ctx context.Context, query string, viewerID uint, limit int) ([]models.PostView, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	posts, err := s.postRepo.Search(ctx, query, viewerID, limit)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, viewerID), nil
}
