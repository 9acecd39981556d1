package service

import (
	"context"

	"chirp/internal/models"
)

// Function-field stubs for the repository interfaces. Tests override only the
// fields they care about.

type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	searchPrefixFn   func(context.Context, string, uint, int) ([]models.User, error)
	searchContainsFn func(context.Context, string, uint, int) ([]models.User, error)
	updateImagesFn   func(context.Context, uint, map[string]interface{}) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) SearchPrefix(ctx context.Context, q string, excludeID uint, limit int) ([]models.User, error) {
	return s.searchPrefixFn(ctx, q, excludeID, limit)
}
func (s *userRepoStub) SearchContains(ctx context.Context, q string, excludeID uint, limit int) ([]models.User, error) {
	return s.searchContainsFn(ctx, q, excludeID, limit)
}
func (s *userRepoStub) UpdateImages(ctx context.Context, userID uint, updates map[string]interface{}) error {
	return s.updateImagesFn(ctx, userID, updates)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(context.Context, *models.User) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User " + username + " not found")
		},
		getByEmailFn:     func(context.Context, string) (*models.User, error) { return nil, nil },
		searchPrefixFn:   func(context.Context, string, uint, int) ([]models.User, error) { return nil, nil },
		searchContainsFn: func(context.Context, string, uint, int) ([]models.User, error) { return nil, nil },
		updateImagesFn:   func(context.Context, uint, map[string]interface{}) error { return nil },
	}
}

type postRepoStub struct {
	createWithNotificationsFn func(context.Context, *models.Post, func(uint) []*models.Notification) error
	getByIDFn                 func(context.Context, uint, uint) (*models.Post, error)
	feedFn                    func(context.Context, uint, int, int) ([]models.Post, error)
	byUserFn                  func(context.Context, uint, uint) ([]models.Post, error)
	deleteFn                  func(context.Context, uint) error
	searchFn                  func(context.Context, string, uint, int) ([]models.Post, error)
	bookmarkedFn              func(context.Context, uint) ([]models.Post, error)
	reactedByFn               func(context.Context, uint, models.ReactionKind, uint) ([]models.Post, error)
	commentedByFn             func(context.Context, uint, uint) ([]models.Post, error)
	countByUserFn             func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) CreateWithNotifications(ctx context.Context, post *models.Post, build func(uint) []*models.Notification) error {
	return s.createWithNotificationsFn(ctx, post, build)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.feedFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) ByUser(ctx context.Context, userID, viewerID uint) ([]models.Post, error) {
	return s.byUserFn(ctx, userID, viewerID)
}
func (s *postRepoStub) Delete(ctx context.Context, postID uint) error {
	return s.deleteFn(ctx, postID)
}
func (s *postRepoStub) Search(ctx context.Context, q string, viewerID uint, limit int) ([]models.Post, error) {
	return s.searchFn(ctx, q, viewerID, limit)
}
func (s *postRepoStub) Bookmarked(ctx context.Context, viewerID uint) ([]models.Post, error) {
	return s.bookmarkedFn(ctx, viewerID)
}
func (s *postRepoStub) ReactedBy(ctx context.Context, userID uint, kind models.ReactionKind, viewerID uint) ([]models.Post, error) {
	return s.reactedByFn(ctx, userID, kind, viewerID)
}
func (s *postRepoStub) CommentedBy(ctx context.Context, userID, viewerID uint) ([]models.Post, error) {
	return s.commentedByFn(ctx, userID, viewerID)
}
func (s *postRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createWithNotificationsFn: func(_ context.Context, post *models.Post, build func(uint) []*models.Notification) error {
			post.ID = 1
			build(post.ID)
			return nil
		},
		getByIDFn:     func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{ID: 1}, nil },
		feedFn:        func(context.Context, uint, int, int) ([]models.Post, error) { return nil, nil },
		byUserFn:      func(context.Context, uint, uint) ([]models.Post, error) { return nil, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		searchFn:      func(context.Context, string, uint, int) ([]models.Post, error) { return nil, nil },
		bookmarkedFn:  func(context.Context, uint) ([]models.Post, error) { return nil, nil },
		reactedByFn:   func(context.Context, uint, models.ReactionKind, uint) ([]models.Post, error) { return nil, nil },
		commentedByFn: func(context.Context, uint, uint) ([]models.Post, error) { return nil, nil },
		countByUserFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type followRepoStub struct {
	toggleFn         func(context.Context, uint, uint) (bool, error)
	existsFn         func(context.Context, uint, uint) (bool, error)
	removeFn         func(context.Context, uint, uint) (bool, error)
	followingUsersFn func(context.Context, uint) ([]models.User, error)
	followerUsersFn  func(context.Context, uint) ([]models.User, error)
	followedIDSetFn  func(context.Context, uint) (map[uint]bool, error)
	followerIDsFn    func(context.Context, uint) ([]uint, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	countFollowersFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Toggle(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.toggleFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Remove(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.removeFn(ctx, followerID, followedID)
}
func (s *followRepoStub) FollowingUsers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingUsersFn(ctx, userID)
}
func (s *followRepoStub) FollowerUsers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followerUsersFn(ctx, userID)
}
func (s *followRepoStub) FollowedIDSet(ctx context.Context, userID uint) (map[uint]bool, error) {
	return s.followedIDSetFn(ctx, userID)
}
func (s *followRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		toggleFn:         func(context.Context, uint, uint) (bool, error) { return true, nil },
		existsFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		removeFn:         func(context.Context, uint, uint) (bool, error) { return true, nil },
		followingUsersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followerUsersFn:  func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followedIDSetFn:  func(context.Context, uint) (map[uint]bool, error) { return map[uint]bool{}, nil },
		followerIDsFn:    func(context.Context, uint) ([]uint, error) { return nil, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type reactionRepoStub struct {
	toggleFn      func(context.Context, uint, uint, models.ReactionKind) (bool, int64, error)
	countFn       func(context.Context, uint, models.ReactionKind) (int64, error)
	countByUserFn func(context.Context, uint, models.ReactionKind) (int64, error)
}

func (s *reactionRepoStub) Toggle(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, int64, error) {
	return s.toggleFn(ctx, userID, postID, kind)
}
func (s *reactionRepoStub) Count(ctx context.Context, postID uint, kind models.ReactionKind) (int64, error) {
	return s.countFn(ctx, postID, kind)
}
func (s *reactionRepoStub) CountByUser(ctx context.Context, userID uint, kind models.ReactionKind) (int64, error) {
	return s.countByUserFn(ctx, userID, kind)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		toggleFn:      func(context.Context, uint, uint, models.ReactionKind) (bool, int64, error) { return true, 1, nil },
		countFn:       func(context.Context, uint, models.ReactionKind) (int64, error) { return 0, nil },
		countByUserFn: func(context.Context, uint, models.ReactionKind) (int64, error) { return 0, nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	deleteFn      func(context.Context, uint) error
	byPostFn      func(context.Context, uint) ([]models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.byPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(context.Context, *models.Comment) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		byPostFn:      func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		countByPostFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type notificationRepoStub struct {
	createFn                func(context.Context, *models.Notification) error
	listRecentAndMarkReadFn func(context.Context, uint, int) ([]models.Notification, error)
	countUnreadFn           func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) ListRecentAndMarkRead(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	return s.listRecentAndMarkReadFn(ctx, userID, limit)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnreadFn(ctx, userID)
}

type messageRepoStub struct {
	createFn             func(context.Context, *models.Message) error
	conversationsFn      func(context.Context, uint) ([]models.Conversation, error)
	historyAndMarkReadFn func(context.Context, uint, uint) ([]models.Message, error)
	countUnreadFn        func(context.Context, uint) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, m *models.Message) error {
	return s.createFn(ctx, m)
}
func (s *messageRepoStub) Conversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	return s.conversationsFn(ctx, userID)
}
func (s *messageRepoStub) HistoryAndMarkRead(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	return s.historyAndMarkReadFn(ctx, userID, partnerID)
}
func (s *messageRepoStub) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnreadFn(ctx, userID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:             func(context.Context, *models.Message) error { return nil },
		conversationsFn:      func(context.Context, uint) ([]models.Conversation, error) { return nil, nil },
		historyAndMarkReadFn: func(context.Context, uint, uint) ([]models.Message, error) { return nil, nil },
		countUnreadFn:        func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// userDirectory wires getByUsernameFn to a fixed set of users.
func userDirectory(users ...*models.User) *userRepoStub {
	stub := noopUserRepo()
	stub.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		for _, u := range users {
			if u.Username == username {
				return u, nil
			}
		}
		return nil, models.NewNotFoundError("User " + username + " not found")
	}
	stub.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return nil, models.NewNotFoundError("User not found")
	}
	return stub
}
