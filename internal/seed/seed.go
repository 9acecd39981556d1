package seed

import (
	"fmt"
	"log"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var (
	firstNames = []string{
		"james", "mary", "john", "patricia", "robert", "jennifer", "michael", "linda",
		"william", "elizabeth", "david", "barbara", "richard", "susan", "joseph", "jessica",
		"thomas", "sarah", "charles", "karen", "daniel", "lisa", "matthew", "betty",
		"anthony", "margaret", "mark", "sandra", "steven", "kimberly", "paul", "emily",
		"andrew", "donna", "joshua", "michelle", "kevin", "carol", "brian", "amanda",
		"nicholas", "shirley", "eric", "angela", "jonathan", "helen", "stephen", "anna",
	}

	lastNames = []string{
		"smith", "johnson", "williams", "brown", "jones", "garcia", "miller", "davis",
		"rodriguez", "martinez", "hernandez", "lopez", "gonzalez", "wilson", "anderson", "thomas",
		"taylor", "moore", "jackson", "martin", "lee", "perez", "thompson", "white",
		"harris", "sanchez", "clark", "ramirez", "lewis", "robinson", "walker", "young",
		"allen", "king", "wright", "scott", "torres", "nguyen", "hill", "flores",
	}

	adjectives = []string{
		"amazing", "incredible", "fascinating", "challenging", "exciting", "simple",
		"beautiful", "elegant", "robust", "scalable", "fast", "reliable", "tiny",
		"weird", "ambitious", "thoughtful", "overengineered", "underrated",
	}

	nouns = []string{
		"project", "team", "community", "codebase", "design", "architecture", "system",
		"app", "website", "platform", "framework", "library", "tool", "idea",
		"challenge", "side quest", "refactor", "bug hunt", "deploy",
	}

	verbs = []string{
		"built", "created", "designed", "shipped", "fixed", "solved", "learned",
		"discovered", "explored", "shared", "wrote", "improved", "optimized",
		"refactored", "debugged", "broke", "rescued",
	}
)

// Run populates the database with demo data: users, a follow mesh, posts
// with sprinkled @mentions, reactions, comments, notifications, and direct
// messages.
func Run(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	follows, err := createFollowMesh(f, users)
	if err != nil {
		return fmt.Errorf("create follows: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("create engagement: %w", err)
	}

	if err := createMessages(f, users); err != nil {
		return fmt.Errorf("create messages: %w", err)
	}

	log.Println("Seeding completed. All seed accounts use the password: password123")
	return nil
}

// clearData wipes every table in FK-dependency order. Plain DELETEs keep
// this portable between SQLite and Postgres.
func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	tables := []string{
		"messages", "notifications", "follows",
		"comments", "reactions", "posts", "users",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// createFollowMesh gives each user a handful of random follow targets.
// Returns the number of edges created.
func createFollowMesh(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}
	var edges []*models.Follow
	seen := make(map[[2]uint]bool)
	for _, u := range users {
		targets := 2 + f.rng.Intn(6)
		for j := 0; j < targets; j++ {
			other := users[f.rng.Intn(len(users))]
			key := [2]uint{u.ID, other.ID}
			if other.ID == u.ID || seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, &models.Follow{
				FollowerID: u.ID,
				FollowedID: other.ID,
				CreatedAt:  f.pastTime(180),
			})
		}
	}
	if len(edges) == 0 {
		return 0, nil
	}
	return len(edges), f.db.Create(&edges).Error
}

// createPosts writes posts in batches and fans out notifications the same
// way the live create-post path does: mentioned users get a mention, the
// author's other followers get a new_post.
func createPosts(f *Factory, users []*models.User, n int) ([]*models.Post, error) {
	followers, err := followerIndex(f.db)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, n)
	mentionsByIdx := make(map[int]*models.User)
	for i := 0; i < n; i++ {
		author := users[f.rng.Intn(len(users))]
		// roughly one post in six mentions another user
		if f.rng.Intn(6) == 0 {
			target := users[f.rng.Intn(len(users))]
			if target.ID != author.ID {
				mentionsByIdx[i] = target
				posts = append(posts, f.BuildPost(author, target))
				continue
			}
		}
		posts = append(posts, f.BuildPost(author))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}

	var notifications []*models.Notification
	for i, p := range posts {
		mentioned := mentionsByIdx[i]
		if mentioned != nil {
			notifications = append(notifications, &models.Notification{
				UserID:    mentioned.ID,
				ActorID:   p.UserID,
				PostID:    p.ID,
				Kind:      models.NotificationMention,
				IsRead:    f.rng.Intn(2) == 0,
				CreatedAt: p.CreatedAt,
			})
		}
		for _, followerID := range followers[p.UserID] {
			if mentioned != nil && followerID == mentioned.ID {
				continue
			}
			notifications = append(notifications, &models.Notification{
				UserID:    followerID,
				ActorID:   p.UserID,
				PostID:    p.ID,
				Kind:      models.NotificationNewPost,
				IsRead:    f.rng.Intn(3) > 0,
				CreatedAt: p.CreatedAt,
			})
		}
	}
	if len(notifications) > 0 {
		if err := f.db.CreateInBatches(&notifications, 200).Error; err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func followerIndex(db *gorm.DB) (map[uint][]uint, error) {
	var edges []models.Follow
	if err := db.Find(&edges).Error; err != nil {
		return nil, err
	}
	idx := make(map[uint][]uint)
	for _, e := range edges {
		idx[e.FollowedID] = append(idx[e.FollowedID], e.FollowerID)
	}
	return idx, nil
}

// createEngagement sprinkles reactions and comments over the seeded posts.
func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	kinds := []models.ReactionKind{
		models.ReactionLike, models.ReactionRetweet, models.ReactionBookmark,
	}

	var reactions []*models.Reaction
	var comments []*models.Comment
	for _, p := range posts {
		seen := make(map[[2]interface{}]bool)
		for i := 0; i < f.rng.Intn(8); i++ {
			u := users[f.rng.Intn(len(users))]
			kind := kinds[f.rng.Intn(len(kinds))]
			key := [2]interface{}{u.ID, kind}
			if seen[key] {
				continue
			}
			seen[key] = true
			reactions = append(reactions, &models.Reaction{
				UserID:    u.ID,
				PostID:    p.ID,
				Kind:      kind,
				CreatedAt: f.pastTime(30),
			})
		}
		for i := 0; i < f.rng.Intn(4); i++ {
			u := users[f.rng.Intn(len(users))]
			comments = append(comments, &models.Comment{
				UserID:    u.ID,
				PostID:    p.ID,
				Content:   gofakeit.HipsterSentence(8),
				CreatedAt: f.pastTime(20),
			})
		}
	}

	if len(reactions) > 0 {
		if err := f.db.CreateInBatches(&reactions, 200).Error; err != nil {
			return err
		}
	}
	if len(comments) > 0 {
		if err := f.db.CreateInBatches(&comments, 200).Error; err != nil {
			return err
		}
	}
	log.Printf("created %d reactions and %d comments", len(reactions), len(comments))
	return nil
}

// createMessages builds short two-way DM threads between random user pairs.
func createMessages(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	threads := len(users) / 2
	var messages []*models.Message
	for i := 0; i < threads; i++ {
		a := users[f.rng.Intn(len(users))]
		b := users[f.rng.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}
		length := 2 + f.rng.Intn(6)
		for j := 0; j < length; j++ {
			sender, recipient := a, b
			if j%2 == 1 {
				sender, recipient = b, a
			}
			messages = append(messages, &models.Message{
				SenderID:    sender.ID,
				RecipientID: recipient.ID,
				Content:     gofakeit.HipsterSentence(7),
				IsRead:      j < length-1,
				CreatedAt:   f.pastTime(14),
			})
		}
	}
	if len(messages) == 0 {
		return nil
	}
	if err := f.db.CreateInBatches(&messages, 200).Error; err != nil {
		return err
	}
	log.Printf("created %d direct messages", len(messages))
	return nil
}
