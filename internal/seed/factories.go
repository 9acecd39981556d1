// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by ad-hoc dev scripts.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand

	// all seeded users share one hash so seeding stays fast; the
	// plaintext for every account is "password123"
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seed data
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	return &Factory{db: db, rng: rng, passwordHash: string(hash)}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := firstNames[f.rng.Intn(len(firstNames))]
	last := lastNames[f.rng.Intn(len(lastNames))]
	user := &models.User{
		Username:     fmt.Sprintf("%s_%s%d", first, last, gofakeit.Number(10, 999)),
		Email:        gofakeit.Email(),
		PasswordHash: f.passwordHash,
		CreatedAt:    f.pastTime(365),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %q: %w", user.Username, err)
	}
	return user, nil
}

// BuildPost constructs a post with generated content but does not persist
// it. mentioned users, if any, are woven into the content as @handles.
func (f *Factory) BuildPost(author *models.User, mentioned ...*models.User) *models.Post {
	content := fmt.Sprintf("Just %s an %s %s. %s",
		verbs[f.rng.Intn(len(verbs))],
		adjectives[f.rng.Intn(len(adjectives))],
		nouns[f.rng.Intn(len(nouns))],
		gofakeit.HipsterSentence(6),
	)
	for _, m := range mentioned {
		content = fmt.Sprintf("@%s %s", m.Username, content)
	}
	return &models.Post{
		UserID:    author.ID,
		Content:   content,
		CreatedAt: f.pastTime(90),
	}
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// pastTime returns a timestamp up to maxDays in the past, with hour and
// minute jitter so seeded timelines look organic.
func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}
