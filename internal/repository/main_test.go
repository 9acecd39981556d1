package repository

import (
	"log"
	"os"
	"testing"
	"time"

	"chirp/internal/database"
	"chirp/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Repository tests skipped: in-memory database unavailable: %v", err)
		os.Exit(0)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Repository tests skipped: %v", err)
		os.Exit(0)
	}
	// One connection keeps the shared in-memory database alive for the run.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		log.Printf("Repository tests skipped: migration failed: %v", err)
		os.Exit(0)
	}
	testDB = db

	os.Exit(m.Run())
}

// resetTables wipes all rows between tests so each test owns its fixtures.
func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"messages", "notifications", "follows", "comments", "reactions", "posts", "users"} {
		if err := testDB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset %s: %v", table, err)
		}
	}
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := testDB.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, userID uint, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content, CreatedAt: createdAt}
	if err := testDB.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func createTestFollow(t *testing.T, followerID, followedID uint) {
	t.Helper()
	if err := testDB.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error; err != nil {
		t.Fatalf("create follow: %v", err)
	}
}
