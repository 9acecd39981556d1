// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account on Chirp.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	ProfileImage string    `gorm:"size:255" json:"profile_image"`
	BannerImage  string    `gorm:"size:255" json:"banner_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// Handle returns the display handle for the user ("@" + username).
func (u *User) Handle() string {
	return "@" + u.Username
}

// DefaultAvatarPath is served when a user has not uploaded a profile image.
const DefaultAvatarPath = "uploads/default-avatar.jpg"

// AvatarPath returns the relative path of the user's avatar, falling back to
// the default image.
func (u *User) AvatarPath() string {
	if u.ProfileImage == "" {
		return DefaultAvatarPath
	}
	return u.ProfileImage
}
