// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account.
//
// Username and email are globally unique. The CHECK constraints reject empty
// values at insert time; nothing validates them earlier, so a blank identity
// surfaces as an integrity error only when the row is committed.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null;check:chk_users_username,username <> ''" json:"username"`
	Email          string    `gorm:"unique;not null;check:chk_users_email,email <> ''" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}
