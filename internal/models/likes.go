package models

import "time"

// Likes records a user liking a message.
// The combination of UserID and MessageID must be unique.
type Likes struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_message" json:"user_id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_likes_user_message" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Likes) TableName() string {
	return "likes"
}
