package models

import "time"

// MaxMessageLength bounds the text column, matching the schema's size limit.
const MaxMessageLength = 140

// Message is a short post (a "warble") owned by a single user.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:140;not null;check:chk_messages_text,text <> ''" json:"text"`
	Timestamp time.Time `gorm:"not null;autoCreateTime" json:"timestamp"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Likes rows are dropped with the message (see MessageRepository.Delete,
	// which also deletes them explicitly so the cascade holds on sqlite).
	Likes []Likes `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
}
