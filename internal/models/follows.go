package models

import "time"

// Follows is the directed edge behind the follower/following relationships.
// The composite key makes the edge itself unique; nothing prevents a
// self-loop at this level.
type Follows struct {
	UserBeingFollowedID uint      `gorm:"primaryKey;autoIncrement:false" json:"user_being_followed_id"`
	UserFollowingID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_following_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follows) TableName() string {
	return "follows"
}
