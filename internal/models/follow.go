package models

import "time"

// Follow represents a directed follow edge between two users.
// The combination of FollowerID and FollowingID must be unique. The
// repository does not guard against FollowerID == FollowingID; the service
// layer rejects self-follows before any repository call.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
