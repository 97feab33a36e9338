package models

import (
	"strconv"
	"time"
)

// NotificationType classifies the action that produced a notification.
type NotificationType string

const (
	// NotificationTypeLike is produced when a user likes a post.
	NotificationTypeLike NotificationType = "LIKE"
	// NotificationTypeComment is produced when a user comments on a post.
	NotificationTypeComment NotificationType = "COMMENT"
	// NotificationTypeFollow is produced when a user follows another user.
	NotificationTypeFollow NotificationType = "FOLLOW"
)

// Notification is a side effect of a like, comment, or follow.
// It is never created when the creator is also the recipient, and the
// LIKE/FOLLOW variants are deleted when the originating like/follow is
// retracted.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Type      NotificationType `gorm:"type:varchar(16);not null;index" json:"type"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	CreatorID uint             `gorm:"not null" json:"creator_id"`
	Creator   User             `gorm:"foreignKey:CreatorID" json:"creator"`
	PostID    *uint            `json:"post_id,omitempty"`
	CommentID *uint            `json:"comment_id,omitempty"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// Cursor returns the pagination cursor for the notification.
func (n *Notification) Cursor() string {
	return strconv.FormatUint(uint64(n.ID), 10)
}
