// Package models contains data structures for the application's domain models.
package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// User represents a user account in Ripple.
// Password is empty for accounts created through an external identity
// provider; such users cannot sign in with credentials.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Name      string         `json:"name"`
	Bio       string         `json:"bio"`
	Location  string         `json:"location"`
	Website   string         `json:"website"`
	Image     string         `json:"image"`
	Password  string         `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// FollowerCount is not persisted; computed at query time
	FollowerCount int `gorm:"->" json:"follower_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"->" json:"following_count"`
	// Following indicates whether the current requesting user follows this user (computed)
	Following bool `gorm:"->" json:"following"`
}

// Cursor returns the pagination cursor for the user.
func (u *User) Cursor() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
