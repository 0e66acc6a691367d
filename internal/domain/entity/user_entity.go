package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and never leaves the application layer.
//
// VideoCount and TotalLikes are denormalized aggregates; videos and
// video_likes are the source of truth and reconciliation recomputes them.
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Avatar     string    `json:"avatar"`
	Bio        string    `json:"bio"`
	VideoCount int       `json:"videoCount"`
	TotalLikes int       `json:"totalLikes"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserSummary is the display projection embedded in feeds and comments.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
