package entity

import (
	"time"
)

// Video is owned by exactly one user; UploadedBy is immutable after creation.
// LikeCount mirrors the number of rows in video_likes for this video and is
// maintained in the same transaction as the like toggle so it can serve as a
// server-side sort key.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	UploadedBy  string    `json:"uploadedBy"`
	Tags        []string  `json:"tags"`
	LikeCount   int       `json:"likeCount"`
	ViewCount   int       `json:"viewCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FeedVideo is a video enriched with uploader and like-author display fields.
type FeedVideo struct {
	Video
	Uploader UserSummary   `json:"uploader"`
	LikedBy  []UserSummary `json:"likedBy"`
}

// Comment lives in an append-only log keyed by (VideoID, ID).
// Comments are never edited in place.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentView is a comment enriched with its author's display fields.
type CommentView struct {
	Comment
	Author UserSummary `json:"author"`
}
