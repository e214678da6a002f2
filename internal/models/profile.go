package models

import "time"

// User is a row of the user collection.
type User struct {
	ID             string    `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture"`
	Bio            *string   `db:"bio" json:"bio"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Post is a user post with its comment count.
type Post struct {
	ID           int       `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Content      string    `db:"content" json:"content"`
	ImageURL     *string   `db:"image_url" json:"image_url"`
	CommentCount int       `db:"comment_count" json:"comment_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile aggregates a user with their posts.
type Profile struct {
	User           User   `json:"user"`
	Posts          []Post `json:"posts"`
	PostCount      int    `json:"postCount"`
	SavedPostCount int    `json:"savedPostCount"`
	GroupCount     int    `json:"groupCount"`
}
