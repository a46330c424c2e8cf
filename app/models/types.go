package models

import "time"

// Post represents a blog post managed through the admin surface.
// Slug is persisted for display but may go stale when the title is
// edited; canonical comparisons always recompute it from Title.
type Post struct {
	ID         int       `json:"id" validate:"gte=0"`
	Title      string    `json:"title" validate:"required,min=3,max=200"`
	Body       string    `json:"body" validate:"required"`
	Author     string    `json:"author" validate:"max=100"`
	Tags       []string  `json:"tags" validate:"-"`
	Slug       string    `json:"slug" validate:"-"`
	PublishAt  time.Time `json:"publish_at"`
	CommentsID int       `json:"comments_id" validate:"gte=0"`
}

// Comment represents a single reader comment.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	Author    string    `json:"author" validate:"required,max=100"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Body      string    `json:"body" validate:"required,max=2000"`
	CreatedAt time.Time `json:"created_at"`
	IsSpam    bool      `json:"is_spam"`
}

// PostComments is the comment aggregate paired with a post. A comment id
// lives in exactly one of Comments or Spam at any committed state.
type PostComments struct {
	PostID   int       `json:"post_id"`
	Comments []Comment `json:"comments"`
	Spam     []Comment `json:"spam"`
}

// PostReference is the minimal identity needed to address a post in a
// redirect: its id and canonical slug.
type PostReference struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
}
