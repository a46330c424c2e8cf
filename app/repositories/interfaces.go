package repositories

import (
	"time"

	"blogadmin/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// GetPost returns ErrNotFound when no post has the given id.
	GetPost(id int) (*models.Post, error)
	// SavePost persists the post, assigning an id (and creating the
	// paired empty comment aggregate) when the post is new.
	SavePost(post *models.Post) error
	// PostsByPublishRange lists posts whose PublishAt falls inside
	// [start, end], ascending by publish time, silently capped at limit.
	PostsByPublishRange(start, end time.Time, limit int) ([]*models.Post, error)
	// NextPostRef resolves the earliest post published strictly after t,
	// nil when there is none. PrevPostRef is its mirror.
	NextPostRef(t time.Time) (*models.PostReference, error)
	PrevPostRef(t time.Time) (*models.PostReference, error)
}

// CommentsRepository defines the interface for comment aggregate access
type CommentsRepository interface {
	// GetComments loads the aggregate for a post, returning a fresh
	// empty aggregate when none has been stored yet.
	GetComments(postID int) (*models.PostComments, error)
	SaveComments(comments *models.PostComments) error
}
