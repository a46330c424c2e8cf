package services

import (
	"fmt"
	"time"

	"blogadmin/app/models"
	"blogadmin/app/repositories"

	"github.com/go-playground/validator/v10"
)

const (
	// feedLimit caps the external feed regardless of how many posts
	// match the requested range. Truncation is silent, not an error.
	feedLimit = 1000

	// commentWindow is the inactivity period after which a post's
	// comment section counts as closed.
	commentWindow = 30 * 24 * time.Hour
)

// PostInput is the update payload for a post. A zero ID means
// "create": update doubles as create for the edit flow.
type PostInput struct {
	ID        int       `validate:"gte=0"`
	Title     string    `validate:"required,min=3,max=200"`
	Body      string    `validate:"required"`
	Author    string    `validate:"max=100"`
	Tags      []string  `validate:"-"`
	PublishAt time.Time `validate:"-"`
}

// PostSummary is the feed representation of a post.
type PostSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Author    string    `json:"author"`
	PublishAt time.Time `json:"publish_at"`
}

var validateInput = validator.New()

// PostService handles business logic for administering blog posts
type PostService struct {
	postRepo     repositories.PostRepository
	commentsRepo repositories.CommentsRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentsRepo repositories.CommentsRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentsRepo: commentsRepo,
	}
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetPost(id)
}

// GetComments retrieves the comment aggregate for a post
func (s *PostService) GetComments(postID int) (*models.PostComments, error) {
	return s.commentsRepo.GetComments(postID)
}

// UpdatePost applies a field-level merge of the input onto the persisted
// post and saves it. When the input carries no id, or the id matches
// nothing, a fresh post is created instead.
func (s *PostService) UpdatePost(input PostInput) (*models.Post, error) {
	if err := validateInput.Struct(&input); err != nil {
		ve := &ValidationError{}
		for _, fe := range err.(validator.ValidationErrors) {
			ve.Add(fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
		return nil, ve
	}

	post, err := s.loadOrCreate(input.ID)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Body = input.Body
	post.Author = input.Author
	post.Tags = input.Tags
	if !input.PublishAt.IsZero() {
		post.PublishAt = input.PublishAt
	}

	if err := s.postRepo.SavePost(post); err != nil {
		return nil, fmt.Errorf("failed to save post: %v", err)
	}
	return post, nil
}

// loadOrCreate resolves the target of an update. Missing posts are not
// an error here: the edit flow creates them.
func (s *PostService) loadOrCreate(id int) (*models.Post, error) {
	if id == 0 {
		return &models.Post{}, nil
	}
	post, err := s.postRepo.GetPost(id)
	if err == repositories.ErrNotFound {
		return &models.Post{}, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// SetPostDate replaces the calendar date of the post's publish instant
// with the date encoded in jsMillis, keeping the time-of-day and offset.
func (s *PostService) SetPostDate(id int, jsMillis int64) error {
	post, err := s.postRepo.GetPost(id)
	if err != nil {
		return err
	}

	post.PublishAt = WithDate(post.PublishAt, FromUnixMillis(jsMillis))
	return s.postRepo.SavePost(post)
}

// Feed lists posts published inside [start, end] unix seconds, ascending
// by publish time, capped at 1000 entries.
func (s *PostService) Feed(start, end int64) ([]PostSummary, error) {
	posts, err := s.postRepo.PostsByPublishRange(FromUnixSeconds(start), FromUnixSeconds(end), feedLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]PostSummary, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, PostSummary{
			ID:        post.ID,
			Title:     post.Title,
			Slug:      models.TitleToSlug(post.Title),
			Author:    post.Author,
			PublishAt: post.PublishAt,
		})
	}
	return summaries, nil
}

// Neighbors resolves the previous and next post references around the
// given post's publish time. Either may be nil at the ends of the blog.
func (s *PostService) Neighbors(post *models.Post) (prev, next *models.PostReference, err error) {
	prev, err = s.postRepo.PrevPostRef(post.PublishAt)
	if err != nil {
		return nil, nil, err
	}
	next, err = s.postRepo.NextPostRef(post.PublishAt)
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

// CommentsClosed reports whether the comment section counts as closed:
// no comment activity inside the inactivity window. A post that never
// received a comment is closed as well.
func (s *PostService) CommentsClosed(comments *models.PostComments, now time.Time) bool {
	return now.Sub(comments.LastCommentAt()) > commentWindow
}
