package mock

import (
	"sort"
	"sync"
	"time"

	"blogadmin/app/models"
	"blogadmin/app/repositories"
)

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentsRepository struct {
	aggregates map[int]*models.PostComments
	mutex      sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func NewCommentsRepository() *CommentsRepository {
	return &CommentsRepository{
		aggregates: make(map[int]*models.PostComments),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.Post)
	m.nextID = 1
}

// PostRepository implementation

func (m *PostRepository) GetPost(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) SavePost(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if post.ID == 0 {
		post.ID = m.nextID
		post.CommentsID = post.ID
		m.nextID++
	} else if post.ID >= m.nextID {
		m.nextID = post.ID + 1
	}
	post.BeforeSave()
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *PostRepository) PostsByPublishRange(start, end time.Time, limit int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var matched []*models.Post
	for _, post := range m.posts {
		if post.PublishAt.Before(start) || post.PublishAt.After(end) {
			continue
		}
		copied := *post
		matched = append(matched, &copied)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishAt.Before(matched[j].PublishAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *PostRepository) NextPostRef(t time.Time) (*models.PostReference, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var next *models.Post
	for _, post := range m.posts {
		if !post.PublishAt.After(t) {
			continue
		}
		if next == nil || post.PublishAt.Before(next.PublishAt) {
			next = post
		}
	}
	if next == nil {
		return nil, nil
	}
	ref := next.Reference()
	return &ref, nil
}

func (m *PostRepository) PrevPostRef(t time.Time) (*models.PostReference, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var prev *models.Post
	for _, post := range m.posts {
		if !post.PublishAt.Before(t) {
			continue
		}
		if prev == nil || post.PublishAt.After(prev.PublishAt) {
			prev = post
		}
	}
	if prev == nil {
		return nil, nil
	}
	ref := prev.Reference()
	return &ref, nil
}

// CommentsRepository implementation

func (m *CommentsRepository) GetComments(postID int) (*models.PostComments, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	aggregate, exists := m.aggregates[postID]
	if !exists {
		return &models.PostComments{PostID: postID}, nil
	}
	copied := models.PostComments{
		PostID:   aggregate.PostID,
		Comments: append([]models.Comment(nil), aggregate.Comments...),
		Spam:     append([]models.Comment(nil), aggregate.Spam...),
	}
	return &copied, nil
}

func (m *CommentsRepository) SaveComments(comments *models.PostComments) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := models.PostComments{
		PostID:   comments.PostID,
		Comments: append([]models.Comment(nil), comments.Comments...),
		Spam:     append([]models.Comment(nil), comments.Spam...),
	}
	m.aggregates[comments.PostID] = &copied
	return nil
}
