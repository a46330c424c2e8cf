package repositories

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"blogadmin/app/models"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repository is the Badger-backed document store for posts and their
// comment aggregates. Saves are single-document: a load-modify-save
// cycle across requests is last-writer-wins.
type Repository struct {
	db       *badger.DB
	mutex    sync.RWMutex
	dbPath   string
	isTestDB bool
}

func NewRepository(path string) (*Repository, error) {
	isTest := false
	if path == "" || path == "test_db" {
		// If no path is provided or if "test_db" is explicitly used,
		// create a unique temporary directory for testing to ensure isolation.
		tempPath, err := os.MkdirTemp("", "blogadmin_test_db_")
		if err != nil {
			return nil, fmt.Errorf("Error creating temp dir: %v", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	if isTest {
		if err := db.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to drop all keys: %v", err)
		}
	}
	return &Repository{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
	}, nil
}

func (r *Repository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	err := r.db.Close()
	if err != nil {
		return err
	}

	// Clean up test database
	if r.isTestDB {
		err = os.RemoveAll(r.dbPath)
		if err != nil {
			return fmt.Errorf("failed to cleanup test database: %v", err)
		}
	}
	return nil
}

// Post methods

func (r *Repository) GetPost(id int) (*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SavePost stores the post. A post without an id is treated as new: it
// gets the next sequence id and an empty comment aggregate alongside it,
// so the pair always comes into existence together.
func (r *Repository) SavePost(post *models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.db.Update(func(txn *badger.Txn) error {
		created := post.ID == 0
		if created {
			id, err := getNextID(txn, PostSeqKey)
			if err != nil {
				return err
			}
			post.ID = id
			post.CommentsID = id
		}
		post.BeforeSave()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}

		if created {
			empty, err := marshalEntity(&models.PostComments{PostID: post.ID})
			if err != nil {
				return err
			}
			return txn.Set(commentsKey(post.ID), empty)
		}
		return nil
	})
}

func (r *Repository) PostsByPublishRange(start, end time.Time, limit int) ([]*models.Post, error) {
	posts, err := r.scanPosts()
	if err != nil {
		return nil, err
	}

	var matched []*models.Post
	for _, post := range posts {
		if post.PublishAt.Before(start) || post.PublishAt.After(end) {
			continue
		}
		matched = append(matched, post)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishAt.Before(matched[j].PublishAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *Repository) NextPostRef(t time.Time) (*models.PostReference, error) {
	posts, err := r.scanPosts()
	if err != nil {
		return nil, err
	}
	var next *models.Post
	for _, post := range posts {
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

func (r *Repository) PrevPostRef(t time.Time) (*models.PostReference, error) {
	posts, err := r.scanPosts()
	if err != nil {
		return nil, err
	}
	var prev *models.Post
	for _, post := range posts {
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

// scanPosts iterates the post: keyspace and unmarshals every document.
func (r *Repository) scanPosts() ([]*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Comment aggregate methods

// GetComments loads the aggregate paired with a post. Posts written by
// older tooling may predate their aggregate, so a missing document is
// surfaced as a fresh empty aggregate rather than an error.
func (r *Repository) GetComments(postID int) (*models.PostComments, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	comments := models.PostComments{PostID: postID}
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(commentsKey(postID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comments)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comments, nil
}

func (r *Repository) SaveComments(comments *models.PostComments) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := marshalEntity(comments)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(commentsKey(comments.PostID), data)
	})
}

func (r *Repository) Clear() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.db.DropAll()
}
