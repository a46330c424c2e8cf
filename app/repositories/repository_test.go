package repositories

import (
	"testing"
	"time"

	"blogadmin/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository("")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, repo.Close())
	})
	return repo
}

func TestSavePost(t *testing.T) {
	repo := newTestRepository(t)

	t.Run("assigns id and creates the paired aggregate", func(t *testing.T) {
		post := &models.Post{Title: "First Post", Body: "body", PublishAt: time.Now()}
		require.NoError(t, repo.SavePost(post))
		assert.Equal(t, 1, post.ID)
		assert.Equal(t, 1, post.CommentsID)
		assert.Equal(t, "first-post", post.Slug)

		comments, err := repo.GetComments(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, comments.PostID)
		assert.Empty(t, comments.Comments)
		assert.Empty(t, comments.Spam)
	})

	t.Run("sequential ids", func(t *testing.T) {
		post := &models.Post{Title: "Second Post", Body: "body", PublishAt: time.Now()}
		require.NoError(t, repo.SavePost(post))
		assert.Equal(t, 2, post.ID)
	})

	t.Run("update keeps the id and refreshes the slug", func(t *testing.T) {
		post, err := repo.GetPost(1)
		require.NoError(t, err)

		post.Title = "Renamed Post"
		require.NoError(t, repo.SavePost(post))

		reloaded, err := repo.GetPost(1)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Post", reloaded.Title)
		assert.Equal(t, "renamed-post", reloaded.Slug)
	})
}

func TestGetPost(t *testing.T) {
	repo := newTestRepository(t)

	t.Run("missing post", func(t *testing.T) {
		_, err := repo.GetPost(99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		publishAt := time.Date(2023, 5, 1, 14, 30, 0, 0, time.UTC)
		post := &models.Post{
			Title:     "Round Trip",
			Body:      "body",
			Author:    "alice",
			Tags:      []string{"go", "badger"},
			PublishAt: publishAt,
		}
		require.NoError(t, repo.SavePost(post))

		got, err := repo.GetPost(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, got.Title)
		assert.Equal(t, post.Tags, got.Tags)
		assert.True(t, publishAt.Equal(got.PublishAt))
	})
}

func TestSaveComments(t *testing.T) {
	repo := newTestRepository(t)

	post := &models.Post{Title: "Commented Post", Body: "body", PublishAt: time.Now()}
	require.NoError(t, repo.SavePost(post))

	aggregate := &models.PostComments{
		PostID: post.ID,
		Comments: []models.Comment{
			{ID: 1, Author: "alice", Body: "hello", CreatedAt: time.Now()},
		},
		Spam: []models.Comment{
			{ID: 2, Author: "bot", Body: "click here", CreatedAt: time.Now(), IsSpam: true},
		},
	}
	require.NoError(t, repo.SaveComments(aggregate))

	got, err := repo.GetComments(post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Comments, 1)
	assert.Len(t, got.Spam, 1)
	assert.True(t, got.Spam[0].IsSpam)
}

func TestGetCommentsMissing(t *testing.T) {
	repo := newTestRepository(t)

	// A post without a stored aggregate yields a fresh empty one.
	got, err := repo.GetComments(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got.PostID)
	assert.Empty(t, got.Comments)
	assert.Empty(t, got.Spam)
}

func TestPostsByPublishRange(t *testing.T) {
	repo := newTestRepository(t)

	times := []int64{1000, 2000, 3000}
	for i, unix := range times {
		post := &models.Post{
			Title:     []string{"First Post", "Second Post", "Third Post"}[i],
			Body:      "body",
			PublishAt: time.Unix(unix, 0).UTC(),
		}
		require.NoError(t, repo.SavePost(post))
	}

	t.Run("filters inside the range", func(t *testing.T) {
		posts, err := repo.PostsByPublishRange(time.Unix(1500, 0).UTC(), time.Unix(2500, 0).UTC(), 1000)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Second Post", posts[0].Title)
	})

	t.Run("bounds inclusive and ascending", func(t *testing.T) {
		posts, err := repo.PostsByPublishRange(time.Unix(1000, 0).UTC(), time.Unix(3000, 0).UTC(), 1000)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i].PublishAt.Before(posts[i-1].PublishAt))
		}
	})

	t.Run("limit truncates silently", func(t *testing.T) {
		posts, err := repo.PostsByPublishRange(time.Unix(0, 0).UTC(), time.Unix(4000, 0).UTC(), 2)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
		assert.Equal(t, "First Post", posts[0].Title)
		assert.Equal(t, "Second Post", posts[1].Title)
	})
}

func TestPostRefs(t *testing.T) {
	repo := newTestRepository(t)

	for i, unix := range []int64{1000, 2000, 3000} {
		post := &models.Post{
			Title:     []string{"First Post", "Second Post", "Third Post"}[i],
			Body:      "body",
			PublishAt: time.Unix(unix, 0).UTC(),
		}
		require.NoError(t, repo.SavePost(post))
	}

	t.Run("next after", func(t *testing.T) {
		ref, err := repo.NextPostRef(time.Unix(1500, 0).UTC())
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "second-post", ref.Slug)
	})

	t.Run("prev before", func(t *testing.T) {
		ref, err := repo.PrevPostRef(time.Unix(2500, 0).UTC())
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "second-post", ref.Slug)
	})

	t.Run("strictly after excludes equal times", func(t *testing.T) {
		ref, err := repo.NextPostRef(time.Unix(3000, 0).UTC())
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("strictly before excludes equal times", func(t *testing.T) {
		ref, err := repo.PrevPostRef(time.Unix(1000, 0).UTC())
		require.NoError(t, err)
		assert.Nil(t, ref)
	})
}
