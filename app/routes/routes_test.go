package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogadmin/app/config"
	"blogadmin/app/models"
	"blogadmin/app/repositories"
	"blogadmin/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

type noopFeedback struct{}

func (noopFeedback) ReportSpam(*models.Comment) error { return nil }
func (noopFeedback) ReportHam(*models.Comment) error  { return nil }

func setupTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	repo, err := repositories.NewRepository("")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	post := &models.Post{Title: "Hello World", Body: "body", PublishAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.SavePost(post))

	postService := services.NewPostService(repo, repo)
	moderationService := services.NewModerationService(repo, noopFeedback{})

	// Templates live two directories up from this package.
	cfg.BasePath = "../.."
	return SetupAdminRoutes(cfg, postService, moderationService)
}

func TestAdminRoutes(t *testing.T) {
	router := setupTestRouter(t, &config.Config{})

	t.Run("listing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/posts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hello World")
	})

	t.Run("details dispatches with id and slug", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/posts/1/hello-world", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("feed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/posts/feed?start=0&end=9999999999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("unknown route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/unknown", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminRoutesAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	router := setupTestRouter(t, &config.Config{
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/posts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts valid credentials", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/posts", nil)
		req.SetBasicAuth("admin", "hunter2")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
