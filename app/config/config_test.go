package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOG_ADDR", "")
	t.Setenv("BLOG_DB_PATH", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/badger", cfg.DBPath)
	assert.Equal(t, "http://localhost:8080", cfg.SiteURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BLOG_ADDR", ":9999")
	t.Setenv("BLOG_DB_PATH", "/tmp/blog")
	t.Setenv("AKISMET_KEY", "secret")
	t.Setenv("BLOG_ADMIN_USER", "admin")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/tmp/blog", cfg.DBPath)
	assert.Equal(t, "secret", cfg.AkismetKey)
	assert.Equal(t, "admin", cfg.AdminUser)
}
