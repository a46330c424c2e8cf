// Package config loads the application's environment configuration.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the serve command needs to wire the app.
type Config struct {
	Addr              string
	DBPath            string
	SiteURL           string
	AkismetKey        string
	AdminUser         string
	AdminPasswordHash string
	// BasePath locates app/views; empty when running from the repo root.
	BasePath string
}

// Load reads the optional .env file and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Addr:              getenv("BLOG_ADDR", ":8080"),
		DBPath:            getenv("BLOG_DB_PATH", "data/badger"),
		SiteURL:           getenv("BLOG_SITE_URL", "http://localhost:8080"),
		AkismetKey:        os.Getenv("AKISMET_KEY"),
		AdminUser:         os.Getenv("BLOG_ADMIN_USER"),
		AdminPasswordHash: os.Getenv("BLOG_ADMIN_PASSWORD_HASH"),
		BasePath:          os.Getenv("BLOG_BASE_PATH"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
