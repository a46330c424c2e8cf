package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.PublishAt.IsZero() {
		return errors.New("publish_at cannot be zero")
	}

	return nil
}

// BeforeSave sets up derived fields before the post is persisted
func (p *Post) BeforeSave() {
	if p.PublishAt.IsZero() {
		p.PublishAt = time.Now()
	}
	p.Slug = TitleToSlug(p.Title)
}

// Reference returns the redirect identity for the post. The slug is
// recomputed from the current title, never read from the stored field.
func (p *Post) Reference() PostReference {
	return PostReference{ID: p.ID, Slug: TitleToSlug(p.Title)}
}

// MatchesSlug reports whether the request-supplied slug addresses this
// post canonically. The stored Slug field is ignored because the title
// may have changed since the post was last saved.
func (p *Post) MatchesSlug(slug string) bool {
	return TitleToSlug(p.Title) == slug
}
