// Package akismet reports moderation decisions to an Akismet-compatible
// spam classification service.
package akismet

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogadmin/app/models"
)

// Client submits spam/ham feedback for comments. It satisfies
// services.SpamFeedback.
type Client struct {
	key     string
	site    string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a feedback client for the given API key and blog
// site URL.
func NewClient(key, site string) *Client {
	return &Client{
		key:     key,
		site:    site,
		baseURL: fmt.Sprintf("https://%s.rest.akismet.com/1.1", key),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL creates a feedback client against a custom API
// endpoint. Used by tests to point at a local server.
func NewClientWithBaseURL(key, site, baseURL string) *Client {
	c := NewClient(key, site)
	c.baseURL = baseURL
	return c
}

// Enabled reports whether the client has an API key to submit with.
func (c *Client) Enabled() bool {
	return c.key != ""
}

// ReportSpam submits a comment as spam
func (c *Client) ReportSpam(comment *models.Comment) error {
	return c.submit("submit-spam", comment)
}

// ReportHam submits a comment as ham
func (c *Client) ReportHam(comment *models.Comment) error {
	return c.submit("submit-ham", comment)
}

func (c *Client) submit(endpoint string, comment *models.Comment) error {
	if !c.Enabled() {
		return nil
	}

	form := url.Values{}
	form.Set("blog", c.site)
	form.Set("comment_type", "comment")
	form.Set("comment_author", comment.Author)
	form.Set("comment_author_email", comment.Email)
	form.Set("comment_content", comment.Body)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/"+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %v", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %v", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}
	return nil
}
