package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"blogadmin/app/models"
	"blogadmin/app/repositories"
	"blogadmin/app/services"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// AdminController handles the administrative HTTP surface for posts and
// comment moderation. All collaborators arrive through the constructor;
// there is no shared session state.
type AdminController struct {
	postService       *services.PostService
	moderationService *services.ModerationService
	templates         map[string]*template.Template
	sanitizer         *bluemonday.Policy
}

// NewAdminController creates a new AdminController. basePath locates
// the app/views directory, empty for the repository root.
func NewAdminController(postService *services.PostService, moderationService *services.ModerationService, basePath string) *AdminController {
	return &AdminController{
		postService:       postService,
		moderationService: moderationService,
		templates:         loadAdminTemplates(basePath),
		sanitizer:         bluemonday.UGCPolicy(),
	}
}

// loadAdminTemplates loads and parses all admin templates
func loadAdminTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["list"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/admin/list.html"),
	))
	templates["details"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/admin/details.html"),
		filepath.Join(basePath, "app/views/shared/comments.html"),
	))
	templates["edit"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/admin/edit.html"),
	))
	return templates
}

// DetailsViewModel is the data handed to the details template.
type DetailsViewModel struct {
	Post           *models.Post
	BodyHTML       template.HTML
	Comments       []models.Comment
	PreviousPost   *models.PostReference
	NextPost       *models.PostReference
	CommentsClosed bool
	Errors         []string
}

// EditViewModel is the data handed to the edit template.
type EditViewModel struct {
	Input  services.PostInput
	Errors []string
}

// List handles the admin post listing
func (ac *AdminController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := ac.postService.Feed(0, time.Now().Unix())
	if err != nil {
		ac.sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if isAjax(r) {
		ac.sendJSON(w, posts)
		return
	}

	data := struct {
		Posts []services.PostSummary
	}{Posts: posts}
	ac.render(w, r, "list", data)
}

// Details handles the admin view of a single post with its full comment
// aggregate. A request with a stale slug gets a permanent redirect to
// the canonical address before any comments are loaded.
func (ac *AdminController) Details(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		ac.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := ac.postService.GetPost(id)
	if err == repositories.ErrNotFound {
		ac.sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.sendError(w, r, "Failed to load post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !post.MatchesSlug(vars["slug"]) {
		http.Redirect(w, r, detailsPath(post.Reference()), http.StatusMovedPermanently)
		return
	}

	ac.renderDetails(w, r, post, nil)
}

// renderDetails assembles and renders the details view for a loaded
// post, optionally carrying validation messages from a rejected action.
func (ac *AdminController) renderDetails(w http.ResponseWriter, r *http.Request, post *models.Post, problems []string) {
	comments, err := ac.postService.GetComments(post.ID)
	if err != nil {
		ac.sendError(w, r, "Failed to load comments: "+err.Error(), http.StatusInternalServerError)
		return
	}

	prev, next, err := ac.postService.Neighbors(post)
	if err != nil {
		ac.sendError(w, r, "Failed to resolve neighbors: "+err.Error(), http.StatusInternalServerError)
		return
	}

	vm := DetailsViewModel{
		Post:           post,
		BodyHTML:       ac.renderBody(post.Body),
		Comments:       comments.All(),
		PreviousPost:   prev,
		NextPost:       next,
		CommentsClosed: ac.postService.CommentsClosed(comments, time.Now()),
		Errors:         problems,
	}

	if isAjax(r) {
		ac.sendJSON(w, vm)
		return
	}
	ac.render(w, r, "details", vm)
}

// renderBody converts the markdown post body into sanitized HTML.
func (ac *AdminController) renderBody(body string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		log.Printf("markdown rendering failed: %v", err)
		return template.HTML(template.HTMLEscapeString(body))
	}
	return template.HTML(ac.sanitizer.SanitizeBytes(buf.Bytes()))
}

// ListFeed handles the machine-readable post feed
func (ac *AdminController) ListFeed(w http.ResponseWriter, r *http.Request) {
	start, err := strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	if err != nil {
		ac.sendError(w, r, "Invalid start timestamp", http.StatusBadRequest)
		return
	}
	end, err := strconv.ParseInt(r.URL.Query().Get("end"), 10, 64)
	if err != nil {
		ac.sendError(w, r, "Invalid end timestamp", http.StatusBadRequest)
		return
	}

	posts, err := ac.postService.Feed(start, end)
	if err != nil {
		ac.sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ac.sendJSON(w, posts)
}

// Edit handles the edit form for an existing post
func (ac *AdminController) Edit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		ac.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := ac.postService.GetPost(id)
	if err == repositories.ErrNotFound {
		ac.sendError(w, r, "Post does not exist.", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.sendError(w, r, "Failed to load post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	vm := EditViewModel{Input: services.PostInput{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		Author:    post.Author,
		Tags:      post.Tags,
		PublishAt: post.PublishAt,
	}}
	ac.render(w, r, "edit", vm)
}

// Update handles the post update form. A payload without an id creates
// a fresh post, so update doubles as create.
func (ac *AdminController) Update(w http.ResponseWriter, r *http.Request) {
	input, err := parsePostInput(r)
	if err != nil {
		ac.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := ac.postService.UpdatePost(input)
	if ve, ok := services.AsValidation(err); ok {
		if isAjax(r) {
			ac.sendJSONStatus(w, http.StatusBadRequest, map[string]interface{}{"success": false, "errors": ve.Problems})
			return
		}
		ac.render(w, r, "edit", EditViewModel{Input: input, Errors: ve.Problems})
		return
	}
	if err != nil {
		ac.sendError(w, r, "Failed to update post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, detailsPath(post.Reference()), http.StatusSeeOther)
}

// parsePostInput reads the update payload from either JSON or a form.
func parsePostInput(r *http.Request) (services.PostInput, error) {
	var input services.PostInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	if err := r.ParseForm(); err != nil {
		return input, err
	}
	if idStr := r.FormValue("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return input, fmt.Errorf("invalid post id %q", idStr)
		}
		input.ID = id
	}
	input.Title = r.FormValue("title")
	input.Body = r.FormValue("body")
	input.Author = r.FormValue("author")
	if tags := r.FormValue("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				input.Tags = append(input.Tags, tag)
			}
		}
	}
	if publishAt := r.FormValue("publish_at"); publishAt != "" {
		t, err := time.Parse(time.RFC3339, publishAt)
		if err != nil {
			return input, fmt.Errorf("invalid publish_at %q", publishAt)
		}
		input.PublishAt = t
	}
	return input, nil
}

// SetPostDate handles the publish-date picker: it moves the post to a
// new calendar date while keeping its time-of-day.
func (ac *AdminController) SetPostDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		ac.sendJSON(w, map[string]bool{"success": false})
		return
	}

	if err := r.ParseForm(); err != nil {
		ac.sendJSON(w, map[string]bool{"success": false})
		return
	}
	date, err := strconv.ParseInt(r.FormValue("date"), 10, 64)
	if err != nil {
		ac.sendJSON(w, map[string]bool{"success": false})
		return
	}

	if err := ac.postService.SetPostDate(id, date); err != nil {
		ac.sendJSON(w, map[string]bool{"success": false})
		return
	}
	ac.sendJSON(w, map[string]bool{"success": true})
}

// CommentsAdmin handles bulk comment moderation. Validation runs before
// any store access; a rejected request re-renders the details view (or
// returns a failure payload for AJAX callers) without mutating state.
func (ac *AdminController) CommentsAdmin(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		ac.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	problems := &services.ValidationError{}

	var commentIDs []int
	for _, raw := range r.Form["commentIds"] {
		commentID, err := strconv.Atoi(raw)
		if err != nil {
			problems.Add(fmt.Sprintf("invalid comment id %q", raw))
			continue
		}
		commentIDs = append(commentIDs, commentID)
	}
	if len(commentIDs) == 0 {
		problems.Add("no comments were selected")
	}

	cmd, err := models.ParseModerationCommand(r.FormValue("command"))
	if err != nil {
		problems.Add(err.Error())
	}

	post, err := ac.postService.GetPost(id)
	if err == repositories.ErrNotFound {
		ac.sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.sendError(w, r, "Failed to load post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if problems.HasProblems() {
		if isAjax(r) {
			ac.sendJSONStatus(w, http.StatusBadRequest, map[string]interface{}{"success": false, "errors": problems.Problems})
			return
		}
		ac.renderDetails(w, r, post, problems.Problems)
		return
	}

	if _, err := ac.moderationService.Moderate(id, cmd, commentIDs); err != nil {
		ac.sendError(w, r, "Failed to moderate comments: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if isAjax(r) {
		ac.sendJSON(w, map[string]bool{"success": true})
		return
	}
	http.Redirect(w, r, detailsPath(post.Reference()), http.StatusSeeOther)
}

// Delete handles the post delete action. Post removal is intentionally
// not wired up; the action only returns to the listing.
func (ac *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// Helper methods for consistent response handling

func detailsPath(ref models.PostReference) string {
	return fmt.Sprintf("/admin/posts/%d/%s", ref.ID, ref.Slug)
}

func isAjax(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" ||
		r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

func (ac *AdminController) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if err := ac.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		ac.sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

func (ac *AdminController) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (ac *AdminController) sendJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (ac *AdminController) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAjax(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}
