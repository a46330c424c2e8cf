package services

import (
	"fmt"
	"log"

	"blogadmin/app/models"
	"blogadmin/app/repositories"
)

// SpamFeedback reports moderation decisions back to the external spam
// classifier. Calls are best-effort from the workflow's perspective: a
// failed report never rolls back an already saved aggregate.
type SpamFeedback interface {
	ReportSpam(comment *models.Comment) error
	ReportHam(comment *models.Comment) error
}

// ModerationService applies bulk moderation commands to a post's
// comment aggregate
type ModerationService struct {
	commentsRepo repositories.CommentsRepository
	feedback     SpamFeedback
}

// NewModerationService creates a new ModerationService
func NewModerationService(commentsRepo repositories.CommentsRepository, feedback SpamFeedback) *ModerationService {
	return &ModerationService{
		commentsRepo: commentsRepo,
		feedback:     feedback,
	}
}

// Moderate validates the selection, applies the command to the post's
// aggregate and persists it. Validation failures happen before the
// store is touched, so a rejected request mutates nothing.
func (s *ModerationService) Moderate(postID int, cmd models.ModerationCommand, commentIDs []int) (*models.PostComments, error) {
	if len(commentIDs) == 0 {
		ve := &ValidationError{}
		ve.Add("no comments were selected")
		return nil, ve
	}

	comments, err := s.commentsRepo.GetComments(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments for post %d: %v", postID, err)
	}

	affected := comments.Apply(cmd, commentIDs)

	if err := s.commentsRepo.SaveComments(comments); err != nil {
		return nil, fmt.Errorf("failed to save comments for post %d: %v", postID, err)
	}

	// Feedback is fire-and-forget: the aggregate is already committed,
	// a failed report only gets logged.
	for i := range affected {
		comment := &affected[i]
		var err error
		switch cmd {
		case models.CommandMarkSpam:
			err = s.feedback.ReportSpam(comment)
		case models.CommandMarkHam:
			err = s.feedback.ReportHam(comment)
		}
		if err != nil {
			log.Printf("spam feedback for comment %d failed: %v", comment.ID, err)
		}
	}

	return comments, nil
}
