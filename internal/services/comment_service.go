package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrCommentContentMissing = errors.New("content is required")
)

// CommentService handles comment business logic. Every operation first
// resolves the parent project through the ownership guard.
type CommentService struct {
	commentRepo repository.CommentRepository
	guard       *OwnershipGuard
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, guard *OwnershipGuard) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		guard:       guard,
	}
}

// ListComments returns a project's comments with their authors, newest first.
func (s *CommentService) ListComments(projectID, ownerID uint64) ([]models.Comment, error) {
	if _, err := s.guard.RequireOwnedProject(projectID, ownerID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CreateComment adds a comment authored by the requester.
func (s *CommentService) CreateComment(content string, projectID, ownerID uint64) (*models.Comment, error) {
	if _, err := s.guard.RequireOwnedProject(projectID, ownerID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentContentMissing
	}

	comment := &models.Comment{
		Content:   content,
		ProjectID: projectID,
		UserID:    ownerID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	created, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload comment: %w", err)
	}
	return created, nil
}

// DeleteComment deletes a comment in an owned project, provided the
// requester wrote it.
func (s *CommentService) DeleteComment(commentID, projectID, requesterID uint64) error {
	if _, err := s.guard.RequireOwnedProject(projectID, requesterID); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByAuthor(commentID, projectID, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
