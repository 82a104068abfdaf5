package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// CommentDTO represents a comment with its author in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	ProjectID uint64    `json:"projectId"`
	Author    AuthorDTO `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCommentDTO converts a Comment model to CommentDTO.
// The author's username is empty unless Author was preloaded.
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		ProjectID: comment.ProjectID,
		Author: AuthorDTO{
			ID:       comment.UserID,
			Username: comment.Author.Username,
		},
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments, never returning nil
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	items := make([]CommentDTO, len(comments))
	for i, c := range comments {
		items[i] = ToCommentDTO(c)
	}
	return items
}
