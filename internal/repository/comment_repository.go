package repository

import (
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with its author loaded
func (r *GormCommentRepository) FindByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByProject lists a project's comments with authors, newest first
func (r *GormCommentRepository) ListByProject(projectID uint64) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.Preload("Author").
		Scopes(database.InProject(projectID), database.NewestFirst).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByAuthor deletes a comment within a project written by authorID
func (r *GormCommentRepository) DeleteByAuthor(id, projectID, authorID uint64) error {
	result := r.db.Scopes(database.InProject(projectID), database.OwnedBy(authorID)).
		Where("id = ?", id).
		Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
