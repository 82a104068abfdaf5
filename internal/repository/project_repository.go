package repository

import (
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// projectEditableColumns are overwritten on every update.
var projectEditableColumns = []string{"title", "description", "status", "priority", "image", "links", "updated_at"}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindOwned finds a project by ID that belongs to userID
func (r *GormProjectRepository) FindOwned(id, userID uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Scopes(database.OwnedBy(userID)).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOwner lists a user's projects, newest first
func (r *GormProjectRepository) ListByOwner(userID uint64) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.Scopes(database.OwnedBy(userID), database.NewestFirst).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateOwned overwrites every editable field of an owned project.
// It returns gorm.ErrRecordNotFound when the row vanished since it was read.
func (r *GormProjectRepository) UpdateOwned(project *models.Project) error {
	result := r.db.Model(project).
		Scopes(database.OwnedBy(project.UserID)).
		Select(projectEditableColumns).
		Updates(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOwned deletes an owned project and its tasks and comments in a transaction
func (r *GormProjectRepository) DeleteOwned(id, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(database.OwnedBy(userID)).Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Scopes(database.InProject(id)).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Scopes(database.InProject(id)).Delete(&models.Comment{}).Error
	})
}
