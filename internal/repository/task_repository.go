package repository

import (
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

var taskEditableColumns = []string{"title", "description", "completed", "priority", "image", "due_date", "updated_at"}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindInProject finds a task by ID within a project
func (r *GormTaskRepository) FindInProject(id, projectID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(database.InProject(projectID)).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists a project's tasks, newest first
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.Scopes(database.InProject(projectID), database.NewestFirst).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update overwrites every editable field of a task within its project.
// It returns gorm.ErrRecordNotFound when the row vanished since it was read.
func (r *GormTaskRepository) Update(task *models.Task) error {
	result := r.db.Model(task).
		Scopes(database.InProject(task.ProjectID)).
		Select(taskEditableColumns).
		Updates(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInProject deletes a task within a project
func (r *GormTaskRepository) DeleteInProject(id, projectID uint64) error {
	result := r.db.Scopes(database.InProject(projectID)).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
