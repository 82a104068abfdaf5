package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrTitleEmpty             = errors.New("title cannot be empty")
	ErrSuggestTextRequired    = errors.New("text is required")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic. Every operation first resolves
// the parent project through the ownership guard.
type TaskService struct {
	taskRepo  repository.TaskRepository
	guard     *OwnershipGuard
	suggester TaskSuggester
}

// NewTaskService creates a new TaskService. suggester may be nil.
func NewTaskService(taskRepo repository.TaskRepository, guard *OwnershipGuard, suggester TaskSuggester) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		guard:     guard,
		suggester: suggester,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.Priority
	Image       string
	DueDate     *time.Time
}

// UpdateTaskInput represents input for updating a task. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *models.Priority
	Image        *string
	DueDate      *time.Time
	ClearDueDate bool
}

// SuggestTasksInput represents input for AI task suggestions
type SuggestTasksInput struct {
	Text string
}

// ListTasks returns a project's tasks, newest first.
func (s *TaskService) ListTasks(projectID, ownerID uint64) ([]models.Task, error) {
	if _, err := s.guard.RequireOwnedProject(projectID, ownerID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task inside an owned project.
func (s *TaskService) CreateTask(input CreateTaskInput, projectID, ownerID uint64) (*models.Task, error) {
	if _, err := s.guard.RequireOwnedProject(projectID, ownerID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Image:       strings.TrimSpace(input.Image),
		DueDate:     input.DueDate,
		ProjectID:   projectID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask updates the provided fields of a task inside an owned project.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput, projectID, ownerID uint64) (*models.Task, error) {
	if _, err := s.guard.RequireOwnedProject(projectID, ownerID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindInProject(taskID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.Priority != nil {
		priority, err := normalizePriority(*input.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = priority
	}
	if input.Image != nil {
		task.Image = strings.TrimSpace(*input.Image)
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task inside an owned project.
func (s *TaskService) DeleteTask(taskID, projectID, ownerID uint64) error {
	if _, err := s.guard.RequireOwnedProject(projectID, ownerID); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteInProject(taskID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// SuggestTasks drafts tasks for an owned project from free text. Nothing is
// persisted; the client creates the drafts it keeps.
func (s *TaskService) SuggestTasks(ctx context.Context, input SuggestTasksInput, projectID, ownerID uint64) ([]GeneratedTask, error) {
	project, err := s.guard.RequireOwnedProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrSuggestTextRequired
	}
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.suggester.SuggestTasks(ctx, *project, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		aiTasks = aiTasks[:constants.MaxAIGeneratedTasks]
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		aiTask.Title = strings.TrimSpace(aiTask.Title)
		if aiTask.Title == "" {
			continue
		}

		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}
		if !aiTask.Priority.Valid() {
			aiTask.Priority = models.PriorityMedium
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}
