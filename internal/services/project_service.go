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
	ErrProjectFieldsRequired = errors.New("title and description are required")
	ErrInvalidProjectStatus  = errors.New("invalid project status")
	ErrInvalidPriority       = errors.New("invalid priority")
	ErrInvalidLink           = errors.New("links need both name and url")
)

// ProjectService provides business logic for project operations.
// Every operation is scoped to the requesting owner.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	guard       *OwnershipGuard
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, guard *OwnershipGuard) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		guard:       guard,
	}
}

// ProjectInput carries every editable project field. Create and Update
// both treat it as the complete new state of the project.
type ProjectInput struct {
	Title       string
	Description string
	Status      models.ProjectStatus
	Priority    models.Priority
	Image       string
	Links       []models.Link
}

// normalize trims text, applies enum defaults and validates the result.
func (in ProjectInput) normalize() (ProjectInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)

	if in.Title == "" || in.Description == "" {
		return in, ErrProjectFieldsRequired
	}

	if in.Status == "" {
		in.Status = models.ProjectStatusTodo
	}
	if !in.Status.Valid() {
		return in, ErrInvalidProjectStatus
	}

	priority, err := normalizePriority(in.Priority)
	if err != nil {
		return in, err
	}
	in.Priority = priority

	links := make([]models.Link, 0, len(in.Links))
	for _, l := range in.Links {
		l.Name = strings.TrimSpace(l.Name)
		l.URL = strings.TrimSpace(l.URL)
		if l.Name == "" || l.URL == "" {
			return in, ErrInvalidLink
		}
		links = append(links, l)
	}
	in.Links = links

	return in, nil
}

func normalizePriority(p models.Priority) (models.Priority, error) {
	if p == "" {
		return models.PriorityMedium, nil
	}
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// ListProjects returns the owner's projects, newest first.
func (s *ProjectService) ListProjects(ownerID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project owned by ownerID.
func (s *ProjectService) GetProject(projectID, ownerID uint64) (*models.Project, error) {
	return s.guard.RequireOwnedProject(projectID, ownerID)
}

// CreateProject creates a project owned by ownerID.
func (s *ProjectService) CreateProject(input ProjectInput, ownerID uint64) (*models.Project, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Image:       input.Image,
		Links:       input.Links,
		UserID:      ownerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// UpdateProject overwrites every editable field of an owned project.
func (s *ProjectService) UpdateProject(projectID uint64, input ProjectInput, ownerID uint64) (*models.Project, error) {
	project, err := s.guard.RequireOwnedProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}

	input, err = input.normalize()
	if err != nil {
		return nil, err
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Status = input.Status
	project.Priority = input.Priority
	project.Image = input.Image
	project.Links = input.Links

	if err := s.projectRepo.UpdateOwned(project); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject deletes an owned project along with its tasks and comments.
func (s *ProjectService) DeleteProject(projectID, ownerID uint64) error {
	if err := s.projectRepo.DeleteOwned(projectID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
