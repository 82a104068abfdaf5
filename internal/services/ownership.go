package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// ErrProjectNotFound covers both a missing project and one owned by someone
// else; callers cannot tell the two apart.
var ErrProjectNotFound = errors.New("project not found")

// OwnershipGuard resolves a project on behalf of a requester.
type OwnershipGuard struct {
	projectRepo repository.ProjectRepository
}

// NewOwnershipGuard creates a new OwnershipGuard.
func NewOwnershipGuard(projectRepo repository.ProjectRepository) *OwnershipGuard {
	return &OwnershipGuard{projectRepo: projectRepo}
}

// RequireOwnedProject returns the project only if requesterID owns it.
// Task and comment operations call it before touching anything nested.
func (g *OwnershipGuard) RequireOwnedProject(projectID, requesterID uint64) (*models.Project, error) {
	project, err := g.projectRepo.FindOwned(projectID, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
