package repository

import (
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsernameOrEmail finds any user holding either the username or the email
	FindByUsernameOrEmail(username, email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access.
// Every lookup and mutation is scoped by the owning user.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindOwned finds a project by ID that belongs to userID
	FindOwned(id, userID uint64) (*models.Project, error)

	// ListByOwner lists a user's projects, newest first
	ListByOwner(userID uint64) ([]models.Project, error)

	// UpdateOwned overwrites every editable field of an owned project
	UpdateOwned(project *models.Project) error

	// DeleteOwned deletes an owned project together with its tasks and comments
	DeleteOwned(id, userID uint64) error
}

// TaskRepository defines the interface for task data access.
// Every lookup and mutation is scoped by the containing project.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindInProject finds a task by ID within a project
	FindInProject(id, projectID uint64) (*models.Task, error)

	// ListByProject lists a project's tasks, newest first
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update overwrites every editable field of a task within its project
	Update(task *models.Task) error

	// DeleteInProject deletes a task within a project
	DeleteInProject(id, projectID uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with its author loaded
	FindByID(id uint64) (*models.Comment, error)

	// ListByProject lists a project's comments with authors, newest first
	ListByProject(projectID uint64) ([]models.Comment, error)

	// DeleteByAuthor deletes a comment within a project written by authorID
	DeleteByAuthor(id, projectID, authorID uint64) error
}
