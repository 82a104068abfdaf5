package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// ProjectHandler handles project CRUD.
type ProjectHandler struct {
	projectService *services.ProjectService
	guard          *services.OwnershipGuard
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, guard *services.OwnershipGuard) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		guard:          guard,
	}
}

type projectRequest struct {
	Title       string               `json:"title" binding:"max=255"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	Priority    models.Priority      `json:"priority"`
	Image       string               `json:"image" binding:"max=512"`
	Links       []models.Link        `json:"links"`
}

func (r projectRequest) toInput() services.ProjectInput {
	return services.ProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Image:       r.Image,
		Links:       r.Links,
	}
}

// ListProjects returns the requester's projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns a single owned project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}
	projectID, ok := requireProjectParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project owned by the requester.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(req.toInput(), userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject replaces every editable field of an owned project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, projectID, ok := requireOwnedProject(c, h.guard, "id")
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(projectID, req.toInput(), userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes an owned project with its tasks and comments.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}
	projectID, ok := requireProjectParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Proyecto eliminado correctamente"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, msgProjectNotFound)
	case errors.Is(err, services.ErrProjectFieldsRequired):
		apierrors.BadRequest(c, "Titulo y descripcion son requeridos")
	case errors.Is(err, services.ErrInvalidProjectStatus):
		apierrors.BadRequest(c, "Estado de proyecto invalido")
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, msgInvalidPriority)
	case errors.Is(err, services.ErrInvalidLink):
		apierrors.BadRequest(c, "Cada enlace necesita nombre y url")
	default:
		apierrors.InternalError(c, msgServerError, err)
	}
}
