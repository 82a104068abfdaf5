package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

const msgInvalidDueDate = "Fecha limite invalida"

// fieldError is a client-facing message for a malformed request field.
type fieldError string

func (e fieldError) Error() string { return string(e) }

// TaskHandler handles tasks nested under a project.
type TaskHandler struct {
	taskService *services.TaskService
	guard       *services.OwnershipGuard
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, guard *services.OwnershipGuard) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		guard:       guard,
	}
}

// ListTasks returns the tasks of an owned project.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}
	projectID, ok := requireProjectParam(c, "projectId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(projectID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a task in an owned project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string          `json:"title" binding:"max=255"`
		Description string          `json:"description"`
		Priority    models.Priority `json:"priority"`
		Image       string          `json:"image" binding:"max=512"`
		DueDate     *string         `json:"dueDate"`
	}

	userID, projectID, ok := requireOwnedProject(c, h.guard, "projectId")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Image:       req.Image,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, msgInvalidDueDate)
			return
		}
		input.DueDate = dueDate
	}

	task, err := h.taskService.CreateTask(input, projectID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates only the fields present in the request body.
// An explicit "dueDate": null clears the due date.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, projectID, ok := requireOwnedProject(c, h.guard, "projectId")
	if !ok {
		return
	}
	taskID := nestedID(c, "taskId")

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		respondBindError(c, err)
		return
	}

	input, err := updateTaskInputFromRaw(rawReq)
	if err != nil {
		if errors.As(err, new(fieldError)) {
			apierrors.BadRequest(c, err.Error())
		} else {
			respondBindError(c, err)
		}
		return
	}

	task, err := h.taskService.UpdateTask(taskID, input, projectID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func updateTaskInputFromRaw(raw map[string]any) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, fieldError("Titulo invalido")
		}
		input.Title = &s
	}
	if v, ok := raw["description"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return input, fieldError("Descripcion invalida")
		}
		input.Description = &s
	}
	if v, ok := raw["completed"]; ok {
		b, ok := v.(bool)
		if !ok {
			return input, fieldError("Completado debe ser booleano")
		}
		input.Completed = &b
	}
	if v, ok := raw["priority"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return input, fieldError(msgInvalidPriority)
		}
		p := models.Priority(s)
		input.Priority = &p
	}
	if v, ok := raw["image"]; ok {
		s, _ := v.(string)
		input.Image = &s
	}
	if v, ok := raw["dueDate"]; ok {
		switch d := v.(type) {
		case nil:
			input.ClearDueDate = true
		case string:
			if d == "" {
				input.ClearDueDate = true
				break
			}
			dueDate, err := parseDueDate(d)
			if err != nil {
				return input, fieldError(msgInvalidDueDate)
			}
			input.DueDate = dueDate
		default:
			return input, fieldError(msgInvalidDueDate)
		}
	}

	limits := struct {
		Title *string `binding:"omitempty,max=255"`
		Image *string `binding:"omitempty,max=512"`
	}{Title: input.Title, Image: input.Image}
	if err := binding.Validator.ValidateStruct(&limits); err != nil {
		return input, err
	}

	return input, nil
}

// DeleteTask deletes a task from an owned project.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}
	projectID, ok := requireProjectParam(c, "projectId")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(nestedID(c, "taskId"), projectID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Tarea eliminada correctamente"})
}

// SuggestTasks drafts tasks for an owned project from free text.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	type SuggestTasksRequest struct {
		Text string `json:"text"`
	}

	userID, projectID, ok := requireOwnedProject(c, h.guard, "projectId")
	if !ok {
		return
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	drafts, err := h.taskService.SuggestTasks(c.Request.Context(), services.SuggestTasksInput{Text: req.Text}, projectID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": drafts})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, msgProjectNotFound)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Tarea no encontrada")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Titulo es requerido")
	case errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequest(c, "El titulo no puede estar vacio")
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, msgInvalidPriority)
	case errors.Is(err, services.ErrSuggestTextRequired):
		apierrors.BadRequest(c, "Texto es requerido")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "Servicio de IA no configurado")
	case errors.Is(err, services.ErrAINoTasksGenerated), errors.Is(err, services.ErrAINoValidTasks):
		apierrors.BadRequest(c, "No se pudieron generar tareas a partir del texto")
	default:
		apierrors.InternalError(c, msgServerError, err)
	}
}
