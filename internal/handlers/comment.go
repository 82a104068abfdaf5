package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// CommentHandler handles comments nested under a project.
type CommentHandler struct {
	commentService *services.CommentService
	guard          *services.OwnershipGuard
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, guard *services.OwnershipGuard) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		guard:          guard,
	}
}

// ListComments returns the comments of an owned project with their authors.
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}
	projectID, ok := requireProjectParam(c, "projectId")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(projectID, userID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// CreateComment adds a comment authored by the requester.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	type CreateCommentRequest struct {
		Content string `json:"content"`
	}

	userID, projectID, ok := requireOwnedProject(c, h.guard, "projectId")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(req.Content, projectID, userID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// DeleteComment deletes one of the requester's comments.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := requireRequester(c)
	if !ok {
		return
	}
	projectID, ok := requireProjectParam(c, "projectId")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(nestedID(c, "commentId"), projectID, userID); err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Comentario eliminado correctamente"})
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, msgProjectNotFound)
	case errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, "Comentario no encontrado")
	case errors.Is(err, services.ErrCommentContentMissing):
		apierrors.BadRequest(c, "Contenido es requerido")
	default:
		apierrors.InternalError(c, msgServerError, err)
	}
}
