package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// UploadHandler stores uploaded images.
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage accepts a multipart "image" field and returns its public URL.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile(constants.UploadFormField)
	if err != nil {
		h.respondUploadError(c, services.ErrNoFileUploaded)
		return
	}

	url, err := h.uploadService.SaveImage(header)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Message:  "Imagen subida exitosamente",
		ImageURL: url,
	})
}

func (h *UploadHandler) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoFileUploaded):
		apierrors.BadRequest(c, "No se subió ningún archivo")
	case errors.Is(err, services.ErrFileTooLarge):
		apierrors.BadRequest(c, fmt.Sprintf("El archivo excede el tamaño maximo permitido (%d bytes)", h.uploadService.MaxBytes()))
	case errors.Is(err, services.ErrUnsupportedFileType):
		apierrors.BadRequest(c, "Solo se permiten imagenes")
	default:
		apierrors.InternalError(c, msgServerError, err)
	}
}
