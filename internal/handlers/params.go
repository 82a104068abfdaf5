package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

const (
	msgInvalidBody     = "Cuerpo de solicitud inválido"
	msgProjectNotFound = "Proyecto no encontrado"
	msgInvalidPriority = "Prioridad invalida"
	msgServerError     = "Error en el servidor"
	msgInvalidFields   = "Campos invalidos"
)

// parseID parses a path parameter as a positive ID.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// nestedID parses the ID of a task or comment. A malformed value becomes 0,
// which matches no row, so the ownership check on the parent project still
// decides the outcome before the nested lookup reports it missing.
func nestedID(c *gin.Context, name string) uint64 {
	id, _ := parseID(c, name)
	return id
}

// requireRequester returns the authenticated user ID or writes a 401.
func requireRequester(c *gin.Context) (uint64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return 0, false
	}
	return userID, true
}

// requireProjectParam parses a project ID path parameter or writes a 404;
// a malformed ID cannot name a project the requester owns.
func requireProjectParam(c *gin.Context, name string) (uint64, bool) {
	id, ok := parseID(c, name)
	if !ok {
		apierrors.NotFound(c, msgProjectNotFound)
		return 0, false
	}
	return id, true
}

// parseDueDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
func parseDueDate(value string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q", value)
	}
	return &t, nil
}

// requireOwnedProject resolves the requester and the project path parameter,
// then runs the ownership check. Handlers that read a request body call it
// first so a foreign or missing project is reported before the body.
func requireOwnedProject(c *gin.Context, guard *services.OwnershipGuard, name string) (userID, projectID uint64, ok bool) {
	userID, ok = requireRequester(c)
	if !ok {
		return 0, 0, false
	}
	projectID, ok = requireProjectParam(c, name)
	if !ok {
		return 0, 0, false
	}

	if _, err := guard.RequireOwnedProject(projectID, userID); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, msgProjectNotFound)
		} else {
			apierrors.InternalError(c, msgServerError, err)
		}
		return 0, 0, false
	}
	return userID, projectID, true
}

// respondBindError reports a failed bind. Validation failures list the
// offending fields; anything else is a malformed body.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		apierrors.BadRequest(c, msgInvalidBody)
		return
	}

	details := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, gin.H{
			"field": fe.Field(),
			"rule":  fe.Tag(),
			"param": fe.Param(),
		})
	}
	apierrors.BadRequestWithDetails(c, msgInvalidFields, details)
}
