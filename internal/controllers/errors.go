package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto its HTTP status and API error body.
// A domain error carrying its own code keeps it; otherwise the code follows the status.
func respondWithError(ctx *gin.Context, err error) {
	status, code := http.StatusInternalServerError, models.ErrInternalServer
	switch {
	case errors.Is(err, services.ErrConflict):
		status, code = http.StatusConflict, models.ErrConflict
	case errors.Is(err, services.ErrUnauthorized):
		status, code = http.StatusUnauthorized, models.ErrUnauthorized
	case errors.Is(err, services.ErrNotFound):
		status, code = http.StatusNotFound, models.ErrNotFound
	case errors.Is(err, services.ErrInvalidInput):
		status, code = http.StatusBadRequest, models.ErrBadRequest
	}

	var details []map[string]interface{}
	var domainErr *services.Error
	if errors.As(err, &domainErr) {
		if domainErr.Code != "" {
			code = domainErr.Code
		}
		if domainErr.Details != nil {
			details = append(details, domainErr.Details)
		}
	}

	_ = ctx.Error(err)
	ctx.JSON(status, models.NewAPIError(code, services.Message(err), details...))
}

func respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, message))
}
