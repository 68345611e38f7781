package api

import (
	"errors"
	"net/http"

	"github.com/GowthamiKadiyala/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// errorStatus maps the service error taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError writes err as a JSON error. Server-side failures are
// logged and answered with fallback, so store errors never reach the client.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		_ = c.Error(err)
		abortWithError(c, status, fallback)
		return
	}
	abortWithError(c, status, clientMessage(err))
}

// clientMessage strips the wrapped kind prefix from well-known errors.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidUserID):
		return "Invalid user id"
	case errors.Is(err, service.ErrExportUnavailable):
		return "Stats export is not available"
	default:
		return err.Error()
	}
}
