package handler

import (
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Internal failures are logged with
// their cause and reported with a generic message.
func respondError(c *gin.Context, logger *log.Logger, err error) {
	status := statusFor(service.KindOf(err))
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).Error("request failed")
	}
	c.JSON(status, gin.H{"error": service.MessageOf(err)})
}

// actorID returns the authenticated user or writes a 401.
func actorID(c *gin.Context, logger *log.Logger) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondError(c, logger, service.ErrUnauthenticated)
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a uuid path parameter. Malformed values become uuid.Nil, which
// matches no board or task, so they fail the same way an unknown id does.
func pathID(c *gin.Context, name string) uuid.UUID {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil
	}
	return id
}
