package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/mapping"
	"github.com/persistorai/rdf2graph/internal/middleware"
	"github.com/persistorai/rdf2graph/internal/models"
)

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid := middleware.GetRequestID(c); rid != "" {
			fields["request_id"] = rid
		}

		log.WithFields(fields).Info("request")
	}
}

// parseDepth reads a traversal depth. Missing or non-positive values yield 0,
// which selects the session default; larger values are capped.
func parseDepth(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("depth must be an integer")
	}

	if v <= 0 {
		return 0, nil
	}

	return min(v, mapping.MaxDepthLimit), nil
}

// requireReference parses the named query parameter as a Reference.
func requireReference(c *gin.Context, param string) (models.Reference, bool) {
	raw := c.Query(param)
	if raw == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, param+" is required")
		return models.Reference{}, false
	}

	ref := models.ParseReference(raw)
	if err := ref.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return models.Reference{}, false
	}

	return ref, true
}

// validatePathID checks that a path parameter ID is non-empty and within length limits.
func validatePathID(id string) error {
	if id == "" {
		return errors.New("id must not be empty")
	}

	if len(id) > 255 {
		return errors.New("id exceeds maximum length of 255")
	}

	return nil
}
