package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/models"
)

// EdgeHandler serves edge listing endpoints.
type EdgeHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewEdgeHandler creates an EdgeHandler.
func NewEdgeHandler(svc GraphService, log *logrus.Logger) *EdgeHandler {
	return &EdgeHandler{svc: svc, log: log}
}

// List handles GET /edges?source=&target=. Both filters take external
// identifiers; omitted filters match any node.
func (h *EdgeHandler) List(c *gin.Context) {
	source := c.Query("source")
	target := c.Query("target")

	for _, v := range []string{source, target} {
		if len(v) > models.MaxReferenceLength {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "filter exceeds maximum length")
			return
		}
	}

	edges, err := h.svc.Edges(c.Request.Context(), source, target)
	if err != nil {
		respondServiceError(c, h.log, "listing edges failed", err)
		return
	}

	if edges == nil {
		edges = []models.Edge{}
	}

	c.JSON(http.StatusOK, gin.H{"edges": edges, "count": len(edges)})
}
