package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/metrics"
	"github.com/persistorai/rdf2graph/internal/middleware"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

// GraphHandler serves whole-graph endpoints: ingestion, stats and clearing.
type GraphHandler struct {
	svc GraphService
	ns  *rdf.Namespaces
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler. A nil ns binds the default prefixes.
func NewGraphHandler(svc GraphService, ns *rdf.Namespaces, log *logrus.Logger) *GraphHandler {
	if ns == nil {
		ns = rdf.DefaultNamespaces()
	}

	return &GraphHandler{svc: svc, ns: ns, log: log}
}

// Ingest handles POST /ingest. The body is an N-Triples document, streamed
// statement by statement into the graph.
func (h *GraphHandler) Ingest(c *gin.Context) {
	res, err := h.svc.Ingest(c.Request.Context(), rdf.NewStream(c.Request.Body, h.ns))
	if err != nil {
		if res != nil && res.Statements > 0 {
			middleware.Entry(c, h.log).WithField("applied", res.Statements).Warn("ingest stopped early")
		}

		respondServiceError(c, h.log, "ingest failed", err)

		return
	}

	c.JSON(http.StatusOK, res)
}

// Stats handles GET /stats.
func (h *GraphHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, "stats failed", err)
		return
	}

	metrics.NodeCount.Set(float64(stats.Nodes))
	metrics.EdgeCount.Set(float64(stats.Edges))

	c.JSON(http.StatusOK, stats)
}

// Clear handles DELETE /graph.
func (h *GraphHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context()); err != nil {
		respondServiceError(c, h.log, "clear failed", err)
		return
	}

	metrics.NodeCount.Set(0)
	metrics.EdgeCount.Set(0)

	c.Status(http.StatusNoContent)
}
