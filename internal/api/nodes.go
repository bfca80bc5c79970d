package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/models"
)

// NodeHandler serves node lookup endpoints.
type NodeHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewNodeHandler creates a NodeHandler.
func NewNodeHandler(svc GraphService, log *logrus.Logger) *NodeHandler {
	return &NodeHandler{svc: svc, log: log}
}

// resolveResponse pairs a node with its flattened property document.
type resolveResponse struct {
	Node       *models.Node   `json:"node"`
	Properties map[string]any `json:"properties"`
}

// Resolve handles GET /resolve?ref=. The ref parameter accepts iri:, id: and
// label: prefixes; bare IRIs are external identifiers and anything else is a label.
func (h *NodeHandler) Resolve(c *gin.Context) {
	ref, ok := requireReference(c, "ref")
	if !ok {
		return
	}

	h.respondNode(c, ref)
}

// List handles GET /nodes.
func (h *NodeHandler) List(c *gin.Context) {
	nodes, err := h.svc.Nodes(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, "listing nodes failed", err)
		return
	}

	if nodes == nil {
		nodes = []models.Node{}
	}

	c.JSON(http.StatusOK, gin.H{"nodes": nodes, "count": len(nodes)})
}

// Properties handles GET /nodes/:id/properties.
func (h *NodeHandler) Properties(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	h.respondNode(c, models.SurrogateID(id))
}

// OfType handles GET /types/nodes?type=.
func (h *NodeHandler) OfType(c *gin.Context) {
	ref, ok := requireReference(c, "type")
	if !ok {
		return
	}

	nodes, err := h.svc.NodesOfType(c.Request.Context(), ref)
	if err != nil {
		respondServiceError(c, h.log, "listing nodes of type failed", err)
		return
	}

	if nodes == nil {
		nodes = []models.Node{}
	}

	c.JSON(http.StatusOK, gin.H{"type": ref.String(), "nodes": nodes, "count": len(nodes)})
}

func (h *NodeHandler) respondNode(c *gin.Context, ref models.Reference) {
	ctx := c.Request.Context()

	node, err := h.svc.Resolve(ctx, ref)
	if err != nil {
		respondServiceError(c, h.log, "resolving reference failed", err)
		return
	}

	if node == nil {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("no node matches %s", ref))
		return
	}

	props, err := h.svc.Project(ctx, node)
	if err != nil {
		respondServiceError(c, h.log, "projecting node failed", err)
		return
	}

	c.JSON(http.StatusOK, resolveResponse{Node: node, Properties: props})
}
