package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/models"
)

// TreeHandler serves traversal and expansion endpoints.
type TreeHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewTreeHandler creates a TreeHandler.
func NewTreeHandler(svc GraphService, log *logrus.Logger) *TreeHandler {
	return &TreeHandler{svc: svc, log: log}
}

// Tree handles GET /tree?root=&depth=. The response is a GraphSON g:Tree.
func (h *TreeHandler) Tree(c *gin.Context) {
	root, depth, ok := rootAndDepth(c)
	if !ok {
		return
	}

	tree, err := h.svc.TraversalTree(c.Request.Context(), root, depth)
	if err != nil {
		respondServiceError(c, h.log, "building traversal tree failed", err)
		return
	}

	c.JSON(http.StatusOK, tree)
}

// ExpandFrom handles GET /expand?root=&depth=.
func (h *TreeHandler) ExpandFrom(c *gin.Context) {
	root, depth, ok := rootAndDepth(c)
	if !ok {
		return
	}

	docs, err := h.svc.ExpandFrom(c.Request.Context(), root, depth)
	if err != nil {
		respondServiceError(c, h.log, "expanding traversal failed", err)
		return
	}

	if docs == nil {
		docs = []models.Document{}
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Expand handles POST /expand. The body is a GraphSON g:Tree as produced by
// GET /tree; malformed trees are rejected with 422.
func (h *TreeHandler) Expand(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "failed to read request body")
		return
	}

	var tree models.Tree
	if err := json.Unmarshal(body, &tree); err != nil {
		var structural *models.StructuralError
		if errors.As(err, &structural) {
			respondServiceError(c, h.log, "decoding tree failed", err)
			return
		}

		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")

		return
	}

	out, err := h.svc.Expand(c.Request.Context(), &tree)
	if err != nil {
		respondServiceError(c, h.log, "expanding tree failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": out})
}

func rootAndDepth(c *gin.Context) (models.Reference, int, bool) {
	root, ok := requireReference(c, "root")
	if !ok {
		return models.Reference{}, 0, false
	}

	depth, err := parseDepth(c.Query("depth"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return models.Reference{}, 0, false
	}

	return root, depth, true
}
