package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/middleware"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Graph       GraphService
	Health      HealthChecker
	Namespaces  *rdf.Namespaces
	CORSOrigins []string
	Version     string
}

// maxBodySize caps request bodies, N-Triples uploads included.
const maxBodySize = 64 << 20 // 64 MB

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.ResponseHeaders(deps.Version))
	r.Use(middleware.MaxBodySize(maxBodySize))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			MaxAge:           1 * time.Hour,
			AllowCredentials: false,
		}))
	}

	r.Use(middleware.Prometheus("/metrics"))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Health, deps.Graph, log, deps.Version)
	graph := NewGraphHandler(deps.Graph, deps.Namespaces, log)
	nodes := NewNodeHandler(deps.Graph, log)
	edges := NewEdgeHandler(deps.Graph, log)
	trees := NewTreeHandler(deps.Graph, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Whole graph.
	api.POST("/ingest", graph.Ingest)
	api.GET("/stats", graph.Stats)
	api.DELETE("/graph", graph.Clear)

	// Nodes.
	api.GET("/resolve", nodes.Resolve)
	api.GET("/nodes", nodes.List)
	api.GET("/nodes/:id/properties", nodes.Properties)
	api.GET("/types/nodes", nodes.OfType)

	// Edges.
	api.GET("/edges", edges.List)

	// Traversal and expansion.
	api.GET("/tree", trees.Tree)
	api.GET("/expand", trees.ExpandFrom)
	api.POST("/expand", trees.Expand)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
