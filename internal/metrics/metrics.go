// Package metrics defines Prometheus metrics for rdf2graph.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rdf2graph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rdf2graph_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rdf2graph_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	GraphMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rdf2graph_graph_mutations_total",
			Help: "Graph store mutations by kind (node, property, edge)",
		},
		[]string{"kind"},
	)

	StatementsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rdf2graph_statements_ingested_total",
			Help: "Triples applied to the property graph",
		},
	)

	ExpansionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rdf2graph_expansion_duration_seconds",
			Help:    "Time spent expanding traversal trees into documents",
			Buckets: prometheus.DefBuckets,
		},
	)

	NodeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rdf2graph_nodes_total",
			Help: "Node count at the last readiness check",
		},
	)

	EdgeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rdf2graph_edges_total",
			Help: "Edge count at the last readiness check",
		},
	)
)

// Mutation kinds.
const (
	MutationNode     = "node"
	MutationProperty = "property"
	MutationEdge     = "edge"
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		GraphMutationsTotal, StatementsIngested, ExpansionDuration,
		NodeCount, EdgeCount,
	)
}
