package models

// IngestResult summarises one ingestion run.
type IngestResult struct {
	Statements    int `json:"statements"`
	NodesCreated  int `json:"nodes_created"`
	NodesReused   int `json:"nodes_reused"`
	EdgesCreated  int `json:"edges_created"`
	PropertiesSet int `json:"properties_set"`
}

// GraphStats holds element counts for the whole graph.
type GraphStats struct {
	Nodes      int64 `json:"nodes"`
	Edges      int64 `json:"edges"`
	Properties int64 `json:"properties"`
}
