package mapping

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/metrics"
	"github.com/persistorai/rdf2graph/internal/models"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

// Ingest applies every statement of src to the graph. Resource objects become
// edges, literal objects become property values. On error the statements
// already applied stay in the store and the partial counts are returned with
// the error.
func (s *Session) Ingest(ctx context.Context, src rdf.Source) (*models.IngestResult, error) {
	start := time.Now()
	res := &models.IngestResult{}

	for t, err := range src.Triples() {
		if err != nil {
			return res, fmt.Errorf("reading statement %d: %w", res.Statements+1, err)
		}

		if err := s.apply(ctx, src, t, res); err != nil {
			return res, fmt.Errorf("ingesting statement %d %s: %w", res.Statements+1, t, err)
		}

		res.Statements++
		metrics.StatementsIngested.Inc()
	}

	s.log.WithFields(logrus.Fields{
		"statements":    res.Statements,
		"nodes_created": res.NodesCreated,
		"edges_created": res.EdgesCreated,
		"properties":    res.PropertiesSet,
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Info("mapping.ingest")

	return res, nil
}

func (s *Session) apply(ctx context.Context, src rdf.Source, t rdf.Triple, res *models.IngestResult) error {
	subject, err := s.ensureTerm(ctx, src, t.Subject, res)
	if err != nil {
		return err
	}

	predicate := labelOf(src, t.Predicate)

	if t.Object.IsResource() {
		object, err := s.ensureTerm(ctx, src, t.Object, res)
		if err != nil {
			return err
		}

		if _, err := s.Link(ctx, subject, object, predicate); err != nil {
			return err
		}

		res.EdgesCreated++

		return nil
	}

	if _, err := s.SetProperty(ctx, subject, predicate, t.Object.String()); err != nil {
		return err
	}

	res.PropertiesSet++

	return nil
}

func (s *Session) ensureTerm(ctx context.Context, src rdf.Source, term rdf.Term, res *models.IngestResult) (*models.Node, error) {
	n, created, err := s.ensureNode(ctx, term.String(), labelOf(src, term))
	if err != nil {
		return nil, err
	}

	if created {
		res.NodesCreated++
	} else {
		res.NodesReused++
	}

	return n, nil
}

// labelOf prefers the compact form of term and falls back to its string form.
func labelOf(src rdf.Source, term rdf.Term) string {
	if c, ok := src.Compact(term); ok {
		return c
	}

	return term.String()
}
