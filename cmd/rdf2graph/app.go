package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/config"
	"github.com/persistorai/rdf2graph/internal/db"
	"github.com/persistorai/rdf2graph/internal/dbpool"
	"github.com/persistorai/rdf2graph/internal/domain"
	"github.com/persistorai/rdf2graph/internal/mapping"
	"github.com/persistorai/rdf2graph/internal/memstore"
	"github.com/persistorai/rdf2graph/internal/rdf"
	"github.com/persistorai/rdf2graph/internal/store"
)

// app holds everything a command needs once configuration is resolved.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	ns      *rdf.Namespaces
	pool    *dbpool.Pool
	session *mapping.Session
}

func loadConfig() (*config.Config, error) {
	return config.Load(
		config.WithStoreBackend(flagBackend),
		config.WithDatabaseURL(flagDatabaseURL),
		config.WithNamespacesFile(flagNamespaces),
		config.WithLogLevel(flagLogLevel),
	)
}

// openApp loads configuration, connects the store and migrates it.
// The caller must Close the returned app.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg)

	ns, err := buildNamespaces(cfg.Namespaces)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, ns: ns}

	var st domain.GraphStore

	switch cfg.StoreBackend {
	case config.BackendMemory:
		st = memstore.New(log)
	default:
		pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
		if err != nil {
			return nil, err
		}

		if _, err := db.RunMigrations(ctx, pool, log, nil); err != nil {
			pool.Close()
			return nil, err
		}

		a.pool = pool
		st = store.New(store.Base{Pool: pool, Log: log})
	}

	a.session = mapping.NewSession(st, log, mapping.Options{
		MaxDepth:      cfg.MaxTraversalDepth,
		TypePredicate: cfg.TypePredicate,
	})

	log.WithFields(logrus.Fields{
		"backend": cfg.StoreBackend,
		"depth":   a.session.Options().MaxDepth,
	}).Debug("app.open")

	return a, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	if cfg.LogFormat == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}

// buildNamespaces layers the configured bindings over the defaults.
func buildNamespaces(bindings map[string]string) (*rdf.Namespaces, error) {
	ns := rdf.DefaultNamespaces()

	for _, prefix := range slices.Sorted(maps.Keys(bindings)) {
		if err := ns.Bind(prefix, bindings[prefix]); err != nil {
			return nil, fmt.Errorf("binding namespace %q: %w", prefix, err)
		}
	}

	return ns, nil
}
