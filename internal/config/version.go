package config

// Version is the rdf2graph binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/rdf2graph/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
