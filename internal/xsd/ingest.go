// Package xsd ingests the raw Akoma Ntoso schema definition and populates
// the queryable schema model. Ingestion runs once at startup against a
// trusted, versioned schema file; malformed constructs are logged and
// skipped rather than failing the load.
package xsd

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Option configures an ingestion run.
type Option func(*config)

type config struct {
	logger *slog.Logger
	root   string
}

// WithLogger overrides the logger used for skipped-construct warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRootElement pins the schema's universal root element instead of
// defaulting to the first top-level element declaration.
func WithRootElement(name string) Option {
	return func(cfg *config) {
		cfg.root = name
	}
}

// Ingest decodes a schema document and builds the immutable schema model.
// The only fatal failure is a document that cannot be decoded at all; every
// per-construct problem downgrades to a logged warning.
func Ingest(r io.Reader, options ...Option) (*schema.Model, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var doc xsdSchema
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("xsd: decode schema document: %w", err)
	}

	resolver := newGroupResolver(doc.Groups, cfg.logger)
	extractor := newElementExtractor(&doc, resolver, cfg.logger)
	defs := extractor.extract(doc.Elements)

	root := cfg.root
	if root == "" && len(defs) > 0 {
		root = defs[0].Name
	}

	model := schema.NewModel(root, defs)
	cfg.logger.Info("schema model built",
		"elements", model.Len(),
		"root", model.Root(),
		"targetNamespace", doc.TargetNamespace,
	)
	return model, nil
}

// IngestFile opens and ingests a schema file from disk.
func IngestFile(path string, options ...Option) (*schema.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xsd: open schema file: %w", err)
	}
	defer f.Close()
	return Ingest(f, options...)
}
