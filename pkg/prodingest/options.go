// Package prodingest orchestrates the batch ETL pipeline: workbook
// extraction, CSV upload and submission to the external ingestion API.
package prodingest

import (
	"log/slog"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
	"github.com/osdupipe/prodingest/pkg/prodingest/storage"
)

// Options configures one pipeline invocation.
type Options struct {
	// Logger receives structured diagnostics. When nil a default text
	// logger is used.
	Logger *slog.Logger
	// SkipSubmission uploads CSVs without driving them through the
	// ingestion workflow.
	SkipSubmission bool
	// SourceStore overrides the object store built from the source
	// descriptor. Used by tests and local runs.
	SourceStore storage.ObjectStore
	// DestStore overrides the object store built from the destination
	// descriptor.
	DestStore storage.ObjectStore
}

// sourceStore returns the configured or default source store.
func (o Options) sourceStore(loc models.Location) (storage.ObjectStore, error) {
	if o.SourceStore != nil {
		return o.SourceStore, nil
	}
	return storage.NewMinioStore(loc)
}

// destStore returns the configured or default destination store.
func (o Options) destStore(loc models.Location) (storage.ObjectStore, error) {
	if o.DestStore != nil {
		return o.DestStore, nil
	}
	return storage.NewMinioStore(loc)
}
