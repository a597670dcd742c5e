package prodingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
	"github.com/osdupipe/prodingest/pkg/prodingest/osdu"
	"github.com/osdupipe/prodingest/pkg/prodingest/output"
	"github.com/osdupipe/prodingest/pkg/prodingest/parser"
	"github.com/osdupipe/prodingest/pkg/prodingest/storage"
)

// Run executes one pipeline invocation: download the target deliverable from
// the source location, normalize it into canonical tables, upload the tables
// as CSV under the destination location, and submit every CSV to the
// ingestion API.
//
// params must contain at minimum the target file path. The returned string
// is the aggregated run log; it is returned even when err is non-nil.
// Parameter-validation and workbook-level failures are logged and then
// re-raised; per-sheet and per-file faults are logged and the run continues.
func Run(ctx context.Context, source, dest models.Location, params []string, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	runID := uuid.NewString()
	logger = logger.With("runId", runID)

	log := NewRunLog()
	log.Add("Run %s started", runID)

	target, err := targetPath(params)
	if err != nil {
		log.Error("%v", err)
		return log.String(), err
	}
	if err := source.Validate(); err != nil {
		log.Error("invalid source descriptor: %v", err)
		return log.String(), err
	}
	if err := dest.Validate(); err != nil {
		log.Error("invalid destination descriptor: %v", err)
		return log.String(), err
	}

	srcStore, err := opts.sourceStore(source)
	if err != nil {
		log.Error("source storage: %v", err)
		return log.String(), err
	}
	dstStore, err := opts.destStore(dest)
	if err != nil {
		log.Error("destination storage: %v", err)
		return log.String(), err
	}

	data, created, err := fetchTarget(ctx, srcStore, source.Bucket, target)
	if err != nil {
		log.Error("fetch %s: %v", target, err)
		return log.String(), err
	}
	log.Add("Downloaded %s (%d bytes)", target, len(data))

	yearMonth, err := parser.YearMonth(target, created)
	if err != nil {
		log.Error("derive year-month for %s: %v", target, err)
		return log.String(), err
	}

	if err := dstStore.EnsureBucket(ctx, dest.Bucket); err != nil {
		log.Error("ensure destination bucket %s: %v", dest.Bucket, err)
		return log.String(), err
	}

	var generated []models.GeneratedFile
	contents := make(map[string][]byte)

	if strings.HasSuffix(strings.ToLower(target), ".csv") {
		// Bare CSV deliverables skip extraction and go to the destination
		// path as-is.
		gf, err := passThroughCSV(ctx, dstStore, dest, target, yearMonth, data)
		if err != nil {
			log.Error("upload %s: %v", target, err)
			return log.String(), err
		}
		generated = append(generated, gf)
		contents[gf.ObjectKey] = data
		log.Add("Uploaded %s (%d rows)", gf.ObjectKey, gf.RowCount)
	} else {
		tables, err := parser.ExtractWorkbook(data, logger)
		if err != nil {
			log.Error("convert %s: %v", target, err)
			return log.String(), err
		}
		log.Add("Extracted %d tables from %s", tables.Len(), target)

		for _, name := range tables.Names() {
			table, _ := tables.Get(name)
			csvBytes, err := output.Encode(table)
			if err != nil {
				log.Error("encode %s: %v", name, err)
				continue
			}
			key := output.ObjectKey(dest.Root, dest.Country, yearMonth, name)
			if err := dstStore.PutObject(ctx, dest.Bucket, key, csvBytes, output.ContentType); err != nil {
				log.Error("upload %s: %v", key, err)
				continue
			}
			generated = append(generated, models.GeneratedFile{
				TableName: name,
				RowCount:  table.RowCount(),
				ObjectKey: key,
			})
			contents[key] = csvBytes
			log.Add("Uploaded %s (%d rows)", key, table.RowCount())
		}
	}

	if opts.SkipSubmission {
		log.Add("Submission skipped, %d files generated", len(generated))
		return log.String(), nil
	}
	if dest.OSDU == nil {
		log.Error("%v", ErrNoOSDUConnection)
		return log.String(), nil
	}

	legal, err := osdu.LegalForCountry(dest.Country)
	if err != nil {
		log.Error("%v", err)
		return log.String(), nil
	}

	client := osdu.NewClient(*dest.OSDU, logger)
	for _, gf := range generated {
		res, err := client.Submit(ctx, gf.ObjectKey, contents[gf.ObjectKey], legal)
		if err != nil {
			// File-level isolation: log and move to the next file.
			log.Error("%v", err)
			continue
		}
		log.Add("Submitted %s: correlation %s, run %s, status %s",
			gf.ObjectKey, res.CorrelationID, res.RunID, res.Status)
	}

	log.Add("Run %s finished", runID)
	return log.String(), nil
}

// targetPath extracts the target file path from the invocation parameters.
func targetPath(params []string) (string, error) {
	for _, p := range params {
		if strings.TrimSpace(p) != "" {
			return strings.TrimSpace(p), nil
		}
	}
	return "", ErrMissingParams
}

// fetchTarget downloads the target object and resolves its creation time
// from the listing properties.
func fetchTarget(ctx context.Context, store storage.ObjectStore, bucket, key string) ([]byte, time.Time, error) {
	var created time.Time
	infos, err := store.ListPrefix(ctx, bucket, key)
	if err != nil {
		return nil, created, err
	}
	for _, info := range infos {
		if info.Key == key {
			created = info.Created
			break
		}
	}

	data, err := store.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, created, err
	}
	return data, created, nil
}

// passThroughCSV uploads an already-tabular deliverable unchanged and builds
// its generated-file record.
func passThroughCSV(ctx context.Context, store storage.ObjectStore, dest models.Location, target, yearMonth string, data []byte) (models.GeneratedFile, error) {
	tableName := strings.TrimSuffix(path.Base(target), path.Ext(target))
	key := output.ObjectKey(dest.Root, dest.Country, yearMonth, tableName)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return models.GeneratedFile{}, fmt.Errorf("parse csv: %w", err)
	}
	rowCount := len(records)
	if rowCount > 0 {
		rowCount-- // header row
	}

	if err := store.PutObject(ctx, dest.Bucket, key, data, output.ContentType); err != nil {
		return models.GeneratedFile{}, err
	}
	return models.GeneratedFile{TableName: tableName, RowCount: rowCount, ObjectKey: key}, nil
}
