package ingest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/imgmeta"
	"github.com/adewale/imgdb/internal/metaextract"
	"github.com/adewale/imgdb/internal/query"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Found     int
	Processed int
	Skipped   int
	Failed    int
}

// itemResult is what one worker hands back to the collector: either a
// populated record (with its embedded thumbnail) or the empty-record
// sentinel for a decode/filter failure.
type itemResult struct {
	path   string
	record imgmeta.Record
	thumb  string
	err    error
}

// Run walks inputs, decodes/extracts every matching file across a
// bounded worker pool, materializes files into the archive output tree
// when configured, appends every successful extraction to the journal,
// then on completion merges the journal into arc and saves it. The
// journal is deleted only after a successful save. On ctx cancellation,
// in-flight workers are allowed to finish, the journal is closed but
// preserved, and the archive is NOT merged/saved (§5 cancellation
// semantics) — the caller should treat a non-nil error from a canceled
// context as "resume later", not as a fatal failure.
func Run(ctx context.Context, inputs []string, cfg *config.Config, arc *archive.Archive) (Stats, error) {
	files := Walk(inputs, cfg, func(format string, args ...any) { log.Printf(format, args...) })
	stats := Stats{Found: len(files)}
	if len(files) == 0 {
		return stats, nil
	}
	if cfg.DryRun {
		for _, f := range files {
			log.Printf("ingest: (dry-run) would add %s", f)
		}
		return stats, nil
	}

	existing := arc.ExistingIDs()
	schema := buildFilterSchema(cfg)
	var filterQ *query.Query
	if cfg.Filter != "" {
		q, err := query.Parse(cfg.Filter, schema)
		if err != nil {
			return stats, fmt.Errorf("ingest: invalid filter: %w", err)
		}
		filterQ = q
	}

	j, err := archive.OpenJournal(cfg.DB)
	if err != nil {
		return stats, fmt.Errorf("ingest: opening journal: %w", err)
	}

	paths := make(chan string)
	results := make(chan itemResult)

	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case path, ok := <-paths:
					if !ok {
						return nil
					}
					results <- processOne(path, cfg, filterQ)
				}
			}
		})
	}

	go func() {
		defer close(paths)
		for _, f := range files {
			select {
			case <-gctx.Done():
				return
			case paths <- f:
			}
		}
	}()

	collectDone := make(chan error, 1)
	go func() {
		collectDone <- collect(results, cfg, j, existing, &stats)
	}()

	workerErr := g.Wait()
	close(results)
	collectErr := <-collectDone

	if workerErr == nil {
		workerErr = collectErr
	}

	canceled := ctx.Err() != nil
	if canceled {
		j.Close()
		return stats, ctx.Err()
	}
	if workerErr != nil {
		j.Close()
		return stats, workerErr
	}

	if err := j.Sync(); err != nil {
		j.Close()
		return stats, fmt.Errorf("ingest: syncing journal: %w", err)
	}
	if err := j.Close(); err != nil {
		return stats, fmt.Errorf("ingest: closing journal: %w", err)
	}

	journalRecords, err := archive.ReadAll(cfg.DB)
	if err != nil {
		return stats, fmt.Errorf("ingest: reading journal: %w", err)
	}
	arc.Merge(journalRecords)
	if err := arc.Save(""); err != nil {
		return stats, fmt.Errorf("ingest: saving archive: %w", err)
	}
	if err := archive.Delete(cfg.DB); err != nil {
		return stats, fmt.Errorf("ingest: removing journal: %w", err)
	}
	return stats, nil
}

func processOne(path string, cfg *config.Config, filterQ *query.Query) itemResult {
	result, err := metaextract.Extract(path, cfg)
	if err != nil {
		return itemResult{path: path, err: err}
	}
	if filterQ != nil && !filterQ.Match(result.Record) {
		return itemResult{path: path}
	}
	return itemResult{path: path, record: result.Record, thumb: result.ThumbDataURI}
}

// collect pulls results in batches of size 2*workers to amortize lock
// acquisition on the journal, mirroring the teacher/original batching
// pattern.
func collect(results <-chan itemResult, cfg *config.Config, j *archive.Journal, existing map[string]bool, stats *Stats) error {
	batchSize := cfg.Workers * 2
	if batchSize <= 0 {
		batchSize = 2
	}
	batch := make([]itemResult, 0, batchSize)

	flush := func() error {
		for _, r := range batch {
			if r.err != nil {
				stats.Failed++
				log.Printf("ingest: failed to process %s: %v", r.path, r.err)
				continue
			}
			if r.record.IsEmpty() {
				stats.Skipped++
				continue
			}
			if cfg.SkipImported && existing[r.record.ID()] {
				stats.Skipped++
				continue
			}
			if cfg.Output != "" && cfg.AddFunc != nil {
				ext := filepath.Ext(r.path)
				target, err := MaterializeFile(cfg, r.path, r.record.ID(), ext)
				if err != nil {
					stats.Failed++
					log.Printf("ingest: materialize failed for %s: %v", r.path, err)
					continue
				}
				r.record[imgmeta.FieldPth] = target
			}
			if err := j.Append(r.record, r.thumb); err != nil {
				return err
			}
			stats.Processed++
		}
		batch = batch[:0]
		return nil
	}

	for r := range results {
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func buildFilterSchema(cfg *config.Config) map[string]bool {
	schema := map[string]bool{
		imgmeta.FieldID: true, imgmeta.FieldPth: true, imgmeta.FieldFormat: true,
		imgmeta.FieldMode: true, imgmeta.FieldWidth: true, imgmeta.FieldHeight: true,
		imgmeta.FieldBytes: true, imgmeta.FieldDate: true, imgmeta.FieldMakerModel: true,
	}
	for _, f := range cfg.Metadata {
		schema[f] = true
	}
	for _, f := range cfg.Algorithms {
		schema[f] = true
	}
	for _, f := range cfg.VHashes {
		schema[f] = true
	}
	for _, f := range cfg.CHashes {
		schema[f] = true
	}
	return schema
}
