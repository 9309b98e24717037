// Package ops implements the operations layer: the handful of
// user-facing verbs (add, delete, rename, export, gallery, links, info)
// that compose the archive, query and ingest packages into the CLI's
// actual subcommand behavior.
package ops

import (
	"context"
	"fmt"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/ingest"
)

// Add runs the ingestion scheduler against inputs and folds the result
// into the archive at cfg.DB, saving it on success. This is the add
// subcommand's entire body: find files, pre-scan existing ids, run the
// scheduler, merge, save — all of which ingest.Run already performs.
func Add(ctx context.Context, inputs []string, cfg *config.Config) (ingest.Stats, error) {
	arc, err := archive.Open(cfg.DB)
	if err != nil {
		return ingest.Stats{}, fmt.Errorf("ops: opening archive: %w", err)
	}
	return ingest.Run(ctx, inputs, cfg, arc)
}
