package ops

import (
	"fmt"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/imgmeta"
	"github.com/adewale/imgdb/internal/query"
)

// Delete opens the archive at cfg.DB, resolves the target set by ids
// and/or cfg.Filter, removes those records (optionally unlinking the
// referenced files when cfg.Output is set, mirroring the original's
// del_op unlinking from the archive root), and saves. Returns the
// number of records removed.
func Delete(ids []string, cfg *config.Config) (int, error) {
	arc, err := archive.Open(cfg.DB)
	if err != nil {
		return 0, fmt.Errorf("ops: opening archive: %w", err)
	}

	var q *query.Query
	if cfg.Filter != "" {
		q, err = query.Parse(cfg.Filter, deleteSchema())
		if err != nil {
			return 0, fmt.Errorf("ops: invalid filter: %w", err)
		}
	}

	if cfg.DryRun {
		return previewDeleteCount(arc, q, ids), nil
	}

	n := arc.Delete(q, ids, cfg.Output != "")
	if err := arc.Save(""); err != nil {
		return n, fmt.Errorf("ops: saving archive: %w", err)
	}
	return n, nil
}

func previewDeleteCount(arc *archive.Archive, q *query.Query, ids []string) int {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	n := 0
	for _, rec := range arc.Records() {
		if idSet[rec.ID()] || (q != nil && q.Match(rec)) {
			n++
		}
	}
	return n
}

func deleteSchema() map[string]bool {
	return map[string]bool{
		imgmeta.FieldID: true, imgmeta.FieldPth: true, imgmeta.FieldFormat: true,
		imgmeta.FieldMode: true, imgmeta.FieldWidth: true, imgmeta.FieldHeight: true,
		imgmeta.FieldBytes: true, imgmeta.FieldDate: true, imgmeta.FieldMakerModel: true,
	}
}
