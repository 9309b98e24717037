package ops

import (
	"log"
	"os"
	"path/filepath"

	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/ingest"
	"github.com/adewale/imgdb/internal/metaextract"
)

// RenameStats summarizes one Rename call.
type RenameStats struct {
	Found    int
	Renamed  int
	Skipped  int
	Failed   int
}

// Rename walks inputs (no archive involved, per §4.7), extracts meta for
// every matching file, evaluates nameTmpl against the meta to produce a
// new basename in the same directory, and renames in place. A target
// that already exists is skipped unless cfg.Force; rename is atomic per
// file via os.Rename.
func Rename(inputs []string, nameTmpl string, cfg *config.Config) (RenameStats, error) {
	files := ingest.Walk(inputs, cfg, func(format string, args ...any) { log.Printf(format, args...) })
	stats := RenameStats{Found: len(files)}

	for _, path := range files {
		result, err := metaextract.Extract(path, cfg)
		if err != nil {
			stats.Failed++
			log.Printf("ops: rename: failed to extract meta for %s: %v", path, err)
			continue
		}
		base, err := metaextract.EvaluateTemplate(nameTmpl, result.Record)
		if err != nil || base == "" {
			stats.Failed++
			log.Printf("ops: rename: template evaluation failed for %s: %v", path, err)
			continue
		}

		dir := filepath.Dir(path)
		ext := filepath.Ext(path)
		target := filepath.Join(dir, base+ext)
		if target == path {
			stats.Skipped++
			continue
		}
		if _, err := os.Stat(target); err == nil && !cfg.Force {
			stats.Skipped++
			continue
		}
		if cfg.DryRun {
			log.Printf("ops: rename: (dry-run) %s -> %s", path, target)
			stats.Renamed++
			continue
		}
		if err := os.Rename(path, target); err != nil {
			stats.Failed++
			log.Printf("ops: rename: %s -> %s: %v", path, target, err)
			continue
		}
		stats.Renamed++
	}
	return stats, nil
}
