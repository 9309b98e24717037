package ops

import (
	"log"
	"os"
	"path/filepath"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/metaextract"
)

// LinkStats summarizes one Links call.
type LinkStats struct {
	Considered int
	Linked     int
	Failed     int
}

// Links filters arc's records by cfg.Filter, evaluates tmpl against each
// record's meta to produce a destination path, and creates a hard or
// symbolic link (per cfg.SymLinks) from that destination back to the
// record's source file. Failures are logged per link and do not abort
// the batch (§4.7, §7 IOError policy).
func Links(arc *archive.Archive, tmpl string, cfg *config.Config) (LinkStats, error) {
	records, err := filterRecords(arc, cfg.Filter)
	if err != nil {
		return LinkStats{}, err
	}

	linkFn := os.Link
	kind := "hard"
	if cfg.SymLinks {
		linkFn = os.Symlink
		kind = "sym"
	}

	stats := LinkStats{Considered: len(records)}
	log.Printf("ops: generating %s-links %q for %d records", kind, tmpl, len(records))
	for _, rec := range records {
		dest, err := metaextract.EvaluateTemplate(tmpl, rec)
		if err != nil || dest == "" {
			stats.Failed++
			log.Printf("ops: links: template evaluation failed for %s: %v", rec.ID(), err)
			continue
		}
		dest = dest + filepath.Ext(rec["pth"])
		if _, err := os.Stat(dest); err == nil {
			if cfg.Force {
				if !cfg.DryRun {
					os.Remove(dest)
				}
			} else {
				continue
			}
		}
		if cfg.DryRun {
			stats.Linked++
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			stats.Failed++
			log.Printf("ops: links: creating parent for %s: %v", dest, err)
			continue
		}
		if err := linkFn(rec["pth"], dest); err != nil {
			stats.Failed++
			log.Printf("ops: links: %s-linking %s -> %s: %v", kind, rec["pth"], dest, err)
			continue
		}
		stats.Linked++
	}
	return stats, nil
}
