package ops

import (
	"fmt"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/ingest"
)

// Sync walks inputs the same way Add does, then reconciles the archive
// at cfg.DB against what is actually on disk: broken records (pth no
// longer exists) are always purged; files found on disk with no
// matching record are reported, never auto-imported (§4.5
// sync-from-folders). The archive is saved only when purgeBroken is set
// and at least one record was in fact broken.
func Sync(inputs []string, cfg *config.Config, purgeBroken bool) (archive.SyncResult, error) {
	arc, err := archive.Open(cfg.DB)
	if err != nil {
		return archive.SyncResult{}, fmt.Errorf("ops: opening archive: %w", err)
	}
	diskPaths := ingest.Walk(inputs, cfg, nil)

	result := arc.SyncFromFolders(diskPaths)
	if purgeBroken && result.BrokenPurged > 0 && !cfg.DryRun {
		if err := arc.Save(""); err != nil {
			return result, fmt.Errorf("ops: saving archive after sync: %w", err)
		}
	}
	return result, nil
}
