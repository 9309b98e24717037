package archive

import (
	"log"
	"os"
)

// SyncResult reports the outcome of SyncFromFolders.
type SyncResult struct {
	Working      int
	BrokenPurged int
	NotImported  []string
}

// SyncFromFolders treats diskPaths (every file currently enumerable
// under the configured folders) as the source of truth: records whose
// `pth` no longer exists on disk are purged as broken, and files on disk
// with no corresponding record are reported (not auto-imported).
func (a *Archive) SyncFromFolders(diskPaths []string) SyncResult {
	a.mu.Lock()
	working := map[string]bool{}
	var broken []string
	for id, rec := range a.records {
		pth := rec["pth"]
		if _, err := os.Stat(pth); err == nil {
			working[pth] = true
		} else {
			broken = append(broken, id)
		}
	}
	for _, id := range broken {
		log.Printf("archive: path %s is broken, purging record %s", a.records[id]["pth"], id)
		delete(a.records, id)
		delete(a.thumbnails, id)
	}
	a.mu.Unlock()

	var notImported []string
	for _, pth := range diskPaths {
		if !working[pth] {
			notImported = append(notImported, pth)
		}
	}
	if len(notImported) > 0 {
		log.Printf("archive: %d files on disk are not imported", len(notImported))
	}
	return SyncResult{
		Working:      len(working),
		BrokenPurged: len(broken),
		NotImported:  notImported,
	}
}
