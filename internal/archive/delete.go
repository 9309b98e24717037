package archive

import (
	"log"
	"os"

	"github.com/adewale/imgdb/internal/query"
)

// Delete removes records matching q and/or the explicit ids list from
// the in-memory set. When unlinkFiles is set, the referenced file on
// disk is also removed; unlink failures are logged, not fatal, and the
// record is still removed either way. Returns the count removed. The
// archive is not saved; the caller decides when to persist.
func (a *Archive) Delete(q *query.Query, ids []string, unlinkFiles bool) int {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	a.mu.Lock()
	toRemove := make([]string, 0)
	for id, rec := range a.records {
		if idSet[id] || (q != nil && q.Match(rec)) {
			toRemove = append(toRemove, id)
		}
	}
	removedRecs := make(map[string]string, len(toRemove))
	for _, id := range toRemove {
		removedRecs[id] = a.records[id]["pth"]
		delete(a.records, id)
		delete(a.thumbnails, id)
	}
	a.mu.Unlock()

	if unlinkFiles {
		for id, pth := range removedRecs {
			if pth == "" {
				continue
			}
			if err := os.Remove(pth); err != nil && !os.IsNotExist(err) {
				log.Printf("archive: failed to unlink %s (id %s): %v", pth, id, err)
			}
		}
	}
	return len(toRemove)
}
