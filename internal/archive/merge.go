package archive

import "github.com/adewale/imgdb/internal/imgmeta"

// Merge reduces N ordered record streams (existing archive first, then
// the journal, then any extras) into this archive's in-memory set.
// Later streams are "newer"; within a stream, later records win on
// conflicting ids too. Conflicts resolve at attribute granularity via
// Record.MergeAttr ("newer wins, blank never overwrites").
func (a *Archive) Merge(streams ...[]imgmeta.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, stream := range streams {
		for _, incoming := range stream {
			id := incoming.ID()
			if id == "" {
				continue
			}
			if existing, ok := a.records[id]; ok {
				a.records[id] = existing.MergeAttr(incoming)
			} else {
				a.records[id] = incoming.Clone()
			}
		}
	}
}

// MergeThumbnails folds in embedded thumbnail data URIs keyed by id; a
// non-blank incoming value replaces the stored one, a blank one is ignored.
func (a *Archive) MergeThumbnails(thumbs map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, t := range thumbs {
		if t != "" {
			a.thumbnails[id] = t
		}
	}
}
