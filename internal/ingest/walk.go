// Package ingest implements the ingestion scheduler: walking input
// paths, dispatching decode/extract work to a bounded worker pool,
// collecting results into the journal, and reconciling the journal into
// the archive on completion.
package ingest

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/adewale/imgdb/internal/config"
)

// Walk enumerates files under inputs. Each input is walked recursively
// when cfg.Deep is set, otherwise only its immediate directory entries
// are considered. Files are filtered by cfg.Exts (case-insensitive,
// dot-prefixed); duplicate paths are suppressed only when len(inputs)>1.
// Permission/I/O errors on one subtree are logged and do not abort the
// walk. cfg.Shuffle randomizes order; cfg.Limit caps the result.
func Walk(inputs []string, cfg *config.Config, logf func(format string, args ...any)) []string {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	seen := make(map[string]bool)
	dedupe := len(inputs) > 1
	var out []string

	for _, root := range inputs {
		walkOne(root, cfg, logf, func(path string) {
			if dedupe {
				if seen[path] {
					return
				}
				seen[path] = true
			}
			out = append(out, path)
		})
	}

	if cfg.Shuffle {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	if cfg.Limit > 0 && len(out) > cfg.Limit {
		out = out[:cfg.Limit]
	}
	return out
}

func walkOne(root string, cfg *config.Config, logf func(string, ...any), emit func(string)) {
	info, err := os.Stat(root)
	if err != nil {
		logf("ingest: cannot stat %s: %v", root, err)
		return
	}
	if !info.IsDir() {
		if matchesExt(root, cfg.Exts) {
			emit(root)
		}
		return
	}
	if !cfg.Deep {
		entries, err := os.ReadDir(root)
		if err != nil {
			logf("ingest: cannot read dir %s: %v", root, err)
			return
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(root, e.Name())
			if matchesExt(path, cfg.Exts) {
				emit(path)
			}
		}
		return
	}
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logf("ingest: walk error at %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if matchesExt(path, cfg.Exts) {
			emit(path)
		}
		return nil
	})
	if err != nil {
		logf("ingest: walk failed under %s: %v", root, err)
	}
}

func matchesExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
