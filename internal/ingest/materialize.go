package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adewale/imgdb/internal/config"
)

// normalizeExt lowercases an extension and folds ".jpeg" to ".jpg", per
// §4.7's archive-file naming rule.
func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}

// ArchiveTargetPath computes the destination path for a materialized
// file: outputRoot/<shard>/<id><normalized-ext>, where shard is the
// first shardLen characters of id (shardLen 0 means no subfolder).
func ArchiveTargetPath(outputRoot, id, ext string, shardLen int) string {
	name := id + normalizeExt(ext)
	if shardLen <= 0 || len(id) < shardLen {
		return filepath.Join(outputRoot, name)
	}
	return filepath.Join(outputRoot, id[:shardLen], name)
}

// MaterializeFile performs the configured file-side-effect (copy/move/
// link/noop) for one source file into the archive's output tree. If the
// target already exists and cfg.Force is not set, the call is a no-op
// (skip, not an error).
func MaterializeFile(cfg *config.Config, srcPath, id, ext string) (string, error) {
	target := ArchiveTargetPath(cfg.Output, id, ext, cfg.ArchiveSubfolderLen)
	if cfg.AddFunc == nil {
		return target, nil
	}
	if _, err := os.Stat(target); err == nil && !cfg.Force {
		return target, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("ingest: creating archive shard dir: %w", err)
	}
	if cfg.Force {
		os.Remove(target)
	}
	if err := cfg.AddFunc(srcPath, target); err != nil {
		return "", fmt.Errorf("ingest: materializing %s -> %s: %w", srcPath, target, err)
	}
	return target, nil
}
