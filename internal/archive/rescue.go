package archive

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/adewale/imgdb/internal/imgmeta"
)

// imgTagPattern finds a record-shaped `<img ...>` fragment on a line,
// used only by Rescue when the whole-document parse fails (e.g. a
// crash mid-write left a truncated or corrupt file).
var imgTagPattern = regexp.MustCompile(`<img\b[^>]*>`)

// Rescue re-scans path line-by-line, extracting any record-shaped
// fragment regardless of whether the surrounding document is
// well-formed, deduplicating by id (last occurrence wins). It is only
// invoked on demand, never as part of the normal Open path.
func Rescue(path string) ([]imgmeta.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: rescue: opening %s: %w", path, err)
	}
	defer f.Close()

	byID := map[string]imgmeta.Record{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, match := range imgTagPattern.FindAllString(line, -1) {
			rec, ok := parseRecordFragment(match)
			if ok {
				byID[rec.ID()] = rec
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("archive: rescue: scanning %s: %w", path, err)
	}

	out := make([]imgmeta.Record, 0, len(byID))
	for _, rec := range byID {
		out = append(out, rec)
	}
	return out, nil
}

// IsWellFormedDocument reports whether data contains an "<html" tag
// opening; it does not parse the document or validate individual records.
func IsWellFormedDocument(data []byte) bool {
	return strings.Contains(string(data), "<html")
}
