package archive

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/adewale/imgdb/internal/imgmeta"
)

// Journal is the append-only crash-safe companion file ingestion writes
// to: one fully self-contained record per line, no head, no wrapper.
// Filename is the archive path with a tilde suffix (§6).
type Journal struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// JournalPath derives the journal filename for a given archive path.
func JournalPath(archivePath string) string {
	return archivePath + "~"
}

// OpenJournal opens (creating if absent) the journal in append+read mode.
func OpenJournal(archivePath string) (*Journal, error) {
	path := JournalPath(archivePath)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("archive: opening journal %s: %w", path, err)
	}
	return &Journal{path: path, f: f}, nil
}

// Append serializes rec (with its embedded thumbnail) and writes it as
// one complete, newline-terminated line, guarded by a writer lock so
// concurrent collector writes never interleave a partial record.
func (j *Journal) Append(rec imgmeta.Record, thumbDataURI string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	line := EncodeRecord(rec, thumbDataURI) + "\n"
	if _, err := j.f.WriteString(line); err != nil {
		return fmt.Errorf("archive: appending to journal: %w", err)
	}
	return nil
}

// Sync flushes the journal to stable storage.
func (j *Journal) Sync() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Sync()
}

// Close closes the underlying file handle without deleting it.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Close()
}

// ReadAll reads every well-formed record currently in the journal. Safe
// to call concurrently with Append from a different Journal handle on
// the same path (readers don't need the writer lock, per §4.5).
func ReadAll(archivePath string) ([]imgmeta.Record, error) {
	path := JournalPath(archivePath)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("archive: reading journal %s: %w", path, err)
	}
	return parseRecordLines(data), nil
}

// Delete removes the journal file from disk, called once its content has
// been folded into the merged archive.
func Delete(archivePath string) error {
	path := JournalPath(archivePath)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("archive: removing journal %s: %w", path, err)
	}
	return nil
}

// parseRecordLines parses each line as a standalone <img> fragment,
// discarding malformed or incomplete lines (a truncated final line after
// a crash mid-append is simply dropped, not fatal).
func parseRecordLines(data []byte) []imgmeta.Record {
	var out []imgmeta.Record
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, ok := parseRecordFragment(line)
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

func parseRecordFragment(line string) (imgmeta.Record, bool) {
	nodes, err := html.ParseFragment(strings.NewReader(line), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, false
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.Data == "img" {
			rec, _, ok := elementToRecord(n)
			return rec, ok
		}
	}
	return nil, false
}
