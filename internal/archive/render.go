package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Save renders the archive to disk: head (with date-updated refreshed),
// then records sorted descending by sortAttr (default "date"), ties
// broken by id. Written atomically via a temp sibling file then rename.
func (a *Archive) Save(sortAttr string) error {
	a.mu.Lock()
	a.Head["date-updated"] = time.Now().Format(dateLayout)
	ids := a.sortedIDsLocked(sortAttr)
	var body strings.Builder
	for _, id := range ids {
		body.WriteString(EncodeRecord(a.records[id], a.thumbnails[id]))
		body.WriteString("\n")
	}
	headNames := make([]string, 0, len(a.Head))
	for k := range a.Head {
		headNames = append(headNames, k)
	}
	sort.Strings(headNames)
	var head strings.Builder
	head.WriteString("<head>\n")
	head.WriteString(`<meta charset="utf-8">` + "\n")
	for _, name := range headNames {
		fmt.Fprintf(&head, `<meta name="%s" content="%s">`+"\n", escape(name), escape(a.Head[name]))
	}
	head.WriteString("</head>")
	doc := fmt.Sprintf("<!DOCTYPE html><html lang=\"en\">\n%s\n<body>\n%s</body></html>\n", head.String(), body.String())
	a.mu.Unlock()

	return writeAtomic(a.Path, []byte(doc))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".archive-*.tmp")
	if err != nil {
		return fmt.Errorf("archive: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("archive: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("archive: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("archive: renaming temp file into place: %w", err)
	}
	return nil
}
