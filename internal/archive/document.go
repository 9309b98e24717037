// Package archive implements the archive document: a single structured
// HTML file that is both the catalog's database and a viewable page. The
// head carries archive-level metadata; the body holds one <img> record
// per cataloged image.
package archive

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/adewale/imgdb/internal/imgmeta"
)

// dataAttrPrefix is the attribute-namespace prefix every record field
// uses in the rendered document, mirroring the original's `data-*`
// vocabulary (`data-pth`, `data-format`, ...).
const dataAttrPrefix = "data-"

// Generator is the value written into the document's generator meta tag.
const Generator = "imgdb"

const dateLayout = "2006-01-02T15:04"

// Archive is the in-memory, owned view of one archive document. Multiple
// readers may hold independent Archives (Open copies everything into
// memory); only one writer should ever be active for a given file.
type Archive struct {
	mu sync.Mutex

	Path string
	Head map[string]string

	records    map[string]imgmeta.Record
	thumbnails map[string]string // id -> "data:<mime>;base64,<...>"
}

// New creates an empty, unsaved archive at path.
func New(path string) *Archive {
	return &Archive{
		Path:       path,
		Head:       defaultHead(),
		records:    map[string]imgmeta.Record{},
		thumbnails: map[string]string{},
	}
}

func defaultHead() map[string]string {
	return map[string]string{
		"date-created": time.Now().Format(dateLayout),
		"generator":    Generator,
	}
}

// Open parses an existing archive file. A missing file is not an error:
// it returns a fresh, empty Archive (mirroring a first-ever ingestion
// run with no prior catalog).
func Open(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("archive: reading %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Archive, error) {
	root, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("archive: parsing %s: %w", path, err)
	}

	a := &Archive{
		Path:       path,
		Head:       map[string]string{},
		records:    map[string]imgmeta.Record{},
		thumbnails: map[string]string{},
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				name, content := metaAttrs(n)
				if name != "" {
					a.Head[name] = content
				}
			case "img":
				rec, thumb, ok := elementToRecord(n)
				if ok {
					a.records[rec.ID()] = rec
					if thumb != "" {
						a.thumbnails[rec.ID()] = thumb
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if a.Head["date-created"] == "" {
		a.Head["date-created"] = time.Now().Format(dateLayout)
	}
	if a.Head["generator"] == "" {
		a.Head["generator"] = Generator
	}
	return a, nil
}

func metaAttrs(n *html.Node) (name, content string) {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			name = attr.Val
		case "content":
			content = attr.Val
		}
	}
	return name, content
}

// elementToRecord converts one <img> element to a Record plus its
// embedded thumbnail data URI, validating the §3 mandatory-field
// invariant ("records with a missing/invalid id are silently discarded
// on load").
func elementToRecord(n *html.Node) (imgmeta.Record, string, bool) {
	rec := imgmeta.Record{}
	var thumb string
	for _, attr := range n.Attr {
		switch {
		case attr.Key == "id":
			rec[imgmeta.FieldID] = attr.Val
		case attr.Key == "src":
			thumb = attr.Val
		case attr.Key == dataAttrPrefix+"size":
			w, h, ok := splitSize(attr.Val)
			if ok {
				rec[imgmeta.FieldWidth] = w
				rec[imgmeta.FieldHeight] = h
			}
		case strings.HasPrefix(attr.Key, dataAttrPrefix):
			field := strings.TrimPrefix(attr.Key, dataAttrPrefix)
			rec[field] = attr.Val
		}
	}
	if len(rec[imgmeta.FieldID]) <= 3 || len(rec[imgmeta.FieldPth]) <= 3 ||
		rec[imgmeta.FieldBytes] == "" || rec[imgmeta.FieldMode] == "" || rec[imgmeta.FieldFormat] == "" {
		return nil, "", false
	}
	return rec, thumb, true
}

func splitSize(v string) (w, h string, ok bool) {
	parts := strings.SplitN(v, ",", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return "", "", false
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Len returns the number of records currently held.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Records returns a snapshot slice of every record, ordered by
// sortedIDsLocked on the "date" attribute.
func (a *Archive) Records() []imgmeta.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]imgmeta.Record, 0, len(a.records))
	for _, id := range a.sortedIDsLocked("date") {
		out = append(out, a.records[id].Clone())
	}
	return out
}

// Get returns one record by id.
func (a *Archive) Get(id string) (imgmeta.Record, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.records[id]
	return rec.Clone(), ok
}

// Thumbnail returns the embedded thumbnail data URI for id, if any.
func (a *Archive) Thumbnail(id string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.thumbnails[id]
	return t, ok
}

// HasID reports whether id is already present (used by add's pre-scan).
func (a *Archive) HasID(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.records[id]
	return ok
}

// ExistingIDs returns the full set of ids currently in the archive.
func (a *Archive) ExistingIDs() map[string]bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]bool, len(a.records))
	for id := range a.records {
		out[id] = true
	}
	return out
}

func (a *Archive) sortedIDsLocked(sortAttr string) []string {
	ids := make([]string, 0, len(a.records))
	for id := range a.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ki := a.records[ids[i]].SortKey(sortAttr)
		kj := a.records[ids[j]].SortKey(sortAttr)
		if ki != kj {
			return ki > kj // descending
		}
		return ids[i] > ids[j] // ties broken by id, descending to match stable-desc semantics
	})
	return ids
}
