package archive

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/adewale/imgdb/internal/imgmeta"
)

// EncodeRecord renders rec (plus its optional embedded thumbnail data
// URI) as a single self-contained <img> element: the unit both the
// archive body and the journal use, one per line in the journal, one per
// body entry in the saved document.
func EncodeRecord(rec imgmeta.Record, thumbDataURI string) string {
	var b strings.Builder
	b.WriteString("<img")
	fmt.Fprintf(&b, ` id="%s"`, escape(rec.ID()))

	keys := make([]string, 0, len(rec))
	for k := range rec {
		if k == imgmeta.FieldID {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	wroteSize := false
	for _, k := range keys {
		if (k == imgmeta.FieldWidth || k == imgmeta.FieldHeight) && !wroteSize {
			w, h := rec[imgmeta.FieldWidth], rec[imgmeta.FieldHeight]
			if w != "" && h != "" {
				fmt.Fprintf(&b, ` data-size="%s,%s"`, escape(w), escape(h))
			}
			wroteSize = true
			continue
		}
		if k == imgmeta.FieldWidth || k == imgmeta.FieldHeight {
			continue
		}
		fmt.Fprintf(&b, ` data-%s="%s"`, k, escape(rec[k]))
	}
	if thumbDataURI != "" {
		fmt.Fprintf(&b, ` src="%s"`, escape(thumbDataURI))
	}
	b.WriteString(">")
	return b.String()
}

func escape(s string) string {
	return html.EscapeString(s)
}
