package ops

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/imgmeta"
)

// galleryPage is one page's worth of data passed to the gallery template.
type galleryPage struct {
	Title    string
	Images   []galleryImage
	Page     int
	NextPage string
	PrevPage string
}

type galleryImage struct {
	ID         string
	Thumbnail  string
	Attributes map[string]string
}

var defaultGalleryTmpl = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}} (page {{.Page}})</h1>
{{if .PrevPage}}<a href="{{.PrevPage}}">previous</a>{{end}}
{{if .NextPage}}<a href="{{.NextPage}}">next</a>{{end}}
<div class="gallery">
{{range .Images}}
<figure><img src="{{.Thumbnail}}" alt="{{.ID}}"><figcaption>{{.ID}}</figcaption></figure>
{{end}}
</div>
</body>
</html>
`))

// GalleryStats summarizes one Gallery call.
type GalleryStats struct {
	Matched int
	Pages   int
}

// Gallery filters arc's records by cfg.Filter, strips/injects the
// configured attribute lists, paginates the result by cfg.WrapAt, and
// renders each page to destBase (page N>1 gets a "-N" suffix before the
// extension) via cfg.Template if present on disk, else the built-in
// template. Each page after the first links back to the previous one
// and forward to the next, per §8's three-page/1000-1000-500 scenario.
func Gallery(arc *archive.Archive, destBase string, cfg *config.Config) (GalleryStats, error) {
	records, err := filterRecords(arc, cfg.Filter)
	if err != nil {
		return GalleryStats{}, err
	}

	tmpl := defaultGalleryTmpl
	if cfg.Template != "" {
		if data, readErr := os.ReadFile(cfg.Template); readErr == nil {
			parsed, parseErr := template.New(filepath.Base(cfg.Template)).Parse(string(data))
			if parseErr == nil {
				tmpl = parsed
			} else {
				log.Printf("ops: gallery: falling back to built-in template: %v", parseErr)
			}
		}
	}

	wrapAt := cfg.WrapAt
	if wrapAt <= 0 {
		wrapAt = len(records)
	}
	pages := chunkRecords(records, wrapAt)

	for i, pageRecords := range pages {
		images := make([]galleryImage, 0, len(pageRecords))
		for _, rec := range pageRecords {
			rec = applyAttrLists(rec, cfg.AddAttrs, cfg.DelAttrs)
			thumb, _ := arc.Thumbnail(rec.ID())
			images = append(images, galleryImage{ID: rec.ID(), Thumbnail: thumb, Attributes: rec})
		}

		page := galleryPage{
			Title:  "img-DB gallery",
			Images: images,
			Page:   i + 1,
		}
		if i > 0 {
			page.PrevPage = galleryPageName(destBase, i)
		}
		if i+1 < len(pages) {
			page.NextPage = galleryPageName(destBase, i+2)
		}

		out := galleryPageName(destBase, i+1)
		if cfg.DryRun {
			continue
		}
		f, err := os.Create(out)
		if err != nil {
			return GalleryStats{}, fmt.Errorf("ops: creating gallery page %s: %w", out, err)
		}
		err = tmpl.Execute(f, page)
		f.Close()
		if err != nil {
			return GalleryStats{}, fmt.Errorf("ops: rendering gallery page %s: %w", out, err)
		}
	}

	return GalleryStats{Matched: len(records), Pages: len(pages)}, nil
}

func chunkRecords(records []imgmeta.Record, size int) [][]imgmeta.Record {
	if size <= 0 || len(records) == 0 {
		return [][]imgmeta.Record{records}
	}
	var pages [][]imgmeta.Record
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		pages = append(pages, records[start:end])
	}
	return pages
}

func galleryPageName(base string, page int) string {
	if page <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s-%d%s", stem, page, ext)
}

// applyAttrLists returns a copy of rec with addAttrs injected as blank
// placeholders (when absent) and delAttrs removed, mirroring the
// original's gallery --add-attrs/--del-attrs pre-export hooks.
func applyAttrLists(rec imgmeta.Record, addAttrs, delAttrs []string) imgmeta.Record {
	out := rec.Clone()
	for _, attr := range addAttrs {
		if _, ok := out[attr]; !ok {
			out[attr] = ""
		}
	}
	for _, attr := range delAttrs {
		delete(out, attr)
	}
	return out
}
