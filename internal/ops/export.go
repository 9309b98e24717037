package ops

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/imgmeta"
)

// ExportFormat identifies one of the export serializations §4.7 names.
type ExportFormat string

const (
	FormatJSON      ExportFormat = "json"
	FormatJSONLines ExportFormat = "jsonlines"
	FormatCSV       ExportFormat = "csv"
	FormatHTML      ExportFormat = "html"
)

// Export filters arc's records by expr and writes them to w in format.
// The column/attribute set is the union across the filtered records,
// with id and pth pinned first, the rest alphabetical.
func Export(arc *archive.Archive, expr string, format ExportFormat, w io.Writer) error {
	records, err := filterRecords(arc, expr)
	if err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		return exportJSON(records, w)
	case FormatJSONLines:
		return exportJSONLines(records, w)
	case FormatCSV:
		return exportCSV(records, w)
	case FormatHTML:
		return exportHTML(records, w)
	default:
		return fmt.Errorf("ops: unknown export format %q", format)
	}
}

func exportJSON(records []imgmeta.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func exportJSONLines(records []imgmeta.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func exportCSV(records []imgmeta.Record, w io.Writer) error {
	cols := attributeColumns(records)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = rec[c]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var exportHTMLTmpl = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>imgdb export</title></head>
<body>
<table border="1">
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
</body>
</html>
`))

func exportHTML(records []imgmeta.Record, w io.Writer) error {
	cols := attributeColumns(records)
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = rec[c]
		}
		rows[i] = row
	}
	return exportHTMLTmpl.Execute(w, struct {
		Columns []string
		Rows    [][]string
	}{cols, rows})
}
