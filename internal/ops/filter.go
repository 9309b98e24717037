package ops

import (
	"fmt"
	"sort"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/imgmeta"
	"github.com/adewale/imgdb/internal/query"
)

// filterRecords returns every record in arc matching expr (empty expr
// matches everything). The schema is built from the actual attribute
// set present across the archive, since user-attached custom attributes
// are first-class queryable fields too, not just the canonical ones.
func filterRecords(arc *archive.Archive, expr string) ([]imgmeta.Record, error) {
	records := arc.Records()
	schema := archiveSchema(records)

	var q *query.Query
	if expr != "" {
		parsed, err := query.Parse(expr, schema)
		if err != nil {
			return nil, fmt.Errorf("ops: invalid filter: %w", err)
		}
		q = parsed
	}

	out := make([]imgmeta.Record, 0, len(records))
	for _, rec := range records {
		if q == nil || q.Match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func archiveSchema(records []imgmeta.Record) map[string]bool {
	schema := map[string]bool{}
	for _, rec := range records {
		for k := range rec {
			schema[k] = true
		}
	}
	return schema
}

// attributeColumns returns the union of attribute keys across records,
// with id/pth pinned first and the rest alphabetically sorted, per
// §4.7's export schema rule.
func attributeColumns(records []imgmeta.Record) []string {
	set := map[string]bool{}
	for _, rec := range records {
		for k := range rec {
			set[k] = true
		}
	}
	delete(set, imgmeta.FieldID)
	delete(set, imgmeta.FieldPth)

	rest := make([]string, 0, len(set))
	for k := range set {
		rest = append(rest, k)
	}
	sort.Strings(rest)

	cols := make([]string, 0, len(set)+2)
	cols = append(cols, imgmeta.FieldID, imgmeta.FieldPth)
	cols = append(cols, rest...)
	return cols
}
