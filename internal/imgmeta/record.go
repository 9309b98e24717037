// Package imgmeta defines the meta record: the flat attribute map that
// describes one image, shared by the extractor, archive, query and
// operations packages. Grounded on the attribute shape in the original's
// imgdb/db.py (DB_TMPL's data-* attributes) and img.py.
package imgmeta

import "strings"

// Canonical, well-known attribute names. Anything else is a free-form
// user or hash/algorithm attribute.
const (
	FieldID         = "id"
	FieldPth        = "pth"
	FieldFormat     = "format"
	FieldMode       = "mode"
	FieldWidth      = "width"
	FieldHeight     = "height"
	FieldBytes      = "bytes"
	FieldDate       = "date"
	FieldMakerModel = "maker-model"
	FieldTopColors  = "top-colors"
)

// MandatoryFields must be non-empty for a record to be considered
// well-formed (§3 Archive document invariants).
var MandatoryFields = []string{FieldID, FieldPth, FieldFormat}

// IntFields lists attributes the query engine coerces to integers.
var IntFields = map[string]bool{
	"width": true, "height": true, "bytes": true, "iso": true, "rating": true,
}

// FloatFields lists attributes the query engine coerces to floats.
var FloatFields = map[string]bool{
	"illumination": true, "saturation": true, "contrast": true,
	"aperture": true, "focal-length": true,
}

// Record is the full attribute map describing one image. Every value is
// stored as its canonical string form (the same representation that
// appears in a `data-*` archive attribute); typed accessors below
// convert on read. A list-valued attribute such as top-colors is stored
// joined with ";".
type Record map[string]string

// Clone returns an independent copy, so workers never share a Record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID returns the record's primary key.
func (r Record) ID() string { return r[FieldID] }

// IsEmpty reports whether this is the "no record" sentinel used by
// decode failures and filter misses (§4.3).
func (r Record) IsEmpty() bool { return len(r) == 0 }

// IsWellFormed checks the archive invariants: non-empty id/pth/format and
// a positive byte size.
func (r Record) IsWellFormed() bool {
	for _, f := range MandatoryFields {
		if strings.TrimSpace(r[f]) == "" {
			return false
		}
	}
	return r[FieldBytes] != "" && r[FieldBytes] != "0"
}

// TopColorsList splits the stored top-colors attribute back into a list.
func (r Record) TopColorsList() []string {
	v := r[FieldTopColors]
	if v == "" {
		return nil
	}
	return strings.Split(v, ";")
}

// SetTopColorsList joins a top-colors list into its stored form.
func (r Record) SetTopColorsList(colors []string) {
	r[FieldTopColors] = strings.Join(colors, ";")
}

// MergeAttr applies the attribute-granularity "newer wins, blank never
// overwrites" rule from §3/§4.5: for every key in incoming, overwrite the
// receiver's value iff incoming's value is non-blank. Keys present only
// in the receiver are preserved.
func (r Record) MergeAttr(incoming Record) Record {
	out := r.Clone()
	for k, v := range incoming {
		if v != "" {
			out[k] = v
		} else if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

// SortKey returns the value to sort descending by (default the `date`
// attribute), falling back to "00"+id when the key is blank so records
// lacking it sort last — the exact tie-break §9 requires preserving.
func (r Record) SortKey(attr string) string {
	if attr == "" {
		attr = FieldDate
	}
	if v := r[attr]; v != "" {
		return v
	}
	return "00" + r.ID()
}
