// Package query implements the filter expression language: a
// semicolon-or-comma-separated chain of (field, comparator, value)
// triples, ANDed together, evaluated against an imgmeta.Record.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/adewale/imgdb/internal/imgmeta"
)

// ErrQuery is the sentinel wrapped by every parse/schema failure.
var ErrQuery = fmt.Errorf("invalid query")

// Comparator identifies one of the supported relational/regex operators.
type Comparator string

const (
	OpLT       Comparator = "<"
	OpLE       Comparator = "<="
	OpGT       Comparator = ">"
	OpGE       Comparator = ">="
	OpEQ       Comparator = "="
	OpNE       Comparator = "!="
	OpRegex    Comparator = "~"
	OpRegexCI  Comparator = "~~"
	OpNotRegex Comparator = "!~"
	OpNotRegexCI Comparator = "!~~"
)

// orderedComparators lists comparator tokens longest-first so the
// tokenizer never matches a prefix of a longer operator (e.g. "!~~"
// before "!~").
var orderedComparators = []Comparator{
	OpNotRegexCI, OpRegexCI, // 3-char / 2-char regex negation/case-insensitive forms first
	OpLE, OpGE, OpNE, OpNotRegex, "==", // every other 2-char operator
	OpLT, OpGT, OpEQ, OpRegex, // 1-char operators last
}

// Clause is one parsed (field, comparator, value) triple.
type Clause struct {
	Field      string
	Comparator Comparator
	Value      string
}

// Query is a parsed, schema-validated, ANDed chain of clauses, ready for
// repeated evaluation against records.
type Query struct {
	clauses []compiledClause
}

type compiledClause struct {
	Clause
	re     *regexp.Regexp
	reOnce sync.Once
	reErr  error
}

// Parse tokenizes expr into clauses separated by ';', ',', or runs of
// whitespace, validates every field against schema (the set of attribute
// names the caller considers queryable), and returns a ready-to-evaluate
// Query.
func Parse(expr string, schema map[string]bool) (*Query, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Query{}, nil
	}
	parts := splitClauses(expr)
	q := &Query{clauses: make([]compiledClause, 0, len(parts))}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clause, err := parseClause(part)
		if err != nil {
			return nil, err
		}
		if schema != nil && !schema[clause.Field] {
			return nil, fmt.Errorf("%w: unknown field %q", ErrQuery, clause.Field)
		}
		q.clauses = append(q.clauses, compiledClause{Clause: clause})
	}
	return q, nil
}

func splitClauses(expr string) []string {
	return strings.FieldsFunc(expr, func(r rune) bool {
		return r == ';' || r == ',' || unicode.IsSpace(r)
	})
}

func parseClause(part string) (Clause, error) {
	for _, op := range orderedComparators {
		idx := strings.Index(part, string(op))
		if idx < 0 {
			continue
		}
		field := strings.TrimSpace(part[:idx])
		value := strings.TrimSpace(part[idx+len(op):])
		if field == "" {
			return Clause{}, fmt.Errorf("%w: empty field in clause %q", ErrQuery, part)
		}
		comp := op
		if comp == "==" {
			comp = OpEQ
		}
		return Clause{Field: field, Comparator: comp, Value: value}, nil
	}
	return Clause{}, fmt.Errorf("%w: no recognized comparator in clause %q", ErrQuery, part)
}

// Match evaluates every clause against rec, ANDed. A missing field is
// treated as its coerced zero value (empty string / 0 / 0.0).
func (q *Query) Match(rec imgmeta.Record) bool {
	if q == nil {
		return true
	}
	for i := range q.clauses {
		if !q.clauses[i].match(rec) {
			return false
		}
	}
	return true
}

func (c *compiledClause) match(rec imgmeta.Record) bool {
	raw := rec[c.Field]
	switch c.Comparator {
	case OpRegex, OpRegexCI, OpNotRegex, OpNotRegexCI:
		return c.matchRegex(raw)
	default:
		return c.matchTyped(raw)
	}
}

func (c *compiledClause) matchRegex(raw string) bool {
	c.reOnce.Do(func() {
		pattern := c.Value
		if c.Comparator == OpRegexCI || c.Comparator == OpNotRegexCI {
			pattern = "(?i)" + pattern
		}
		c.re, c.reErr = regexp.Compile(pattern)
	})
	if c.reErr != nil {
		return false
	}
	found := c.re.MatchString(raw)
	if c.Comparator == OpNotRegex || c.Comparator == OpNotRegexCI {
		return !found
	}
	return found
}

func (c *compiledClause) matchTyped(raw string) bool {
	if imgmeta.IntFields[c.Field] {
		return compareInt(raw, c.Value, c.Comparator)
	}
	if imgmeta.FloatFields[c.Field] {
		return compareFloat(raw, c.Value, c.Comparator)
	}
	return compareString(raw, c.Value, c.Comparator)
}

func compareString(a, b string, op Comparator) bool {
	switch op {
	case OpEQ:
		return a == b
	case OpNE:
		return a != b
	case OpLT:
		return a < b
	case OpLE:
		return a <= b
	case OpGT:
		return a > b
	case OpGE:
		return a >= b
	}
	return false
}

func compareInt(a, b string, op Comparator) bool {
	av, _ := strconv.ParseInt(a, 10, 64)
	bv, _ := strconv.ParseInt(b, 10, 64)
	switch op {
	case OpEQ:
		return av == bv
	case OpNE:
		return av != bv
	case OpLT:
		return av < bv
	case OpLE:
		return av <= bv
	case OpGT:
		return av > bv
	case OpGE:
		return av >= bv
	}
	return false
}

func compareFloat(a, b string, op Comparator) bool {
	av, _ := strconv.ParseFloat(a, 64)
	bv, _ := strconv.ParseFloat(b, 64)
	switch op {
	case OpEQ:
		return av == bv
	case OpNE:
		return av != bv
	case OpLT:
		return av < bv
	case OpLE:
		return av <= bv
	case OpGT:
		return av > bv
	case OpGE:
		return av >= bv
	}
	return false
}
