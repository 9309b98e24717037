package metaextract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/adewale/imgdb/internal/imgmeta"
)

// templatePlaceholder matches the restricted `{field[:format]}`
// vocabulary from §9's design note: no arbitrary code, only a field name
// and an optional truncation format.
var templatePlaceholder = regexp.MustCompile(`\{([a-zA-Z0-9_-]+)(?::([^}]*))?\}`)

// EvaluateTemplate renders a uid/rename/link/gallery template against a
// record using only field lookups and a small formatting vocabulary
// (".Ns" truncates to N runes). This is the safe replacement for the
// original's host-language template interpreter.
func EvaluateTemplate(tmpl string, rec imgmeta.Record) (string, error) {
	var evalErr error
	out := templatePlaceholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		groups := templatePlaceholder.FindStringSubmatch(match)
		field, format := groups[1], groups[2]
		val := rec[field]
		if format == "" {
			return val
		}
		rendered, err := applyFormat(val, format)
		if err != nil {
			evalErr = fmt.Errorf("metaextract: template field %q: %w", field, err)
			return ""
		}
		return rendered
	})
	if evalErr != nil {
		return "", evalErr
	}
	return out, nil
}

// applyFormat supports the small vocabulary needed by the spec's own
// example (`{sha256:.8s}` truncates to 8 characters).
func applyFormat(val, format string) (string, error) {
	if strings.HasSuffix(format, "s") && strings.HasPrefix(format, ".") {
		nStr := strings.TrimSuffix(strings.TrimPrefix(format, "."), "s")
		n, err := strconv.Atoi(nStr)
		if err != nil {
			return "", fmt.Errorf("invalid truncation format %q", format)
		}
		runes := []rune(val)
		if n < len(runes) {
			runes = runes[:n]
		}
		return string(runes), nil
	}
	return "", fmt.Errorf("unsupported template format %q", format)
}
