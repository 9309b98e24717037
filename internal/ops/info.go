package ops

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/imgmeta"
)

// Stats is a read-only summary of an archive's contents: a thin
// composition over the archive and query layers, no new lifecycle
// state (§4.7 info/stats).
type Stats struct {
	Total        int
	TotalBytes   int64
	ByFormat     map[string]int
	ByMakerModel map[string]int
	EarliestDate string
	LatestDate   string
}

// Info opens arc read-only and computes Stats over every record.
func Info(arc *archive.Archive) Stats {
	records := arc.Records()
	s := Stats{
		Total:        len(records),
		ByFormat:     map[string]int{},
		ByMakerModel: map[string]int{},
	}
	for _, rec := range records {
		s.ByFormat[rec[imgmeta.FieldFormat]]++
		if mm := rec[imgmeta.FieldMakerModel]; mm != "" {
			s.ByMakerModel[mm]++
		}
		if n, err := strconv.ParseInt(rec[imgmeta.FieldBytes], 10, 64); err == nil {
			s.TotalBytes += n
		}
		date := rec[imgmeta.FieldDate]
		if date == "" {
			continue
		}
		if s.EarliestDate == "" || date < s.EarliestDate {
			s.EarliestDate = date
		}
		if s.LatestDate == "" || date > s.LatestDate {
			s.LatestDate = date
		}
	}
	return s
}

// TopMakerModels returns the n most common maker-model values,
// descending by count.
func (s Stats) TopMakerModels(n int) []string {
	return topN(s.ByMakerModel, n)
}

// TopFormats returns the n most common formats, descending by count.
func (s Stats) TopFormats(n int) []string {
	return topN(s.ByFormat, n)
}

func topN(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// RenderBarChart draws a simple ASCII bar chart of counts, widest bar
// scaled to width, adapted from the original's chart.Bar.
func RenderBarChart(counts map[string]int, width int) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	maxKeyLen, maxVal := 0, 0
	for k, v := range counts {
		keys = append(keys, k)
		if len(k) > maxKeyLen {
			maxKeyLen = len(k)
		}
		if v > maxVal {
			maxVal = v
		}
	}
	sort.Slice(keys, func(i, j int) bool { return counts[keys[i]] > counts[keys[j]] })
	if maxVal == 0 {
		maxVal = 1
	}

	var b strings.Builder
	for _, k := range keys {
		v := counts[k]
		shown := int(float64(width) * float64(v) / float64(maxVal))
		if shown == 0 && v != 0 {
			shown = 1
		}
		bar := strings.Repeat("#", shown) + strings.Repeat(" ", width-shown)
		fmt.Fprintf(&b, "%*s | %s | %d\n", maxKeyLen, k, bar, v)
	}
	return b.String()
}
