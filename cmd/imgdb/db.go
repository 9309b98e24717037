package main

import (
	"flag"
	"fmt"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/ops"
)

// dbCommand exposes the sync-from-folders report and the info/stats
// summary; it never mutates the archive unless --purge-broken is set
// (§6).
func dbCommand(args []string) error {
	fs := flag.NewFlagSet("db", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	purgeBroken := fs.Bool("purge-broken", false, "remove records whose file no longer exists on disk")
	topN := fs.Int("top", 5, "how many top formats/maker-models to show")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb db [options] <folder>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}

	cfg, err := cf.buildConfig()
	if err != nil {
		return err
	}

	if fs.NArg() > 0 {
		result, err := ops.Sync(fs.Args(), cfg, *purgeBroken)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		fmt.Printf("working=%d broken-purged=%d not-imported=%d\n", result.Working, result.BrokenPurged, len(result.NotImported))
		for _, p := range result.NotImported {
			fmt.Printf("  not imported: %s\n", p)
		}
	}

	arc, err := archive.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("db: opening archive: %w", err)
	}
	stats := ops.Info(arc)
	fmt.Printf("\ntotal=%d bytes=%d earliest=%s latest=%s\n", stats.Total, stats.TotalBytes, stats.EarliestDate, stats.LatestDate)
	fmt.Println(ops.RenderBarChart(countsFor(stats.ByFormat, stats.TopFormats(*topN)), 50))
	fmt.Println(ops.RenderBarChart(countsFor(stats.ByMakerModel, stats.TopMakerModels(*topN)), 50))
	return nil
}

func countsFor(all map[string]int, keys []string) map[string]int {
	out := make(map[string]int, len(keys))
	for _, k := range keys {
		out[k] = all[k]
	}
	return out
}
