package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/ops"
)

func exportCommand(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	format := fs.String("format", "json", "json/jsonlines/csv/html")
	out := fs.String("out", "", "output file (defaults to stdout)")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb export [options]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}

	cfg, err := cf.buildConfig()
	if err != nil {
		return err
	}

	arc, err := archive.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("export: opening archive: %w", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("export: creating %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}

	switch ops.ExportFormat(*format) {
	case ops.FormatJSON, ops.FormatJSONLines, ops.FormatCSV, ops.FormatHTML:
	default:
		return userErrf("unknown export format %q", *format)
	}
	if err := ops.Export(arc, cfg.Filter, ops.ExportFormat(*format), w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
