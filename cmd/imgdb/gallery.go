package main

import (
	"flag"
	"fmt"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/ops"
)

func galleryCommand(args []string) error {
	fs := flag.NewFlagSet("gallery", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	tmpl := fs.String("tmpl", "", "custom gallery template file (defaults to the built-in template)")
	wrapAt := fs.Int("wrap-at", 1000, "create a new gallery page every N images")
	addAttrs := fs.String("add-attrs", "", "attributes to inject as blank before rendering")
	delAttrs := fs.String("del-attrs", "", "attributes to strip before rendering")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb gallery [options] <destination.html>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return userErrf("a destination path is required")
	}

	cfg, err := cf.buildConfig(
		config.WithTemplate(*tmpl),
		config.WithWrapAt(*wrapAt),
		config.WithAddAttrs(*addAttrs),
		config.WithDelAttrs(*delAttrs),
	)
	if err != nil {
		return err
	}

	arc, err := archive.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("gallery: opening archive: %w", err)
	}
	stats, err := ops.Gallery(arc, fs.Arg(0), cfg)
	if err != nil {
		return fmt.Errorf("gallery: %w", err)
	}
	fmt.Printf("matched=%d pages=%d\n", stats.Matched, stats.Pages)
	return nil
}
