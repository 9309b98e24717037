package main

import (
	"flag"
	"fmt"

	"github.com/adewale/imgdb/internal/ops"
)

func renameCommand(args []string) error {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	name := fs.String("name", "", "rename template, e.g. '{date}-{dhash:.8s}'")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb rename --name <template> [options] <folder>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return userErrf("at least one input folder is required")
	}
	if *name == "" {
		fs.Usage()
		return userErrf("--name is required")
	}

	cfg, err := cf.buildConfig()
	if err != nil {
		return err
	}

	stats, err := ops.Rename(fs.Args(), *name, cfg)
	if err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	fmt.Printf("found=%d renamed=%d skipped=%d failed=%d\n", stats.Found, stats.Renamed, stats.Skipped, stats.Failed)
	return nil
}
