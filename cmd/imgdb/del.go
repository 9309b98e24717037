package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/ops"
)

func delCommand(args []string) error {
	fs := flag.NewFlagSet("del", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	namesCSV := fs.String("names", "", "comma-separated explicit ids to delete")
	output := fs.String("output", "", "archive output root, so matching files are also unlinked")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb del [--names id1,id2 | -filter expr] [options]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}

	cfg, err := cf.buildConfig(config.WithOutput(*output))
	if err != nil {
		return err
	}
	if *namesCSV == "" && cfg.Filter == "" {
		fs.Usage()
		return userErrf("must provide --names and/or --filter")
	}

	n, err := ops.Delete(splitIDs(*namesCSV), cfg)
	if err != nil {
		return fmt.Errorf("del: %w", err)
	}
	fmt.Printf("deleted %d records\n", n)
	return nil
}

func splitIDs(csv string) []string {
	if csv == "" {
		return nil
	}
	return strings.Split(csv, ",")
}
