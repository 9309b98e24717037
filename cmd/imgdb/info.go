package main

import (
	"flag"
	"fmt"

	"github.com/adewale/imgdb/internal/metaextract"
)

// infoCommand extracts and prints meta for each input file directly,
// with no archive involved, mirroring the original's cli/info.py.
func infoCommand(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	fs.Usage = func() {
		fmt.Println("Usage: imgdb info [options] <file>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return userErrf("at least one input file is required")
	}

	cfg, err := cf.buildConfig()
	if err != nil {
		return err
	}

	for _, path := range fs.Args() {
		result, err := metaextract.Extract(path, cfg)
		if err != nil {
			fmt.Printf("%s: ERROR: %v\n", path, err)
			continue
		}
		fmt.Printf("%s:\n", path)
		for k, v := range result.Record {
			fmt.Printf("  %s = %s\n", k, v)
		}
	}
	return nil
}
