package main

import (
	"flag"
	"fmt"

	"github.com/adewale/imgdb/internal/archive"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/ops"
)

func linksCommand(args []string) error {
	fs := flag.NewFlagSet("links", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	symLinks := fs.Bool("sym-links", false, "use symbolic links instead of hard links")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb links [options] <template>")
		fmt.Println(`  e.g. imgdb links 'out/{date}/{maker-model}/{id}'`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return userErrf("a link template is required")
	}

	cfg, err := cf.buildConfig(config.WithSymLinks(*symLinks))
	if err != nil {
		return err
	}

	arc, err := archive.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("links: opening archive: %w", err)
	}
	stats, err := ops.Links(arc, fs.Arg(0), cfg)
	if err != nil {
		return fmt.Errorf("links: %w", err)
	}
	fmt.Printf("considered=%d linked=%d failed=%d\n", stats.Considered, stats.Linked, stats.Failed)
	return nil
}
