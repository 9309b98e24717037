package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/ops"
)

func addCommand(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	var cf commonFlags
	registerCommonFlags(fs, &cf)
	output := fs.String("output", "", "archive-file destination root (enables copy/move/link)")
	operation := fs.String("operation", "noop", "file-side-effect: noop/copy/move/link")
	subfolderLen := fs.Int("archive-subfolder-len", 1, "archive-file shard width (0-4)")
	symLinks := fs.Bool("sym-links", false, "use symbolic links instead of hard links")
	uid := fs.String("uid", "{blake2b}", "id derivation template")
	fs.Usage = func() {
		fmt.Println("Usage: imgdb add [options] <folder>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return &userError{err: err}
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return userErrf("at least one input folder is required")
	}

	cfg, err := cf.buildConfig(
		config.WithOutput(*output),
		config.WithOperation(*operation),
		config.WithArchiveSubfolderLen(*subfolderLen),
		config.WithSymLinks(*symLinks),
		config.WithUID(*uid),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stats, err := ops.Add(ctx, fs.Args(), cfg)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("add: cancelled, journal preserved for resume")
			return nil
		}
		return fmt.Errorf("add: %w", err)
	}
	fmt.Printf("found=%d processed=%d skipped=%d failed=%d\n", stats.Found, stats.Processed, stats.Skipped, stats.Failed)
	return nil
}
