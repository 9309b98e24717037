package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adewale/imgdb/internal/config"
)

// userError wraps a mistake in the invocation itself (bad flags, missing
// file) so main can pick exit code 1 instead of 2 (§6 exit-code
// convention).
type userError struct{ err error }

func (u *userError) Error() string { return u.err.Error() }
func (u *userError) Unwrap() error { return u.err }

func userErrf(format string, args ...any) error {
	return &userError{err: fmt.Errorf(format, args...)}
}

func isUserError(err error) bool {
	var u *userError
	return errors.As(err, &u) || errors.Is(err, config.ErrConfig)
}

// commonFlags holds the flag values shared by every subcommand that
// builds a Config: hashing, metadata, extraction and I/O selections.
type commonFlags struct {
	dbname       string
	cHashes      string
	vHashes      string
	metadata     string
	algorithms   string
	exts         string
	filter       string
	limit        int
	thumbSz      int
	thumbQual    int
	thumbType    string
	workers      int
	deep         bool
	shuffle      bool
	force        bool
	dryRun       bool
	silent       bool
	verbose      bool
	skipImported bool
}

// registerCommonFlags wires the shared flag set into fs, binding each flag
// to its field in cf so flag.Parse populates cf.
func registerCommonFlags(fs *flag.FlagSet, cf *commonFlags) {
	fs.StringVar(&cf.dbname, "dbname", "imgdb.htm", "archive file path")
	fs.StringVar(&cf.cHashes, "c-hashes", "blake2b", "cryptographic hashes (comma/space separated)")
	fs.StringVar(&cf.vHashes, "v-hashes", "dhash", "perceptual hashes (comma/space separated)")
	fs.StringVar(&cf.metadata, "metadata", "", "extra metadata fields (or '*' for all)")
	fs.StringVar(&cf.algorithms, "algorithms", "", "extra color/statistics algorithms (or '*' for all)")
	fs.StringVar(&cf.exts, "exts", "", "only consider files with these extensions")
	fs.StringVar(&cf.filter, "filter", "", "filter expression")
	fs.IntVar(&cf.limit, "limit", 0, "limit the number of files processed")
	fs.IntVar(&cf.thumbSz, "thumb-sz", 128, "embedded thumbnail size")
	fs.IntVar(&cf.thumbQual, "thumb-qual", 70, "embedded thumbnail quality")
	fs.StringVar(&cf.thumbType, "thumb-type", "webp", "embedded thumbnail type (webp/avif/jpeg/png)")
	fs.IntVar(&cf.workers, "workers", 0, "worker pool size (0 = number of CPUs)")
	fs.BoolVar(&cf.deep, "deep", false, "recurse into subdirectories")
	fs.BoolVar(&cf.shuffle, "shuffle", false, "randomize file order before processing")
	fs.BoolVar(&cf.force, "force", false, "overwrite existing files/records")
	fs.BoolVar(&cf.dryRun, "dry-run", false, "don't run, just print the operations")
	fs.BoolVar(&cf.silent, "silent", false, "drop timestamps from log lines (no log line is suppressed)")
	fs.BoolVar(&cf.verbose, "verbose", false, "show all logs")
	fs.BoolVar(&cf.skipImported, "skip-imported", true, "skip files whose id is already in the archive")
}

// buildConfig turns cf plus extra options into a validated Config,
// wrapping construction failures as user errors per §6.
func (cf *commonFlags) buildConfig(extra ...config.Option) (*config.Config, error) {
	opts := []config.Option{
		config.WithDB(cf.dbname),
		config.WithCHashes(cf.cHashes),
		config.WithVHashes(cf.vHashes),
		config.WithMetadata(cf.metadata),
		config.WithAlgorithms(cf.algorithms),
		config.WithExts(cf.exts),
		config.WithFilter(cf.filter),
		config.WithLimit(cf.limit),
		config.WithThumbSize(cf.thumbSz),
		config.WithThumbQuality(cf.thumbQual),
		config.WithThumbType(cf.thumbType),
		config.WithWorkers(cf.workers),
		config.WithDeep(cf.deep),
		config.WithShuffle(cf.shuffle),
		config.WithForce(cf.force),
		config.WithDryRun(cf.dryRun),
		config.WithSilent(cf.silent),
		config.WithVerbose(cf.verbose),
		config.WithSkipImported(cf.skipImported),
	}
	opts = append(opts, extra...)
	cfg, err := config.New(opts...)
	if err != nil {
		return nil, &userError{err: err}
	}
	if cf.silent {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	}
	return cfg, nil
}
