// Package config defines the single immutable options record threaded
// through every operation: ingestion, hashing, query, export and materialize.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/adewale/imgdb/internal/query"
)

// KnownCryptoHashes are the cryptographic digest algorithms the hashing
// primitives package can compute.
var KnownCryptoHashes = []string{"blake2b", "sha224", "sha256", "sha512"}

// KnownVisualHashes are the perceptual hash algorithms the hashing
// primitives package can compute.
var KnownVisualHashes = []string{"ahash", "dhash", "dhash-vert", "chash", "rchash", "blurhash"}

// KnownAlgorithms are the color/statistics algorithms.
var KnownAlgorithms = []string{"illumination", "saturation", "contrast", "top-colors", "dominant-colors"}

// ExtraMeta lists the optional metadata fields that must be explicitly
// requested (or requested via "*").
var ExtraMeta = []string{
	"iso", "aperture", "focal-length", "shutter-speed", "lens",
	"rating", "label", "keywords", "headline", "caption",
}

const jsonSafeField = "json"
const cliOnlyField = "cli"

// fieldOrigin records, for each settable field name (underscored, matching
// the JSON tag), whether it may be loaded from a JSON config file or is
// CLI-only. Mirrors the original's JSON_SAFE_PROPS / CLI_ONLY_PROPS split.
var fieldOrigin = map[string]string{
	"algorithms": jsonSafeField,
	"deep":       jsonSafeField,
	"exts":       jsonSafeField,
	"metadata":   jsonSafeField,
	"shuffle":    jsonSafeField,
	"sym_links":  jsonSafeField,
	"thumb_qual": jsonSafeField,
	"thumb_sz":   jsonSafeField,
	"thumb_type": jsonSafeField,
	"c_hashes":   jsonSafeField,
	"v_hashes":   jsonSafeField,
	"wrap_at":    jsonSafeField,
	"workers":    jsonSafeField,

	"filter":    cliOnlyField,
	"output":    cliOnlyField,
	"operation": cliOnlyField,
	"add_attrs": cliOnlyField,
	"del_attrs": cliOnlyField,
}

// AddFunc materializes one image file into an archive output directory.
type AddFunc func(src, dst string) error

// Operation identifies the file-side-effect add performs.
type Operation string

const (
	OpNoop Operation = "noop"
	OpCopy Operation = "copy"
	OpMove Operation = "move"
	OpLink Operation = "link"
)

// Config is the immutable options record. Construct with New; every
// exported field is read-only in practice — nothing in this module ever
// assigns to a *Config field after construction.
type Config struct {
	DryRun bool `json:"-"`

	DB     string `json:"-"`
	Output string `json:"-"`

	ArchiveSubfolderLen int `json:"-"`

	Links      string   `json:"-"`
	Gallery    string   `json:"-"`
	AddAttrs   []string `json:"-"`
	DelAttrs   []string `json:"-"`
	WrapAt     int      `json:"wrap_at"`
	Template   string   `json:"-"`

	Limit   int      `json:"-"`
	Exts    []string `json:"exts"`
	Filter  string   `json:"-"`

	UID string `json:"-"`

	Metadata   []string `json:"metadata"`
	Algorithms []string `json:"algorithms"`

	Operation Operation `json:"-"`
	AddFunc   AddFunc   `json:"-"`

	CHashes []string `json:"c_hashes"`
	VHashes []string `json:"v_hashes"`

	ThumbSize    int    `json:"thumb_sz"`
	ThumbQuality int    `json:"thumb_qual"`
	ThumbType    string `json:"thumb_type"`

	SymLinks bool `json:"sym_links"`

	SkipImported bool `json:"-"`
	Deep         bool `json:"deep"`
	Force        bool `json:"-"`
	Shuffle      bool `json:"shuffle"`
	Silent       bool `json:"-"`
	Verbose      bool `json:"-"`

	HashDigestSize int `json:"-"`

	TopColorChannels int `json:"-"`
	TopColorCut      int `json:"-"`

	Workers int `json:"workers"`
}

// Option mutates a Config during construction. Options are applied in
// order, then the whole record is validated once.
type Option func(*Config)

func WithDryRun(v bool) Option             { return func(c *Config) { c.DryRun = v } }
func WithDB(v string) Option               { return func(c *Config) { c.DB = v } }
func WithOutput(v string) Option           { return func(c *Config) { c.Output = v } }
func WithArchiveSubfolderLen(v int) Option { return func(c *Config) { c.ArchiveSubfolderLen = v } }
func WithLinks(v string) Option            { return func(c *Config) { c.Links = v } }
func WithGallery(v string) Option          { return func(c *Config) { c.Gallery = v } }
func WithAddAttrs(v string) Option         { return func(c *Config) { c.AddAttrs = smartSplit(v) } }
func WithDelAttrs(v string) Option         { return func(c *Config) { c.DelAttrs = smartSplit(v) } }
func WithWrapAt(v int) Option              { return func(c *Config) { c.WrapAt = v } }
func WithTemplate(v string) Option         { return func(c *Config) { c.Template = v } }
func WithLimit(v int) Option               { return func(c *Config) { c.Limit = v } }
func WithExts(v string) Option             { return func(c *Config) { c.Exts = splitExts(v) } }
func WithFilter(v string) Option           { return func(c *Config) { c.Filter = v } }
func WithUID(v string) Option              { return func(c *Config) { c.UID = v } }
func WithMetadata(v string) Option         { return func(c *Config) { c.Metadata = smartSplit(v) } }
func WithAlgorithms(v string) Option       { return func(c *Config) { c.Algorithms = smartSplit(v) } }
func WithOperation(v string) Option        { return func(c *Config) { c.Operation = Operation(v) } }
func WithCHashes(v string) Option          { return func(c *Config) { c.CHashes = smartSplit(v) } }
func WithVHashes(v string) Option          { return func(c *Config) { c.VHashes = smartSplit(v) } }
func WithThumbSize(v int) Option           { return func(c *Config) { c.ThumbSize = v } }
func WithThumbQuality(v int) Option        { return func(c *Config) { c.ThumbQuality = v } }
func WithThumbType(v string) Option        { return func(c *Config) { c.ThumbType = v } }
func WithSymLinks(v bool) Option           { return func(c *Config) { c.SymLinks = v } }
func WithSkipImported(v bool) Option       { return func(c *Config) { c.SkipImported = v } }
func WithDeep(v bool) Option               { return func(c *Config) { c.Deep = v } }
func WithForce(v bool) Option              { return func(c *Config) { c.Force = v } }
func WithShuffle(v bool) Option            { return func(c *Config) { c.Shuffle = v } }
func WithSilent(v bool) Option             { return func(c *Config) { c.Silent = v } }
func WithVerbose(v bool) Option            { return func(c *Config) { c.Verbose = v } }
func WithHashDigestSize(v int) Option      { return func(c *Config) { c.HashDigestSize = v } }
func WithTopColorChannels(v int) Option    { return func(c *Config) { c.TopColorChannels = v } }
func WithTopColorCut(v int) Option         { return func(c *Config) { c.TopColorCut = v } }
func WithWorkers(v int) Option             { return func(c *Config) { c.Workers = v } }

// New builds a validated, immutable Config. Defaults match the original
// implementation's Config class.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		DB:                  "imgdb.htm",
		ArchiveSubfolderLen: 1,
		WrapAt:              1000,
		Template:            "img_gallery.html",
		UID:                 "{blake2b}",
		Operation:           OpNoop,
		CHashes:             []string{"blake2b"},
		VHashes:             []string{"dhash"},
		ThumbSize:           128,
		ThumbQuality:        70,
		ThumbType:           "webp",
		Verbose:             true,
		HashDigestSize:      24,
		TopColorChannels:    5,
		TopColorCut:         25,
		Workers:             runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.derive(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// derive fills computed fields: "*" expansion, add-func selection.
func (c *Config) derive() error {
	if len(c.Metadata) == 1 && c.Metadata[0] == "*" {
		c.Metadata = append([]string(nil), ExtraMeta...)
		sort.Strings(c.Metadata)
	}
	if len(c.Algorithms) == 1 && c.Algorithms[0] == "*" {
		c.Algorithms = append([]string(nil), KnownAlgorithms...)
	}
	if len(c.VHashes) == 1 && c.VHashes[0] == "*" {
		c.VHashes = append([]string(nil), KnownVisualHashes...)
	}
	switch c.Operation {
	case OpMove:
		c.AddFunc = moveFile
	case OpCopy:
		c.AddFunc = copyFile
	case OpLink:
		if c.SymLinks {
			c.AddFunc = symlinkFile
		} else {
			c.AddFunc = hardlinkFile
		}
	case OpNoop, "":
		c.AddFunc = nil
	default:
		return fmt.Errorf("%w: invalid operation %q", ErrConfig, c.Operation)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// validate enforces every range/enum invariant from §6. Returns a
// ConfigError-flavored wrapped error on the first violation.
func (c *Config) validate() error {
	if c.ArchiveSubfolderLen < 0 || c.ArchiveSubfolderLen > 4 {
		return fmt.Errorf("%w: archive_subfolder_len must be 0..4, got %d", ErrConfig, c.ArchiveSubfolderLen)
	}
	if c.WrapAt < 100 {
		return fmt.Errorf("%w: wrap_at must be >= 100, got %d", ErrConfig, c.WrapAt)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must be >= 0, got %d", ErrConfig, c.Limit)
	}
	switch c.Operation {
	case OpNoop, OpCopy, OpMove, OpLink:
	default:
		return fmt.Errorf("%w: operation must be one of noop/copy/move/link, got %q", ErrConfig, c.Operation)
	}
	for _, h := range c.CHashes {
		if !contains(KnownCryptoHashes, h) {
			return fmt.Errorf("%w: unknown crypto hash %q, allowed: %v", ErrConfig, h, KnownCryptoHashes)
		}
	}
	for _, h := range c.VHashes {
		if !contains(KnownVisualHashes, h) {
			return fmt.Errorf("%w: unknown visual hash %q, allowed: %v", ErrConfig, h, KnownVisualHashes)
		}
	}
	if c.ThumbSize < 16 || c.ThumbSize > 512 {
		return fmt.Errorf("%w: thumb_sz must be 16..512, got %d", ErrConfig, c.ThumbSize)
	}
	if c.ThumbQuality < 25 || c.ThumbQuality > 99 {
		return fmt.Errorf("%w: thumb_qual must be 25..99, got %d", ErrConfig, c.ThumbQuality)
	}
	switch c.ThumbType {
	case "webp", "avif", "jpeg", "png":
	default:
		return fmt.Errorf("%w: thumb_type must be webp/avif/jpeg/png, got %q", ErrConfig, c.ThumbType)
	}
	if c.HashDigestSize < 6 {
		return fmt.Errorf("%w: hash_digest_size must be >= 6, got %d", ErrConfig, c.HashDigestSize)
	}
	if c.TopColorChannels < 1 {
		return fmt.Errorf("%w: top_color_channels must be >= 1, got %d", ErrConfig, c.TopColorChannels)
	}
	if c.TopColorCut < 0 || c.TopColorCut > 100 {
		return fmt.Errorf("%w: top_color_cut must be 0..100, got %d", ErrConfig, c.TopColorCut)
	}
	if c.Filter != "" {
		if _, err := query.Parse(c.Filter, nil); err != nil {
			return fmt.Errorf("%w: filter: %v", ErrConfig, err)
		}
	}
	return nil
}

// ErrConfig is the sentinel wrapped by every construction-time validation
// failure (§7 ConfigError).
var ErrConfig = fmt.Errorf("invalid configuration")

// FromFile loads the JSON-safe subset of fields from a JSON config file,
// then applies extra CLI-derived options on top, mirroring the original's
// Config.from_file(initial, extra) three-way merge.
func FromFile(path string, extra ...Option) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config file: %v", ErrConfig, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: parsing config file: %v", ErrConfig, err)
	}
	for k := range fields {
		if fieldOrigin[k] != jsonSafeField {
			return nil, fmt.Errorf("%w: config property %q is not JSON-safe (CLI-only or unknown)", ErrConfig, k)
		}
	}
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: decoding config file: %v", ErrConfig, err)
	}
	opts := []Option{
		WithWrapAt(orDefault(c.WrapAt, 1000)),
		WithThumbSize(orDefault(c.ThumbSize, 128)),
		WithThumbQuality(orDefault(c.ThumbQuality, 70)),
	}
	if c.ThumbType != "" {
		opts = append(opts, WithThumbType(c.ThumbType))
	}
	if len(c.Exts) > 0 {
		opts = append(opts, WithExts(strings.Join(c.Exts, ",")))
	}
	if len(c.Metadata) > 0 {
		opts = append(opts, WithMetadata(strings.Join(c.Metadata, ",")))
	}
	if len(c.Algorithms) > 0 {
		opts = append(opts, WithAlgorithms(strings.Join(c.Algorithms, ",")))
	}
	if len(c.CHashes) > 0 {
		opts = append(opts, WithCHashes(strings.Join(c.CHashes, ",")))
	}
	if len(c.VHashes) > 0 {
		opts = append(opts, WithVHashes(strings.Join(c.VHashes, ",")))
	}
	opts = append(opts, WithDeep(c.Deep), WithShuffle(c.Shuffle), WithSymLinks(c.SymLinks), WithWorkers(c.Workers))
	opts = append(opts, extra...)
	return New(opts...)
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// smartSplit mirrors the original's smart_split: split on commas,
// semicolons or spaces, lowercase every token, drop empties.
func smartSplit(s string) []string {
	if s == "" {
		return nil
	}
	out := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
	for i, tok := range out {
		out[i] = strings.ToLower(tok)
	}
	return out
}

// splitExts mirrors the original's split_exts: tokens become
// dot-prefixed, lowercase extensions.
func splitExts(s string) []string {
	toks := smartSplit(s)
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		t = strings.TrimPrefix(t, ".")
		if t == "" {
			continue
		}
		out = append(out, "."+t)
	}
	return out
}
