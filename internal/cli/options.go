// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"refprep/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	ManifestFile string
	Datasets     []string // optional name filter; empty = all

	// Extraction tool
	Tool     string // "" = $REFPREP_TOOL or built-in default
	ToolArgs string // "" = $REFPREP_TOOL_ARGS or built-in default

	// Output
	OutDir     string // "" = alongside each source file
	ReadLength int    // 0 = per-dataset trim length from the manifest

	// Behavior
	Force  bool
	DryRun bool
	Quiet  bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: prepare amplicon-trimmed reference databases for classifier training

License: MIT
Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringVar(&opt.ManifestFile, "manifest", "", "TSV dataset manifest [*]")
	var only stringSlice
	fs.Var(&only, "dataset", "process only this dataset (repeatable) [all]")

	// Extraction tool
	fs.StringVar(&opt.Tool, "tool", "", "amplicon extraction command (default $REFPREP_TOOL or extract-reads)")
	fs.StringVar(&opt.ToolArgs, "tool-args", "", "argv template with {input} {forward} {reverse} {length} {output} placeholders")

	// Output
	fs.StringVar(&opt.OutDir, "out-dir", "", "directory for derived artifacts (default: alongside each source file)")
	fs.IntVar(&opt.ReadLength, "read-length", 0, "override target read length for all datasets (0 = per-dataset) [0]")

	// Behavior
	fs.BoolVar(&opt.Force, "force", false, "recompute even when the packaged artifact exists [false]")
	fs.BoolVar(&opt.DryRun, "dry-run", false, "report planned work without invoking the tool or writing files [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress notices and warnings [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Datasets = only

	// Validation
	if opt.ManifestFile == "" {
		return opt, errors.New("--manifest is required")
	}
	if opt.ReadLength < 0 {
		return opt, errors.New("--read-length must be ≥ 0")
	}
	if opt.ToolArgs != "" {
		for _, ph := range []string{"{input}", "{output}"} {
			if !strings.Contains(opt.ToolArgs, ph) {
				return opt, fmt.Errorf("--tool-args must contain the %s placeholder", ph)
			}
		}
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
