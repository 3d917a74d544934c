// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"refprep/internal/cli"
	"refprep/internal/cmdutil"
	"refprep/internal/extract"
	"refprep/internal/manifest"
	"refprep/internal/version"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("refprep")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); cmdutil.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "refprep version %s\n", version.Version)
		if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	// .env, then environment, then built-in defaults; flags win over both.
	_ = godotenv.Load()
	tool := extract.Tool{
		Path: firstNonEmpty(opts.Tool, os.Getenv("REFPREP_TOOL"), extract.DefaultTool),
		Args: firstNonEmpty(opts.ToolArgs, os.Getenv("REFPREP_TOOL_ARGS"), extract.DefaultArgs),
	}

	datasets, err := manifest.Load(opts.ManifestFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	datasets, err = manifest.Filter(datasets, opts.Datasets)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	code := run(ctx, outw, stderr, opts, datasets, tool)

	if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// run drives the sequential per-dataset loop. Datasets are processed to
// completion in manifest order; the first failure ends the run.
func run(ctx context.Context, outw, stderr io.Writer, opts cli.Options, datasets []manifest.Dataset, ext extract.Extractor) int {
	var prepared, skipped, planned int
	for _, ds := range datasets {
		if ctx.Err() != nil {
			return 130
		}
		st, err := processDataset(ctx, outw, stderr, opts, ds, ext)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return 130
			}
			_, _ = fmt.Fprintf(stderr, "error: dataset %q: %v\n", ds.Name, err)
			return 3
		}
		switch st {
		case stateSkipped:
			skipped++
		case statePlanned:
			planned++
		default:
			prepared++
		}
	}
	if opts.DryRun {
		cmdutil.Noticef(outw, opts.Quiet, "dry-run: %d to prepare, %d cached, %d total", planned, skipped, len(datasets))
	} else {
		cmdutil.Noticef(outw, opts.Quiet, "done: %d prepared, %d cached, %d total", prepared, skipped, len(datasets))
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
