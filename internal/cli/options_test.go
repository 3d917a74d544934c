// internal/cli/options_test.go
package cli

import (
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestManifestOnlyOK(t *testing.T) {
	o := mustParse(t, "--manifest", "sets.tsv")
	if o.ManifestFile != "sets.tsv" || o.Force || o.DryRun {
		t.Errorf("bad defaults: %+v", o)
	}
}

func TestDatasetFilterRepeatable(t *testing.T) {
	o := mustParse(t,
		"--manifest", "sets.tsv",
		"--dataset", "silva", "--dataset", "unite",
	)
	if len(o.Datasets) != 2 || o.Datasets[0] != "silva" || o.Datasets[1] != "unite" {
		t.Errorf("bad filter parse: %+v", o.Datasets)
	}
}

func TestToolOverrides(t *testing.T) {
	o := mustParse(t,
		"--manifest", "sets.tsv",
		"--tool", "mytool",
		"--tool-args", "-i {input} -o {output}",
		"--read-length", "120",
		"--force", "--dry-run", "--quiet",
	)
	if o.Tool != "mytool" || o.ReadLength != 120 || !o.Force || !o.DryRun || !o.Quiet {
		t.Errorf("bad parse: %+v", o)
	}
}

func TestErrorMissingManifest(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--force"}); err == nil {
		t.Fatalf("expected error without --manifest")
	}
}

func TestErrorNegativeReadLength(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--manifest", "m.tsv", "--read-length", "-1"})
	if err == nil {
		t.Fatalf("expected error for negative read length")
	}
}

func TestErrorToolArgsWithoutPlaceholders(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--manifest", "m.tsv", "--tool-args", "--fast"})
	if err == nil {
		t.Fatalf("expected placeholder validation error")
	}
}

func TestVersionSkipsValidation(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"-v"})
	if err != nil || !o.Version {
		t.Fatalf("version parse: %v %+v", err, o)
	}
}
