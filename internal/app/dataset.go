// internal/app/dataset.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"refprep-core/artifact"
	"refprep-core/fasta"
	"refprep-core/taxonomy"
	"refprep/internal/cli"
	"refprep/internal/cmdutil"
	"refprep/internal/extract"
	"refprep/internal/manifest"
)

// Per-dataset outcomes.
const (
	statePrepared = iota
	stateSkipped
	statePlanned
)

// processDataset ensures one dataset has its trimmed-read artifact on disk.
// The packaged zip is the cache signal: if it already exists the extractor
// must not be invoked.
func processDataset(ctx context.Context, outw, stderr io.Writer, opts cli.Options, ds manifest.Dataset, ext extract.Extractor) (int, error) {
	trim := ds.TrimLen
	if opts.ReadLength > 0 {
		trim = opts.ReadLength
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Dir(ds.SeqFile)
	}

	base := artifact.DerivedBase(ds.SeqFile, ds.PairName, trim)
	pkg := artifact.PackagedPath(outDir, base)

	if artifact.Exists(pkg) && !opts.Force {
		cmdutil.Noticef(outw, opts.Quiet, "%s: %s exists; skipping", ds.Name, filepath.Base(pkg))
		return stateSkipped, nil
	}
	if opts.DryRun {
		cmdutil.Noticef(outw, opts.Quiet, "%s: would extract %s amplicons at %d nt into %s", ds.Name, ds.PairName, trim, pkg)
		return statePlanned, nil
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return 0, err
		}
	}

	stats, err := fasta.Stat(ds.SeqFile)
	if err != nil {
		return 0, err
	}
	if stats.Records == 0 {
		return 0, fmt.Errorf("%s: no sequences", ds.SeqFile)
	}
	tax, err := taxonomy.Load(ds.TaxFile)
	if err != nil {
		return 0, err
	}
	if tax.Len() < stats.Records {
		cmdutil.Warnf(stderr, opts.Quiet, "%s: %d sequences but only %d taxonomy annotations", ds.Name, stats.Records, tax.Len())
	}
	cmdutil.Noticef(outw, opts.Quiet, "%s: %d sequences (%d-%d nt), pair %s, trim %d",
		ds.Name, stats.Records, stats.MinLen, stats.MaxLen, ds.PairName, trim)

	tmp, err := os.CreateTemp(outDir, base+"-*.fasta")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	res, err := ext.Extract(ctx, extract.Request{
		SequenceFile: ds.SeqFile,
		Pair:         ds.Pair(),
		TrimLen:      trim,
		OutputFile:   tmpPath,
	})
	if err != nil {
		return 0, err
	}

	exportDir := artifact.ExportDir(outDir, base)
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return 0, err
	}
	seqOut := filepath.Join(exportDir, artifact.SequenceEntry)
	ids, err := fasta.WriteNormalized(ctx, tmpPath, seqOut)
	if err != nil {
		return 0, err
	}

	sub, missing := tax.Subset(ids)
	if len(missing) > 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "%s: %d of %d reads lack taxonomy annotations", ds.Name, len(missing), len(ids))
	}
	taxOut := filepath.Join(exportDir, artifact.TaxonomyEntry)
	if err := sub.Write(taxOut); err != nil {
		return 0, err
	}

	meta := artifact.Meta{
		Dataset:    ds.Name,
		PrimerPair: ds.PairName,
		Forward:    ds.Forward,
		Reverse:    ds.Reverse,
		TrimLength: trim,
		Records:    res.Records,
		Tool:       res.Command,
		CreatedAt:  time.Now().UTC(),
	}
	if err := artifact.Package(pkg, meta, seqOut, taxOut); err != nil {
		return 0, err
	}

	cmdutil.Noticef(outw, opts.Quiet, "%s: wrote %s (%d reads)", ds.Name, pkg, res.Records)
	return statePrepared, nil
}
