// internal/manifest/manifest.go
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"refprep-core/primer"
)

func init() {
	// Manifests are tab-separated; '#' starts a comment line.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.Comment = '#'
		r.LazyQuotes = true
		return r
	})
}

// Dataset describes one reference database to prepare. Immutable after Load.
type Dataset struct {
	Name     string `csv:"dataset"`
	SeqFile  string `csv:"sequences"`
	TaxFile  string `csv:"taxonomy"`
	Forward  string `csv:"forward_primer"`
	Reverse  string `csv:"reverse_primer"`
	PairName string `csv:"primer_pair"`
	TrimLen  int    `csv:"trim_length"`
}

// Pair returns the dataset's primer pair.
func (d Dataset) Pair() primer.Pair {
	return primer.Pair{Name: d.PairName, Forward: d.Forward, Reverse: d.Reverse}
}

// Load reads and validates a dataset manifest. Relative file paths are
// resolved against the manifest's directory; primers are IUPAC-validated and
// normalized; dataset names must be unique and referenced files must exist.
func Load(path string) ([]Dataset, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var rows []Dataset
	if err := gocsv.Unmarshal(fh, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no datasets", path)
	}

	dir := filepath.Dir(path)
	seen := make(map[string]struct{}, len(rows))
	for i := range rows {
		d := &rows[i]
		if d.Name == "" {
			return nil, fmt.Errorf("%s: dataset %d has no name", path, i+1)
		}
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate dataset %q", path, d.Name)
		}
		seen[d.Name] = struct{}{}

		if d.TrimLen <= 0 {
			return nil, fmt.Errorf("dataset %q: trim_length must be > 0", d.Name)
		}
		if d.PairName == "" {
			return nil, fmt.Errorf("dataset %q: primer_pair name is required", d.Name)
		}
		p, err := d.Pair().Normalized()
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", d.Name, err)
		}
		d.Forward, d.Reverse = p.Forward, p.Reverse

		d.SeqFile = resolve(dir, d.SeqFile)
		d.TaxFile = resolve(dir, d.TaxFile)
		for _, f := range []string{d.SeqFile, d.TaxFile} {
			if f == "" {
				return nil, fmt.Errorf("dataset %q: sequences and taxonomy files are required", d.Name)
			}
			if _, err := os.Stat(f); err != nil {
				return nil, fmt.Errorf("dataset %q: %w", d.Name, err)
			}
		}
	}
	return rows, nil
}

// Filter keeps only the named datasets, in manifest order. Unknown names are
// an error so a typo cannot silently skip work.
func Filter(all []Dataset, names []string) ([]Dataset, error) {
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Dataset
	for _, d := range all {
		if want[d.Name] {
			out = append(out, d)
			delete(want, d.Name)
		}
	}
	for n := range want {
		return nil, fmt.Errorf("unknown dataset %q", n)
	}
	return out, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
