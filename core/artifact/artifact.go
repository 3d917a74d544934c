// core/artifact/artifact.go
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Names of the payload entries inside a packaged artifact and an exported
// directory. Shared so both forms stay interchangeable.
const (
	SequenceEntry = "dna-sequences.fasta"
	TaxonomyEntry = "taxonomy.tsv"
)

// DerivedBase returns the deterministic artifact base name for a source
// sequence file, primer-pair name, and trim length:
//
//	refdb.fasta + "v4" + 150 → "refdb_v4_trim150"
//
// A trailing .gz is stripped before the extension so compressed and plain
// inputs derive the same name.
func DerivedBase(seqPath, pairName string, trimLen int) string {
	base := filepath.Base(seqPath)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s_trim%d", base, pairName, trimLen)
}

// PackagedPath is the packaged (zip) form of an artifact under dir.
func PackagedPath(dir, base string) string {
	return filepath.Join(dir, base+".zip")
}

// ExportDir is the exported plain-format directory of an artifact under dir.
func ExportDir(dir, base string) string {
	return filepath.Join(dir, base)
}

// Exists reports whether path is present. Presence of the packaged path is
// the cache signal: the driver treats it as "already computed".
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
