// internal/extract/extract.go
package extract

import (
	"context"

	"refprep-core/primer"
)

// Request asks the external tool for primer-bounded reads trimmed to TrimLen,
// written as FASTA at OutputFile.
type Request struct {
	SequenceFile string
	Pair         primer.Pair
	TrimLen      int
	OutputFile   string
}

// Result reports what an extraction produced.
type Result struct {
	Records int
	Command string
}

// Extractor is the amplicon-extraction collaborator. The primer-matching and
// trimming algorithm lives entirely behind this boundary.
type Extractor interface {
	Extract(ctx context.Context, req Request) (Result, error)
}
