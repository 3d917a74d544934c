// core/primer/pair.go
package primer

import (
	"fmt"

	"refprep-core/oligo"
)

// Pair is a named forward/reverse primer pair, both written 5'→3'.
type Pair struct {
	Name    string
	Forward string
	Reverse string
}

// Normalized validates both oligos and returns a copy of the pair with
// normalized (uppercased, whitespace-stripped) primer sequences.
func (p Pair) Normalized() (Pair, error) {
	if p.Name == "" {
		return Pair{}, fmt.Errorf("primer pair needs a name")
	}
	fwd, err := oligo.Validate(p.Forward)
	if err != nil {
		return Pair{}, fmt.Errorf("pair %q forward: %w", p.Name, err)
	}
	rev, err := oligo.Validate(p.Reverse)
	if err != nil {
		return Pair{}, fmt.Errorf("pair %q reverse: %w", p.Name, err)
	}
	return Pair{Name: p.Name, Forward: fwd, Reverse: rev}, nil
}

// Degeneracy returns the combined expansion count of both primers.
func (p Pair) Degeneracy() int {
	return oligo.Degeneracy(p.Forward) * oligo.Degeneracy(p.Reverse)
}
