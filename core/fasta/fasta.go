// core/fasta/fasta.go
package fasta

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
)

// wrapWidth is the line width used when rewriting sequences.
const wrapWidth = 60

// Stats summarizes a sequence file.
type Stats struct {
	Records  int
	Residues int64
	MinLen   int
	MaxLen   int
}

// Stat streams path (gzip-transparent) and returns record/residue counts.
func Stat(path string) (Stats, error) {
	var st Stats
	err := each(path, func(rec *fastx.Record) error {
		n := len(rec.Seq.Seq)
		st.Records++
		st.Residues += int64(n)
		if st.MinLen == 0 || n < st.MinLen {
			st.MinLen = n
		}
		if n > st.MaxLen {
			st.MaxLen = n
		}
		return nil
	})
	return st, err
}

// CountRecords returns the number of records in path.
func CountRecords(path string) (int, error) {
	n := 0
	err := each(path, func(*fastx.Record) error { n++; return nil })
	return n, err
}

// IDs returns record IDs in file order.
func IDs(path string) ([]string, error) {
	var ids []string
	err := each(path, func(rec *fastx.Record) error {
		ids = append(ids, string(rec.ID))
		return nil
	})
	return ids, err
}

// WriteNormalized copies records from src to dst (gzip-transparent on both
// sides), re-wrapping sequence lines, and returns the record IDs in input
// order. Cancellation is checked between records.
func WriteNormalized(ctx context.Context, src, dst string) ([]string, error) {
	outfh, err := xopen.Wopen(dst)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dst, err)
	}
	var ids []string
	err = each(src, func(rec *fastx.Record) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ids = append(ids, string(rec.ID))
		rec.FormatToWriter(outfh, wrapWidth)
		return nil
	})
	if cerr := outfh.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close %s: %w", dst, cerr)
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// each streams records from path. A zero-byte file yields zero records;
// fastx rejects it as malformed, which is unhelpful for freshly created
// outputs, so it is special-cased here.
func each(path string, fn func(*fastx.Record) error) error {
	if fi, err := os.Stat(path); err != nil {
		return err
	} else if fi.Size() == 0 {
		return nil
	}
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
