// core/artifact/package.go
package artifact

import (
	"archive/zip"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/crypto/blake2b"
)

// MetaName is the metadata entry inside a packaged artifact.
const MetaName = "metadata.json"

// Meta describes the provenance of a packaged artifact.
type Meta struct {
	Dataset    string    `json:"dataset"`
	PrimerPair string    `json:"primer_pair"`
	Forward    string    `json:"forward_primer"`
	Reverse    string    `json:"reverse_primer"`
	TrimLength int       `json:"trim_length"`
	Records    int       `json:"records"`
	Digest     string    `json:"digest_blake2b_256,omitempty"`
	Tool       string    `json:"tool,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Package writes the packaged zip artifact at path: the trimmed sequences,
// the matching taxonomy subset, and a metadata entry carrying a BLAKE2b-256
// digest of the sequence payload. A partial file is removed on error.
func Package(path string, meta Meta, seqFile, taxFile string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(fh)

	fail := func(err error) error {
		_ = zw.Close()
		_ = fh.Close()
		_ = os.Remove(path)
		return err
	}

	digest, err := addFileEntry(zw, "data/"+SequenceEntry, seqFile, true)
	if err != nil {
		return fail(fmt.Errorf("package sequences: %w", err))
	}
	meta.Digest = digest

	if taxFile != "" {
		if _, err := addFileEntry(zw, "data/"+TaxonomyEntry, taxFile, false); err != nil {
			return fail(fmt.Errorf("package taxonomy: %w", err))
		}
	}

	mw, err := zw.Create(MetaName)
	if err != nil {
		return fail(err)
	}
	enc := json.NewEncoder(mw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fail(fmt.Errorf("package metadata: %w", err))
	}

	if err := zw.Close(); err != nil {
		return fail(err)
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// ReadMeta opens a packaged artifact and decodes its metadata entry.
func ReadMeta(path string) (Meta, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Meta{}, err
	}
	defer func() { _ = zr.Close() }()
	for _, f := range zr.File {
		if f.Name != MetaName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Meta{}, err
		}
		defer func() { _ = rc.Close() }()
		var m Meta
		if err := json.NewDecoder(rc).Decode(&m); err != nil {
			return Meta{}, fmt.Errorf("decode %s: %w", MetaName, err)
		}
		return m, nil
	}
	return Meta{}, fmt.Errorf("%s: no %s entry", path, MetaName)
}

// addFileEntry copies src into the archive under name, optionally returning
// the hex BLAKE2b-256 digest of the copied bytes.
func addFileEntry(zw *zip.Writer, name, src string, digest bool) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer func() { _ = in.Close() }()

	w, err := zw.Create(name)
	if err != nil {
		return "", err
	}
	if !digest {
		_, err = io.Copy(w, in)
		return "", err
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(io.MultiWriter(w, h), in); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
