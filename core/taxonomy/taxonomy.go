// core/taxonomy/taxonomy.go
package taxonomy

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shenwei356/xopen"
)

// Table maps feature IDs to taxonomic lineage strings, preserving file order.
// Lineages are treated as opaque text; semicolons, quotes, and inner tabs in
// the annotation are kept byte-for-byte.
type Table struct {
	ids     []string
	lineage map[string]string
}

// Load reads a two-column (id TAB lineage) taxonomy file. Blank lines and
// '#' comments are skipped. Gzip input is handled transparently.
func Load(path string) (*Table, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	t := &Table{lineage: make(map[string]string)}
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		f := strings.SplitN(line, "\t", 2)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d missing tab separator", path, ln)
		}
		id := strings.TrimSpace(f[0])
		if id == "" {
			return nil, fmt.Errorf("%s:%d empty feature id", path, ln)
		}
		if _, dup := t.lineage[id]; dup {
			return nil, fmt.Errorf("%s:%d duplicate feature id %q", path, ln, id)
		}
		t.ids = append(t.ids, id)
		t.lineage[id] = f[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("taxonomy scan: %w", err)
	}
	return t, nil
}

// Len returns the number of annotated features.
func (t *Table) Len() int { return len(t.ids) }

// Lookup returns the lineage for id.
func (t *Table) Lookup(id string) (string, bool) {
	s, ok := t.lineage[id]
	return s, ok
}

// Subset returns a new table restricted to ids (kept in the order given)
// plus the ids that had no annotation.
func (t *Table) Subset(ids []string) (*Table, []string) {
	sub := &Table{lineage: make(map[string]string, len(ids))}
	var missing []string
	for _, id := range ids {
		lin, ok := t.lineage[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if _, dup := sub.lineage[id]; dup {
			continue
		}
		sub.ids = append(sub.ids, id)
		sub.lineage[id] = lin
	}
	return sub, missing
}

// Write emits the table as id TAB lineage lines, gzip-transparent.
func (t *Table) Write(path string) error {
	fh, err := xopen.Wopen(path)
	if err != nil {
		return err
	}
	for _, id := range t.ids {
		if _, err := fmt.Fprintf(fh, "%s\t%s\n", id, t.lineage[id]); err != nil {
			_ = fh.Close()
			return err
		}
	}
	return fh.Close()
}
