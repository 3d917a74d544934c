package taxonomy

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sample = `# reference taxonomy
seq1	k__Bacteria; p__Proteobacteria
seq2	k__Bacteria; p__Firmicutes

seq3	k__Archaea
`

func writeTax(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tax.tsv")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tab, err := Load(writeTax(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tab.Len() != 3 {
		t.Fatalf("len=%d want 3", tab.Len())
	}
	lin, ok := tab.Lookup("seq2")
	if !ok || lin != "k__Bacteria; p__Firmicutes" {
		t.Errorf("lookup seq2: %q %v", lin, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"no tab":   "seq1 k__Bacteria\n",
		"dup id":   "seq1\tA\nseq1\tB\n",
		"empty id": "\tk__Bacteria\n",
	}
	for name, data := range cases {
		if _, err := Load(writeTax(t, data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSubsetKeepsOrderAndReportsMissing(t *testing.T) {
	tab, err := Load(writeTax(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sub, missing := tab.Subset([]string{"seq3", "seq1", "ghost", "seq3"})
	if sub.Len() != 2 {
		t.Errorf("subset len=%d want 2", sub.Len())
	}
	if !reflect.DeepEqual(missing, []string{"ghost"}) {
		t.Errorf("missing=%v", missing)
	}
	if _, ok := sub.Lookup("seq2"); ok {
		t.Errorf("seq2 should not survive subset")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tab, err := Load(writeTax(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sub, _ := tab.Subset([]string{"seq2", "seq1"})

	out := filepath.Join(t.TempDir(), "out.tsv")
	if err := sub.Write(out); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "seq2\t") || !strings.HasPrefix(lines[1], "seq1\t") {
		t.Errorf("bad output order:\n%s", data)
	}
}
