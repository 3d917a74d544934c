// internal/extract/tool_test.go
package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refprep-core/primer"
)

func testRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		SequenceFile: "/data/ref db/silva.fasta",
		Pair:         primer.Pair{Name: "v4", Forward: "GTGYCAGCMGCCGCGGTAA", Reverse: "GGACTACNVGGGTWTCTAAT"},
		TrimLen:      150,
		OutputFile:   filepath.Join(t.TempDir(), "out.fasta"),
	}
}

func TestExpandTemplate(t *testing.T) {
	req := testRequest(t)
	args := expandTemplate(DefaultArgs, req)
	want := []string{
		"--sequences", req.SequenceFile,
		"--forward", "GTGYCAGCMGCCGCGGTAA",
		"--reverse", "GGACTACNVGGGTWTCTAAT",
		"--trunc-len", "150",
		"--output", req.OutputFile,
	}
	if len(args) != len(want) {
		t.Fatalf("args=%v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: %q want %q", i, args[i], want[i])
		}
	}
}

func TestExpandTemplateKeepsSpacesInPaths(t *testing.T) {
	req := testRequest(t)
	args := expandTemplate("-i {input}", req)
	if len(args) != 2 || args[1] != req.SequenceFile {
		t.Errorf("path with spaces split: %v", args)
	}
}

// stubTool replaces the exec seam; write simulates the tool's output.
func stubTool(t *testing.T, write func(out string) error) {
	t.Helper()
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) error {
		out := ""
		for i, a := range args {
			if a == "--output" && i+1 < len(args) {
				out = args[i+1]
			}
		}
		return write(out)
	}
	t.Cleanup(func() { runCommand = orig })
}

func TestExtractCountsReads(t *testing.T) {
	stubTool(t, func(out string) error {
		return os.WriteFile(out, []byte(">a1\nACGT\n>a2\nGGGG\n"), 0o644)
	})
	res, err := Tool{Path: "extract-reads", Args: DefaultArgs}.Extract(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Records != 2 {
		t.Errorf("records=%d want 2", res.Records)
	}
	if !strings.HasPrefix(res.Command, "extract-reads ") {
		t.Errorf("command=%q", res.Command)
	}
}

func TestExtractEmptyOutputIsError(t *testing.T) {
	stubTool(t, func(out string) error {
		return os.WriteFile(out, nil, 0o644)
	})
	_, err := Tool{Path: "extract-reads", Args: DefaultArgs}.Extract(context.Background(), testRequest(t))
	if err == nil || !strings.Contains(err.Error(), "matched no sequences") {
		t.Fatalf("want empty-result error, got %v", err)
	}
}

func TestExtractToolFailurePropagates(t *testing.T) {
	stubTool(t, func(string) error {
		return os.ErrPermission
	})
	_, err := Tool{Path: "extract-reads", Args: DefaultArgs}.Extract(context.Background(), testRequest(t))
	if err == nil {
		t.Fatalf("expected tool error")
	}
}
