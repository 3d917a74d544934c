// internal/extract/tool.go
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"refprep-core/fasta"
)

// Built-in extraction command. Any FASTA-in/FASTA-out tool can be swapped in
// via --tool / --tool-args or the REFPREP_TOOL / REFPREP_TOOL_ARGS env vars.
const (
	DefaultTool = "extract-reads"
	DefaultArgs = "--sequences {input} --forward {forward} --reverse {reverse} --trunc-len {length} --output {output}"
)

// Tool runs an external extraction command built from a placeholder template.
type Tool struct {
	Path string
	Args string
}

// runCommand is injectable in tests.
var runCommand = func(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Extract invokes the tool and verifies it produced a non-empty read set.
func (t Tool) Extract(ctx context.Context, req Request) (Result, error) {
	args := expandTemplate(t.Args, req)
	if err := runCommand(ctx, t.Path, args...); err != nil {
		return Result{}, err
	}
	cmdline := t.Path + " " + strings.Join(args, " ")

	fi, err := os.Stat(req.OutputFile)
	if err != nil {
		return Result{}, fmt.Errorf("tool wrote no output: %w", err)
	}
	if fi.Size() == 0 {
		return Result{}, fmt.Errorf("pair %q matched no sequences (empty output from %s)", req.Pair.Name, t.Path)
	}
	n, err := fasta.CountRecords(req.OutputFile)
	if err != nil {
		return Result{}, fmt.Errorf("read tool output: %w", err)
	}
	if n == 0 {
		return Result{}, fmt.Errorf("pair %q matched no sequences", req.Pair.Name)
	}
	return Result{Records: n, Command: cmdline}, nil
}

// expandTemplate splits the argv template on whitespace and substitutes the
// request into each field. Paths with spaces survive because substitution
// happens after splitting.
func expandTemplate(tmpl string, req Request) []string {
	if tmpl == "" {
		tmpl = DefaultArgs
	}
	repl := strings.NewReplacer(
		"{input}", req.SequenceFile,
		"{forward}", req.Pair.Forward,
		"{reverse}", req.Pair.Reverse,
		"{length}", strconv.Itoa(req.TrimLen),
		"{output}", req.OutputFile,
	)
	fields := strings.Fields(tmpl)
	for i := range fields {
		fields[i] = repl.Replace(fields[i])
	}
	return fields
}
