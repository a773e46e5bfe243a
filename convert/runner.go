package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Runner invokes the external conversion script as a child process. The
// converter is an opaque collaborator: its output is captured and logged,
// never interpreted.
type Runner struct {
	Python string
	DryRun bool
}

// Command renders the full command line, for logging and dry runs.
func (r *Runner) Command(p Params) string {
	return strings.Join(append([]string{r.Python}, Args(p)...), " ")
}

// Run executes one conversion and returns the converter's combined output.
// A pre-existing output directory is removed first so the converter starts
// from a clean tree. On dry run nothing is executed or deleted; the intended
// command is logged verbatim.
func (r *Runner) Run(ctx context.Context, p Params) (string, error) {
	if r.DryRun {
		slog.Info("dry run", "command", r.Command(p))
		return "", nil
	}

	if _, err := os.Stat(p.OutputDir); err == nil {
		slog.Info("removing stale output directory", "path", p.OutputDir)
		if err := os.RemoveAll(p.OutputDir); err != nil {
			return "", fmt.Errorf("removing %s: %w", p.OutputDir, err)
		}
	}

	slog.Info("starting conversion", "command", r.Command(p))

	cmd := exec.CommandContext(ctx, r.Python, Args(p)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start converter: %w", err)
	}

	var mu sync.Mutex
	var output strings.Builder

	var g errgroup.Group
	g.Go(func() error {
		return pump("stdout", stdout, &output, &mu)
	})
	g.Go(func() error {
		return pump("stderr", stderr, &output, &mu)
	})

	// drain both pipes before waiting on the process
	if err := g.Wait(); err != nil {
		slog.Warn("reading converter output", "error", err)
	}

	if err := cmd.Wait(); err != nil {
		return output.String(), fmt.Errorf("conversion failed: %w", err)
	}

	return output.String(), nil
}

func pump(stream string, pipe io.Reader, output *strings.Builder, mu *sync.Mutex) error {
	scanner := bufio.NewScanner(pipe)
	// python tracebacks and tqdm lines can be long
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		slog.Debug("converter", stream, line)

		mu.Lock()
		output.WriteString(line)
		output.WriteByte('\n')
		mu.Unlock()
	}

	return scanner.Err()
}
