package convert

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConverter writes an executable shell script standing in for the
// python interpreter and returns its path.
func fakeConverter(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a shell")
	}

	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestRunnerDryRun(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "Llama-2-13B-hf")
	require.NoError(t, os.MkdirAll(outputDir, 0o755))

	// the interpreter does not exist; a dry run must never reach it
	r := Runner{Python: filepath.Join(t.TempDir(), "missing-python"), DryRun: true}

	output, err := r.Run(context.Background(), Params{
		Script:    "/opt/convert.py",
		InputDir:  filepath.Join(t.TempDir(), "Llama-2-13B"),
		ModelSize: "13B",
		OutputDir: outputDir,
	})
	require.NoError(t, err)
	assert.Empty(t, output)

	// dry run performs no writes: the stale output tree survives
	assert.DirExists(t, outputDir)
}

func TestRunnerCleansStaleOutput(t *testing.T) {
	python := fakeConverter(t, "exit 0\n")

	root := t.TempDir()
	outputDir := filepath.Join(root, "Llama-2-13B-hf")
	require.NoError(t, os.MkdirAll(outputDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "config.json"), []byte("{}"), 0o644))

	r := Runner{Python: python}

	_, err := r.Run(context.Background(), Params{
		Script:    "/opt/convert.py",
		InputDir:  filepath.Join(root, "Llama-2-13B"),
		ModelSize: "13B",
		OutputDir: outputDir,
	})
	require.NoError(t, err)
	assert.NoDirExists(t, outputDir)
}

func TestRunnerCapturesOutput(t *testing.T) {
	python := fakeConverter(t, "echo loading checkpoint shards\necho size mismatch warning >&2\nexit 0\n")

	r := Runner{Python: python}

	output, err := r.Run(context.Background(), Params{
		Script:    "/opt/convert.py",
		InputDir:  filepath.Join(t.TempDir(), "Llama-3.2-1B"),
		ModelSize: "1B",
		OutputDir: filepath.Join(t.TempDir(), "Llama-3.2-1B-hf"),
	})
	require.NoError(t, err)

	assert.Contains(t, output, "loading checkpoint shards")
	assert.Contains(t, output, "size mismatch warning")
}

func TestRunnerFailure(t *testing.T) {
	python := fakeConverter(t, "echo 'Traceback (most recent call last):' >&2\nexit 3\n")

	r := Runner{Python: python}

	output, err := r.Run(context.Background(), Params{
		Script:    "/opt/convert.py",
		InputDir:  filepath.Join(t.TempDir(), "Llama-2-7B"),
		ModelSize: "7B",
		OutputDir: filepath.Join(t.TempDir(), "Llama-2-7B-hf"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conversion failed")

	// captured output is preserved for the caller to log and record
	assert.Contains(t, output, "Traceback")
}

func TestRunnerMissingInterpreter(t *testing.T) {
	r := Runner{Python: filepath.Join(t.TempDir(), "missing-python")}

	_, err := r.Run(context.Background(), Params{
		Script:    "/opt/convert.py",
		InputDir:  filepath.Join(t.TempDir(), "Llama-2-7B"),
		ModelSize: "7B",
		OutputDir: filepath.Join(t.TempDir(), "Llama-2-7B-hf"),
	})
	assert.Error(t, err)
}
