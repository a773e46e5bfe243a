package pydeps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePython writes an executable shell script standing in for the
// interpreter and returns its path.
func fakePython(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a shell")
	}

	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestBase(t *testing.T) {
	want := []Module{
		{Name: "torch", Package: "torch"},
		{Name: "transformers", Package: "transformers"},
		{Name: "accelerate", Package: "accelerate"},
	}

	assert.Equal(t, want, Base())
}

func TestExtras(t *testing.T) {
	assert.Equal(t, []Module{
		{Name: "tiktoken", Package: "tiktoken"},
		{Name: "blobfile", Package: "blobfile"},
	}, Extras("3.1"))

	assert.Equal(t, []Module{
		{Name: "sentencepiece", Package: "sentencepiece"},
		{Name: "google.protobuf", Package: "protobuf"},
	}, Extras(""))
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	ok := fakePython(t, "exit 0\n")
	assert.True(t, Check(ctx, ok, Module{Name: "torch"}))

	missing := fakePython(t, "exit 1\n")
	assert.False(t, Check(ctx, missing, Module{Name: "torch"}))
}

func TestMissing(t *testing.T) {
	// only torch imports cleanly
	python := fakePython(t, `case "$2" in
  "import torch") exit 0 ;;
  *) exit 1 ;;
esac
`)

	missing := Missing(context.Background(), python, Base())
	assert.Equal(t, []Module{
		{Name: "transformers", Package: "transformers"},
		{Name: "accelerate", Package: "accelerate"},
	}, missing)
}

func TestInstall(t *testing.T) {
	ctx := context.Background()

	ok := fakePython(t, "exit 0\n")
	assert.NoError(t, Install(ctx, ok, Module{Name: "tiktoken", Package: "tiktoken"}))

	failing := fakePython(t, "echo no matching distribution >&2\nexit 1\n")
	err := Install(ctx, failing, Module{Name: "tiktoken", Package: "tiktoken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching distribution")
}

func TestLocateScript(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "transformers")
	script := filepath.Join(pkg, "models", "llama", "convert_llama_weights_to_hf.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, []byte("# converter"), 0o644))

	python := fakePython(t, fmt.Sprintf("echo %s\n", pkg))

	got, err := LocateScript(context.Background(), python)
	require.NoError(t, err)
	assert.Equal(t, script, got)
}

func TestLocateScriptNoTransformers(t *testing.T) {
	python := fakePython(t, "echo ModuleNotFoundError >&2\nexit 1\n")

	_, err := LocateScript(context.Background(), python)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ModuleNotFoundError")
}

func TestLocateScriptMissingScript(t *testing.T) {
	// transformers resolves but the script file is absent
	python := fakePython(t, fmt.Sprintf("echo %s\n", t.TempDir()))

	_, err := LocateScript(context.Background(), python)
	assert.Error(t, err)
}
