package pydeps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// scriptPath is where the transformers package ships the weight conversion
// script, relative to the package directory.
var scriptPath = filepath.Join("models", "llama", "convert_llama_weights_to_hf.py")

// Module is a Python module the converter imports at runtime, and the pip
// package that provides it when the two names differ.
type Module struct {
	Name    string
	Package string
}

// Base returns the modules every conversion needs.
func Base() []Module {
	return []Module{
		{Name: "torch", Package: "torch"},
		{Name: "transformers", Package: "transformers"},
		{Name: "accelerate", Package: "accelerate"},
	}
}

// Extras returns the tokenizer modules for a converter run. Llama 3.x
// checkpoints ship tiktoken tokenizers; earlier ones use sentencepiece.
func Extras(llamaVersion string) []Module {
	if llamaVersion != "" {
		return []Module{
			{Name: "tiktoken", Package: "tiktoken"},
			{Name: "blobfile", Package: "blobfile"},
		}
	}

	return []Module{
		{Name: "sentencepiece", Package: "sentencepiece"},
		{Name: "google.protobuf", Package: "protobuf"},
	}
}

// Check reports whether the interpreter can import the module.
func Check(ctx context.Context, python string, m Module) bool {
	return exec.CommandContext(ctx, python, "-c", "import "+m.Name).Run() == nil
}

// Missing returns the subset of mods the interpreter cannot import.
func Missing(ctx context.Context, python string, mods []Module) []Module {
	var missing []Module
	for _, m := range mods {
		if !Check(ctx, python, m) {
			missing = append(missing, m)
		}
	}

	return missing
}

// Install installs the pip package that provides the module.
func Install(ctx context.Context, python string, m Module) error {
	cmd := exec.CommandContext(ctx, python, "-m", "pip", "install", m.Package)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install %s failed: %v - %s", m.Package, err, stderr.String())
	}

	return nil
}

// LocateScript resolves the weight conversion script inside the installed
// transformers package.
func LocateScript(ctx context.Context, python string) (string, error) {
	cmd := exec.CommandContext(ctx, python, "-c", "import os, transformers; print(os.path.dirname(transformers.__file__))")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("locating transformers failed: %v - %s", err, stderr.String())
	}

	dir := strings.TrimSpace(stdout.String())
	if dir == "" {
		return "", errors.New("transformers package location is empty")
	}

	script := filepath.Join(dir, scriptPath)
	if _, err := os.Stat(script); err != nil {
		return "", fmt.Errorf("conversion script not found at %s: %w", script, err)
	}

	return script, nil
}
