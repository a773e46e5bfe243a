package convert

import "strings"

// Params carries everything needed to build one converter invocation.
type Params struct {
	Script       string
	InputDir     string
	ModelSize    string // digits plus "B", e.g. "70B"
	OutputDir    string
	LlamaVersion string // "3.1" or empty; version 2 is the converter's default
}

// LlamaVersionFor maps a folder name to the converter's --llama_version
// flag. 3.1 and 3.2 checkpoints share the 3.1 conversion path; anything
// else relies on the converter's implicit version 2 default.
func LlamaVersionFor(name string) string {
	if strings.Contains(name, "3.1") || strings.Contains(name, "3.2") {
		return "3.1"
	}

	return ""
}

// Args builds the converter argv following the interpreter. The order is
// fixed so logged commands are reproducible.
func Args(p Params) []string {
	args := []string{
		p.Script,
		"--input_dir", p.InputDir,
		"--model_size", p.ModelSize,
		"--output_dir", p.OutputDir,
	}

	if p.LlamaVersion != "" {
		args = append(args, "--llama_version", p.LlamaVersion)
	}

	return args
}
