package envconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// Set via LLAMASHIFT_CHECKPOINTS in the environment
	Checkpoints string
	// Set via LLAMASHIFT_SCRIPT in the environment
	Script string
	// Set via LLAMASHIFT_PYTHON in the environment
	Python string
	// Set via LLAMASHIFT_HOME in the environment
	Home string
	// Set via LLAMASHIFT_DEBUG in the environment
	Debug bool
	// Set via LLAMASHIFT_NOPROGRESS in the environment
	NoProgress bool
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"LLAMASHIFT_CHECKPOINTS": {"LLAMASHIFT_CHECKPOINTS", Checkpoints, "Root directory scanned for checkpoint folders (default \"~/.llama/checkpoints\")"},
		"LLAMASHIFT_SCRIPT":      {"LLAMASHIFT_SCRIPT", Script, "Path to the conversion script (default: located in the installed transformers package)"},
		"LLAMASHIFT_PYTHON":      {"LLAMASHIFT_PYTHON", Python, "Python interpreter used for the converter and dependency checks (default \"python3\")"},
		"LLAMASHIFT_HOME":        {"LLAMASHIFT_HOME", Home, "Directory for llamashift state: .env, config.toml, history.db (default \"~/.llamashift\")"},
		"LLAMASHIFT_DEBUG":       {"LLAMASHIFT_DEBUG", Debug, "Show additional debug information (e.g. LLAMASHIFT_DEBUG=1)"},
		"LLAMASHIFT_NOPROGRESS":  {"LLAMASHIFT_NOPROGRESS", NoProgress, "Disable progress rendering on stderr"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// clean returns the value for key, preferring the environment and falling
// back to the config file, with quotes and spaces stripped.
func clean(key string) string {
	value := os.Getenv(key)
	if value == "" {
		value = GetConfigValue(key)
	}
	return strings.Trim(value, "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	if debug := clean("LLAMASHIFT_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err == nil {
			Debug = d
		} else {
			Debug = true
		}
	} else {
		Debug = false
	}

	NoProgress = false
	if noprogress := clean("LLAMASHIFT_NOPROGRESS"); noprogress != "" {
		if d, err := strconv.ParseBool(noprogress); err != nil || d {
			NoProgress = true
		}
	}

	Python = clean("LLAMASHIFT_PYTHON")
	if Python == "" {
		Python = "python3"
	}

	Script = clean("LLAMASHIFT_SCRIPT")

	home, err := os.UserHomeDir()

	Home = clean("LLAMASHIFT_HOME")
	if Home == "" && err == nil {
		Home = filepath.Join(home, ".llamashift")
	}

	Checkpoints = clean("LLAMASHIFT_CHECKPOINTS")
	if Checkpoints == "" && err == nil {
		Checkpoints = filepath.Join(home, ".llama", "checkpoints")
	}
}
