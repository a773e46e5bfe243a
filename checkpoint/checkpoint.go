package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// FolderPrefix is the case-sensitive prefix a directory name must carry
	// to be treated as a candidate model folder.
	FolderPrefix = "Llama"

	shardPrefix = "consolidated"
	shardSuffix = ".pth"
)

var ErrNoParamSize = errors.New("no parameter size token in folder name")

// paramSizeRegex matches the digits immediately preceding a literal "B",
// e.g. "Llama-3.1-70B-Instruct" -> "70".
var paramSizeRegex = regexp.MustCompile(`(\d+)B`)

// Folder is a candidate model checkpoint folder under the input root.
type Folder struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Shard is a raw checkpoint weight file inside a model folder.
type Shard struct {
	Name string
	Path string
	Size int64
}

// Scan lists the immediate subdirectories of root whose name starts with
// FolderPrefix. An empty result is not an error.
func Scan(root string) ([]Folder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	var folders []Folder
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), FolderPrefix) {
			continue
		}

		var modTime time.Time
		if info, err := entry.Info(); err == nil {
			modTime = info.ModTime()
		}

		folders = append(folders, Folder{
			Name:    entry.Name(),
			Path:    filepath.Join(root, entry.Name()),
			ModTime: modTime,
		})
	}

	return folders, nil
}

// ParamSize extracts the parameter size token from the folder name: the
// digits immediately preceding a literal "B". Folders without a token
// cannot be converted.
func (f Folder) ParamSize() (string, error) {
	match := paramSizeRegex.FindStringSubmatch(f.Name)
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrNoParamSize, f.Name)
	}

	return match[1], nil
}

// Shards enumerates the consolidated*.pth checkpoint files in the folder.
// A folder with zero shards is valid; the converter may still accept it.
func (f Folder) Shards() ([]Shard, error) {
	entries, err := os.ReadDir(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}

	var shards []Shard
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, shardPrefix) || !strings.HasSuffix(name, shardSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}

		shards = append(shards, Shard{
			Name: name,
			Path: filepath.Join(f.Path, name),
			Size: info.Size(),
		})
	}

	return shards, nil
}

// OutputPath is the sibling directory the converter writes to.
func (f Folder) OutputPath() string {
	return f.Path + "-hf"
}
