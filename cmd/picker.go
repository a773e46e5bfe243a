package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/llamashift/llamashift/checkpoint"
)

var errModelNotFound = errors.New("model not found")

// chooseFolder resolves the folder to operate on: by exact name when one was
// given, otherwise interactively.
func chooseFolder(folders []checkpoint.Folder, name string) (checkpoint.Folder, error) {
	if name == "" {
		return pickFolder(os.Stdin, os.Stderr, folders)
	}

	for _, folder := range folders {
		if folder.Name == name {
			return folder, nil
		}
	}

	return checkpoint.Folder{}, fmt.Errorf("%w: %s", errModelNotFound, name)
}

// pickFolder prints a 1-indexed list of candidates and prompts until a valid
// selection arrives. Invalid input retries; EOF or a read error aborts.
func pickFolder(r io.Reader, w io.Writer, folders []checkpoint.Folder) (checkpoint.Folder, error) {
	for i, folder := range folders {
		fmt.Fprintf(w, "%d: %s\n", i+1, folder.Name)
	}

	reader := bufio.NewReader(r)
	for {
		fmt.Fprintf(w, "Select a model to convert [1-%d]: ", len(folders))

		line, readErr := reader.ReadString('\n')

		// a valid selection on the final unterminated line still counts
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && n >= 1 && n <= len(folders) {
			return folders[n-1], nil
		}

		if readErr != nil {
			return checkpoint.Folder{}, fmt.Errorf("selection aborted: %w", readErr)
		}

		fmt.Fprintln(w, "Invalid selection, enter a number from the list.")
	}
}
