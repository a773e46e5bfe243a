package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llamashift/llamashift/checkpoint"
	"github.com/llamashift/llamashift/envconfig"
	"github.com/llamashift/llamashift/history"
	"github.com/llamashift/llamashift/progress"
)

func cmdVerify() *cobra.Command {
	cmd := cobra.Command{
		Use:   "verify [MODEL]",
		Short: "Digest checkpoint shards without converting",
		Args:  cobra.MaximumNArgs(1),
		RunE:  verifyHandler,
	}
	cmd.Flags().String("input_dir", envconfig.Checkpoints, "Root directory to scan for model folders")
	cmd.Flags().Bool("all", false, "Verify every model folder")
	return &cmd
}

func verifyHandler(cmd *cobra.Command, args []string) error {
	inputDir := must(cmd.Flags().GetString("input_dir"))
	all := must(cmd.Flags().GetBool("all"))

	folders, err := checkpoint.Scan(inputDir)
	if err != nil {
		slog.Error("scanning input directory failed", "error", err)
		return nil
	}

	if len(folders) == 0 {
		slog.Warn("no model folders found", "path", inputDir, "prefix", checkpoint.FolderPrefix)
		return nil
	}

	if all {
		var failed int
		for _, folder := range folders {
			if err := verifyFolder(os.Stdout, folder); err != nil {
				slog.Error("verification failed", "model", folder.Name, "error", err)
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d model folders failed verification", failed, len(folders))
		}

		return nil
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	folder, err := chooseFolder(folders, name)
	if err != nil {
		if errors.Is(err, errModelNotFound) {
			slog.Error("model not found", "model", name, "path", inputDir)
			return nil
		}

		return err
	}

	return verifyFolder(os.Stdout, folder)
}

// verifyFolder digests each shard in the folder and prints the results in
// md5sum layout. Nothing is compared or recorded; a folder with no shards
// passes trivially.
func verifyFolder(w io.Writer, folder checkpoint.Folder) error {
	shards, err := folder.Shards()
	if err != nil {
		return err
	}

	if len(shards) == 0 {
		fmt.Fprintf(w, "%s: no checkpoint shards\n", folder.Name)
		return nil
	}

	checksums, err := digestShards(shards)
	if err != nil {
		return err
	}

	for _, c := range checksums {
		fmt.Fprintf(w, "%s  %s\n", c.MD5, filepath.Join(folder.Name, c.Shard))
	}

	return nil
}

// digestShards computes the MD5 of each shard, driving a single byte-count
// progress bar across the whole set.
func digestShards(shards []checkpoint.Shard) ([]history.Checksum, error) {
	var total int64
	for _, s := range shards {
		total += s.Size
	}

	var p *progress.Progress
	var bar *progress.Bar
	if showProgress() && total > 0 {
		p = progress.NewProgress(os.Stderr)
		defer p.StopAndClear()

		bar = progress.NewBar("verifying checkpoint shards", total, 0)
		p.Add(bar)
	}

	var done int64
	checksums := make([]history.Checksum, 0, len(shards))
	for _, s := range shards {
		digest, err := s.Digest(func(n int64) {
			if bar != nil {
				done += n
				bar.Set(done)
			}
		})
		if err != nil {
			return nil, err
		}

		slog.Info("checksum", "shard", s.Name, "md5", digest)
		checksums = append(checksums, history.Checksum{Shard: s.Name, MD5: digest, Size: s.Size})
	}

	return checksums, nil
}
