package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/llamashift/llamashift/checkpoint"
	"github.com/llamashift/llamashift/convert"
	"github.com/llamashift/llamashift/envconfig"
	"github.com/llamashift/llamashift/format"
	"github.com/llamashift/llamashift/history"
	"github.com/llamashift/llamashift/progress"
	"github.com/llamashift/llamashift/pydeps"
)

func cmdConvert() *cobra.Command {
	cmd := cobra.Command{
		Use:   "convert [MODEL]",
		Short: "Convert a checkpoint folder to Hugging Face format",
		Args:  cobra.MaximumNArgs(1),
		RunE:  convertHandler,
	}
	cmd.Flags().String("input_dir", envconfig.Checkpoints, "Root directory to scan for model folders")
	cmd.Flags().String("convert_script", envconfig.Script, "Path to the conversion script (default: located in the installed transformers package)")
	cmd.Flags().Bool("dry_run", false, "Log the intended command without executing it")
	return &cmd
}

// convertHandler drives the pipeline: validate environment, check python
// dependencies, discover folders, select one, resolve its size, digest its
// shards, then hand off to the converter. Validation failures log and exit
// zero; only a failed dependency install escalates to a nonzero exit.
func convertHandler(cmd *cobra.Command, args []string) error {
	inputDir := must(cmd.Flags().GetString("input_dir"))
	script := must(cmd.Flags().GetString("convert_script"))
	dryRun := must(cmd.Flags().GetBool("dry_run"))
	python := envconfig.Python
	ctx := cmd.Context()

	if _, err := os.Stat(inputDir); err != nil {
		slog.Error("input directory not found", "path", inputDir)
		return nil
	}

	if _, err := exec.LookPath(python); err != nil {
		slog.Error("python interpreter not found", "python", python)
		return nil
	}

	folders, err := checkpoint.Scan(inputDir)
	if err != nil {
		slog.Error("scanning input directory failed", "error", err)
		return nil
	}

	if len(folders) == 0 {
		slog.Warn("no model folders found", "path", inputDir, "prefix", checkpoint.FolderPrefix)
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

	start := time.Now()

	var store *history.Store
	if !dryRun {
		if store, err = history.Open(envconfig.Home); err != nil {
			slog.Warn("history unavailable", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	run := history.Run{
		ID:        uuid.New().String(),
		Model:     folder.Name,
		OutputDir: folder.OutputPath(),
		StartedAt: start,
	}

	record := func(status, detail string, checksums []history.Checksum) {
		if store == nil {
			return
		}

		run.Status = status
		run.Detail = detail
		run.Duration = time.Since(start)
		if err := store.Add(run, checksums); err != nil {
			slog.Warn("recording run failed", "error", err)
		}
	}

	size, err := folder.ParamSize()
	if err != nil {
		slog.Warn("skipping folder", "model", folder.Name, "error", err)
		record(history.StatusSkipped, err.Error(), nil)
		return nil
	}
	run.ParamSize = size

	llamaVersion := convert.LlamaVersionFor(folder.Name)

	mods := append(pydeps.Base(), pydeps.Extras(llamaVersion)...)
	if missing := pydeps.Missing(ctx, python, mods); len(missing) > 0 {
		if dryRun {
			for _, m := range missing {
				slog.Info("dry run: would install python package", "package", m.Package)
			}
		} else if err := installMissing(ctx, python, missing); err != nil {
			record(history.StatusFailed, err.Error(), nil)
			return err
		}
	}

	if script == "" {
		if script, err = pydeps.LocateScript(ctx, python); err != nil {
			slog.Error("converter script not found", "error", err)
			record(history.StatusSkipped, err.Error(), nil)
			return nil
		}
	} else if _, err := os.Stat(script); err != nil {
		slog.Error("converter script not found", "path", script)
		record(history.StatusSkipped, "converter script not found", nil)
		return nil
	}

	shards, err := folder.Shards()
	if err != nil {
		slog.Warn("skipping conversion", "model", folder.Name, "error", err)
		record(history.StatusSkipped, err.Error(), nil)
		return nil
	}

	run.Shards = len(shards)
	for _, s := range shards {
		run.TotalBytes += s.Size
	}

	// readability probe over every shard; an empty folder passes vacuously
	checksums, err := digestShards(shards)
	if err != nil {
		slog.Warn("skipping conversion", "model", folder.Name, "error", err)
		record(history.StatusSkipped, err.Error(), nil)
		return nil
	}

	if !dryRun {
		convert.CheckDiskSpace(inputDir, run.TotalBytes)
	}

	params := convert.Params{
		Script:       script,
		InputDir:     folder.Path,
		ModelSize:    size + "B",
		OutputDir:    folder.OutputPath(),
		LlamaVersion: llamaVersion,
	}

	runner := convert.Runner{Python: python, DryRun: dryRun}

	var p *progress.Progress
	if !dryRun && showProgress() {
		p = progress.NewProgress(os.Stderr)
		p.Add(progress.NewSpinner(fmt.Sprintf("converting %s", folder.Name)))
	}

	output, err := runner.Run(ctx, params)
	if p != nil {
		p.StopAndClear()
	}

	if err != nil {
		slog.Error("conversion failed", "model", folder.Name, "error", err)
		if output != "" {
			fmt.Fprintln(os.Stderr, output)
		}
		record(history.StatusFailed, err.Error(), checksums)
		return nil
	}

	if dryRun {
		return nil
	}

	slog.Info("conversion complete",
		"model", folder.Name,
		"output", folder.OutputPath(),
		"duration", format.ExactDuration(time.Since(start)))
	record(history.StatusConverted, "", checksums)
	return nil
}

func installMissing(ctx context.Context, python string, missing []pydeps.Module) error {
	var p *progress.Progress
	var bar *progress.StepBar
	if showProgress() {
		p = progress.NewProgress(os.Stderr)
		defer p.Stop()

		bar = progress.NewStepBar("installing python packages", len(missing))
		p.Add(bar)
	}

	for i, m := range missing {
		slog.Info("installing python package", "package", m.Package)
		if err := pydeps.Install(ctx, python, m); err != nil {
			return err
		}

		if bar != nil {
			bar.Set(i + 1)
		}
	}

	return nil
}
