package cmd

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/llamashift/llamashift/checkpoint"
	"github.com/llamashift/llamashift/envconfig"
	"github.com/llamashift/llamashift/format"
)

func cmdList() *cobra.Command {
	cmd := cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List model folders in the input directory",
		Args:    cobra.NoArgs,
		RunE:    listHandler,
	}
	cmd.Flags().String("input_dir", envconfig.Checkpoints, "Root directory to scan for model folders")
	return &cmd
}

func listHandler(cmd *cobra.Command, args []string) error {
	inputDir := must(cmd.Flags().GetString("input_dir"))

	folders, err := checkpoint.Scan(inputDir)
	if err != nil {
		slog.Error("scanning input directory failed", "error", err)
		return nil
	}

	listRender(os.Stdout, folders)
	return nil
}

func listRender(w io.Writer, folders []checkpoint.Folder) {
	var data [][]string
	for _, folder := range folders {
		params := "-"
		if size, err := folder.ParamSize(); err == nil {
			params = size + "B"
		}

		shards, err := folder.Shards()
		if err != nil {
			slog.Debug("listing shards failed", "model", folder.Name, "error", err)
		}

		var bytes int64
		for _, s := range shards {
			bytes += s.Size
		}

		data = append(data, []string{
			folder.Name,
			params,
			strconv.Itoa(len(shards)),
			format.HumanBytes(bytes),
			format.HumanTime(folder.ModTime, "Never"),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "PARAMS", "SHARDS", "SIZE", "MODIFIED"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
