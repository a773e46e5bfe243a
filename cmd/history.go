package cmd

import (
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/llamashift/llamashift/envconfig"
	"github.com/llamashift/llamashift/format"
	"github.com/llamashift/llamashift/history"
)

func cmdHistory() *cobra.Command {
	cmd := cobra.Command{
		Use:   "history",
		Short: "Show recent conversion runs",
		Args:  cobra.NoArgs,
		RunE:  historyHandler,
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	return &cmd
}

func historyHandler(cmd *cobra.Command, args []string) error {
	limit := must(cmd.Flags().GetInt("limit"))

	store, err := history.Open(envconfig.Home)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}

	historyRender(os.Stdout, runs)
	return nil
}

func historyRender(w io.Writer, runs []history.Run) {
	var data [][]string
	for _, run := range runs {
		data = append(data, []string{
			run.Model,
			run.Status,
			format.HumanBytes(run.TotalBytes),
			format.ExactDuration(run.Duration),
			format.HumanTime(run.StartedAt, "Never"),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"MODEL", "STATUS", "SIZE", "DURATION", "WHEN"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
