package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/llamashift/llamashift/envconfig"
)

func cmdEnv() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE:  envHandler,
	}
}

func envHandler(cmd *cobra.Command, args []string) error {
	envRender(os.Stdout)
	return nil
}

func envRender(w io.Writer) {
	vars := envconfig.AsMap()

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var data [][]string
	for _, name := range names {
		v := vars[name]
		data = append(data, []string{v.Name, fmt.Sprintf("%v", v.Value), v.Description})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "VALUE", "DESCRIPTION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
