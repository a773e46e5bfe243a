package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/llamashift/llamashift/envconfig"
	"github.com/llamashift/llamashift/version"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "llamashift",
		Short:   "Convert raw LLaMA checkpoints to Hugging Face format",
		Version: version.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
	}

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(
		cmdConvert(),
		cmdList(),
		cmdVerify(),
		cmdHistory(),
		cmdEnv(),
	)

	return rootCmd
}

// must unwraps cobra flag lookups, which cannot fail for registered flags.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

func showProgress() bool {
	return !envconfig.NoProgress && term.IsTerminal(int(os.Stderr.Fd()))
}
