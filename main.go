package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/llamashift/llamashift/cmd"
	"github.com/llamashift/llamashift/envconfig"
	"github.com/llamashift/llamashift/logutil"
)

func main() {
	err := cmd.LoadDotEnv()
	if err != nil {
		log.Fatal(err)
	}
	envconfig.LoadConfig()
	logutil.Init()
	cobra.CheckErr(cmd.NewCLI().ExecuteContext(context.Background()))
}
