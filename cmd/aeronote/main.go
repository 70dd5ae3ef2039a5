package main

import (
	"os"

	"github.com/aeronote/aeronote/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		format, _ := cmd.PersistentFlags().GetString("format")
		cli.WriteErrorResponse(os.Stderr, format, err)
		os.Exit(cli.GetExitCode(err))
	}
}
