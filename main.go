package main

import (
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/mattsolo1/grove-forge/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"forge",
		"Prompt-to-parametric-model demo",
	)

	rootCmd.AddCommand(cmd.NewDemoCmd())
	rootCmd.AddCommand(cmd.NewScenariosCmd())
	rootCmd.AddCommand(cmd.NewDescribeCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
