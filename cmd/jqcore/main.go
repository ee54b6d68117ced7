package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "jqcore",
	Short:   "jqcore - a jq-dialect filter evaluator core",
	Long:    `jqcore runs a small set of built-in example filters against JSON values read from stdin, one value per line.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(runCmd)
}
