// Package main implements the taskboard CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Taskboard - a task management service",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "taskboard.toml", "path to the config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
