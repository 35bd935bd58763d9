/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gestao-equipamentos",
	Short: "Equipment loan and reservation service",
	Long: `gestao-equipamentos tracks a university's equipment catalog and the
reservations, loans and maintenance tickets attached to it.

Run "server" to start the HTTP API, "migrate" to manage the relational
schema, or "checkpending" to run the due-date sweep once and exit.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
