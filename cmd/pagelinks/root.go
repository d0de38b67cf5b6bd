package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "pagelinks",
	Short:         "Pagination links for paged collections",
	Long:          "Pagelinks builds self, first, prev, next and last links for a page of a collection.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
