// Command sitectl validates the site documents and exports a static copy
// of the site.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Maintenance commands for the La Pêche Ténébreuse site",
	Long: `sitectl reads the same configuration as the server (environment and .env).
It checks the site documents before publishing and can export every page
as a static HTML site.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
