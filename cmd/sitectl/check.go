package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/tenebreuse/internal/sitebuild"
)

var errProblemsFound = errors.New("problems found")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the site documents",
	Long:  `Loads every document from the configured source and reports load failures, catalog inconsistencies and page sections missing their title.`,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	problems := sitebuild.Check(cmd.Context(), env.loader)
	out := cmd.OutOrStdout()
	if len(problems) == 0 {
		fmt.Fprintln(out, "✓ documents OK")
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(out, "✗ %s\n", p)
	}
	return fmt.Errorf("%w: %d", errProblemsFound, len(problems))
}
