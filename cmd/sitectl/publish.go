package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/tenebreuse/internal"
	"github.com/DukeRupert/tenebreuse/internal/content"
	"github.com/DukeRupert/tenebreuse/internal/sitebuild"
	"github.com/DukeRupert/tenebreuse/internal/storage"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload local documents to the configured bucket",
	Long: `Checks the documents of a local directory, then copies them to the document
source configured with DATA_PROVIDER=r2. Existing objects are kept unless
--overwrite is given.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("from", "", "local documents directory (default DATA_DIR)")
	publishCmd.Flags().Bool("overwrite", false, "replace existing objects")
	publishCmd.Flags().Bool("force", false, "publish even when the check reports problems")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	force, _ := cmd.Flags().GetBool("force")

	env, err := setup()
	if err != nil {
		return err
	}
	if env.cfg.DataProvider != storage.ProviderR2 {
		return fmt.Errorf("publish needs DATA_PROVIDER=%s, got %q", storage.ProviderR2, env.cfg.DataProvider)
	}
	if from == "" {
		from = env.cfg.DataDir
	}

	src, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: from}, env.logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	problems := sitebuild.Check(cmd.Context(), content.NewLoader(src, content.Options{}, env.logger))
	for _, p := range problems {
		fmt.Fprintf(out, "✗ %s\n", p)
	}
	if len(problems) > 0 && !force {
		return fmt.Errorf("%w: %d (use --force to publish anyway)", errProblemsFound, len(problems))
	}

	dst, err := internal.NewDocumentStorage(env.cfg, env.logger)
	if err != nil {
		return err
	}
	res, err := sitebuild.Publish(cmd.Context(), src, dst, overwrite, env.logger)
	if err != nil {
		return err
	}
	for _, key := range res.Published {
		fmt.Fprintf(out, "✓ %s\n", key)
	}
	for _, key := range res.Skipped {
		fmt.Fprintf(out, "- %s (absent, skipped)\n", key)
	}
	return nil
}
