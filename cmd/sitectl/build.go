package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/tenebreuse/internal/handler"
	"github.com/DukeRupert/tenebreuse/internal/sitebuild"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `Renders the five pages, copies the static assets and writes the Open Graph
image to the output directory. Forms in the exported pages still post to the
server routes.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("out", "dist", "output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	env, err := setup()
	if err != nil {
		return err
	}

	renderer, err := handler.NewRenderer(handler.RendererConfig{FS: env.templates, Logger: env.logger})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}

	siteHandler := handler.NewSiteHandler(handler.SiteHandlerConfig{
		Loader:   env.loader,
		Renderer: renderer,
		Notifier: env.notifier,
		BaseURL:  env.cfg.BaseURL,
		IsSecure: true,
		Logger:   env.logger,
	})
	mux := http.NewServeMux()
	passthrough := func(next http.Handler) http.Handler { return next }
	siteHandler.RegisterRoutes(mux, passthrough, passthrough)

	builder := &sitebuild.Builder{
		Handler: mux,
		Static:  env.static,
		OGImage: handler.NewOGImageHandler(env.loader, env.static, env.logger).Image,
		Logger:  env.logger,
	}
	res, err := builder.Build(cmd.Context(), out)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ %d pages and %d assets written to %s\n", len(res.Pages), res.Assets, out)
	for _, link := range res.BrokenLinks {
		fmt.Fprintf(w, "✗ broken link %s\n", link)
	}
	if len(res.BrokenLinks) > 0 {
		return fmt.Errorf("%d broken links", len(res.BrokenLinks))
	}
	return nil
}
