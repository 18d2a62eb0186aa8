package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikogura/cvforge/pkg/export"
	"github.com/nikogura/cvforge/pkg/ordering"
	"github.com/nikogura/cvforge/pkg/server"
)

//nolint:gochecknoglobals // Cobra boilerplate
var servePort int

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored profiles over HTTP",
	Long: `Serve stored profiles over HTTP.

Routes:
  GET    /profiles/:user                  stored profile as JSON
  PUT    /profiles/:user                  replace the profile
  DELETE /profiles/:user                  delete the profile
  POST   /profiles/:user/order            {"preference": "..."}
  GET    /profiles/:user/render?target=   plain, markup or latex
  GET    /profiles/:user/export?format=   markdown, word, html or pdf
  POST   /profiles/:user/latex            {"job_description": "..."}
  POST   /profiles/:user/items/:section   add an item, answers its id
  GET    /profiles/:user/items/:section/:id
  PUT    /profiles/:user/items/:section/:id
  DELETE /profiles/:user/items/:section/:id`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var env environment
	env, err = setup(ctx)
	if err != nil {
		return err
	}
	defer env.store.Close()

	// Typed nil clients must not reach the interfaces
	var suggester ordering.Suggester
	var generator server.LatexGenerator
	if client := env.llmClient(env.cfg.GetSuggestionModel()); client != nil {
		suggester = client
	}
	if client := env.llmClient(env.cfg.GetLatexModel()); client != nil {
		generator = client
	}
	if suggester == nil {
		env.logger.Warn("no Anthropic API key configured: ordering limited to presets, LaTeX generation disabled")
	}

	srv := server.New(
		env.store,
		ordering.NewResolver(suggester, env.logger),
		generator,
		&export.Exporter{Printer: export.NewChromePrinter(env.cfg.Chrome.ExecPath)},
		env.logger,
	)

	port := env.cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	err = srv.ListenAndServe(ctx, port)
	return err
}
