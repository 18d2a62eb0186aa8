package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/render"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderTarget string

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the stored profile in a render target",
	Long: `Print the stored profile in its section order.

Targets:
  plain   structured plain text (default)
  markup  styled HTML suitable for word processors
  latex   escaped text handed to the LaTeX generator

Example:
  cvforge render
  cvforge render --target markup > cv.html`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderTarget, "target", "t", string(render.TargetPlainText), "Render target: plain, markup or latex")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var target render.Target
	target, err = render.ParseTarget(renderTarget)
	if err != nil {
		return err
	}

	var env environment
	env, err = setup(ctx)
	if err != nil {
		return err
	}
	defer env.store.Close()

	var doc profile.Document
	doc, err = env.loadProfile(ctx)
	if err != nil {
		return err
	}

	var out string
	out, err = render.RenderDocument(doc, target)
	if err != nil {
		return err
	}

	fmt.Println(out)
	return err
}
