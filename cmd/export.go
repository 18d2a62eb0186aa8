package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/cvforge/pkg/export"
	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/render"
)

// PDF engines.
const (
	engineChrome = "chrome"
	enginePandoc = "pandoc"
)

//nolint:gochecknoglobals // Cobra boilerplate
var exportFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var exportOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var exportEngine string

//nolint:gochecknoglobals // Cobra boilerplate
var exportKeepSource bool

//nolint:gochecknoglobals // Cobra boilerplate
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored profile to a file",
	Long: `Write the stored profile to <Name>_CV.<ext> in the output directory.

Formats:
  markdown  plain text (.md)
  word      styled markup a word processor opens (.doc)
  html      styled markup (.html)
  pdf       printed by headless Chrome, or by pandoc with --engine pandoc

Example:
  cvforge export --format word
  cvforge export --format pdf --engine pandoc --output-dir ~/Documents`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatMarkdown), "Format: markdown, word, html or pdf")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Output directory (default from config)")
	exportCmd.Flags().StringVar(&exportEngine, "engine", engineChrome, "PDF engine: chrome or pandoc")
	exportCmd.Flags().BoolVar(&exportKeepSource, "keep-source", false, "Keep the intermediate markdown when the pandoc engine is used")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var format export.Format
	format, err = export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	engine := strings.ToLower(exportEngine)
	if engine != engineChrome && engine != enginePandoc {
		err = errors.Errorf("invalid engine: %s (must be chrome or pandoc)", exportEngine)
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

	outDir := env.outputDir(exportOutputDir)
	outPath := filepath.Join(outDir, export.Filename(doc.Contact.DisplayName(), format.Extension()))

	if format == export.FormatPDF && engine == enginePandoc {
		err = exportWithPandoc(ctx, env, doc, outPath)
		if err != nil {
			return err
		}
		fmt.Printf("✓ PDF written to %s\n", outPath)
		return err
	}

	exporter := &export.Exporter{Printer: export.NewChromePrinter(env.cfg.Chrome.ExecPath)}

	var artifact export.Artifact
	artifact, err = exporter.Export(ctx, doc, format)
	if err != nil {
		return err
	}

	err = export.WriteFile(artifact.Data, outPath)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s written to %s\n", strings.ToUpper(string(format)), outPath)
	return err
}

// exportWithPandoc renders plain text, whose underlined headings pandoc reads
// as markdown, and converts it with the configured template.
func exportWithPandoc(ctx context.Context, env environment, doc profile.Document, pdfPath string) (err error) {
	var text string
	text, err = render.RenderDocument(doc, render.TargetPlainText)
	if err != nil {
		return err
	}

	mdPath := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".md"
	err = export.WriteFile([]byte(text), mdPath)
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("Rendering PDF with pandoc: %s\n", pdfPath)
	}

	err = export.PandocPDF(ctx, mdPath, pdfPath, export.PandocOptions{
		From:         "markdown",
		TemplatePath: env.cfg.Pandoc.TemplatePath,
		ClassFile:    env.cfg.Pandoc.ClassFile,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to render PDF")
		return err
	}

	if !exportKeepSource {
		err = export.Cleanup(mdPath)
		if err != nil {
			return err
		}
	}

	return err
}
