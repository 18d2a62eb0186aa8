package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/cvforge/pkg/export"
	"github.com/nikogura/cvforge/pkg/jd"
	"github.com/nikogura/cvforge/pkg/llm"
	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/render"
)

//nolint:gochecknoglobals // Cobra boilerplate
var latexJD string

//nolint:gochecknoglobals // Cobra boilerplate
var latexOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var latexPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var latexKeepTex bool

//nolint:gochecknoglobals // Cobra boilerplate
var latexCmd = &cobra.Command{
	Use:   "latex",
	Short: "Generate a LaTeX resume with the Claude API",
	Long: `Generate a LaTeX resume from the stored profile with the Claude API.

The profile is rendered to escaped text in its section order and handed to
Claude, optionally together with a job description to tailor against. The job
description can be a file path or a URL.

Example:
  cvforge latex
  cvforge latex --jd https://example.com/jobs/123 --pdf`,
	Args: cobra.NoArgs,
	RunE: runLatex,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(latexCmd)
	latexCmd.Flags().StringVar(&latexJD, "jd", "", "Job description file or URL to tailor against")
	latexCmd.Flags().StringVar(&latexOutputDir, "output-dir", "", "Output directory (default from config)")
	latexCmd.Flags().BoolVar(&latexPDF, "pdf", false, "Compile the generated LaTeX to PDF with pandoc")
	latexCmd.Flags().BoolVar(&latexKeepTex, "keep-tex", true, "Keep the .tex file after PDF compilation")
}

func runLatex(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var env environment
	env, err = setup(ctx)
	if err != nil {
		return err
	}
	defer env.store.Close()

	err = env.cfg.RequireAPIKey()
	if err != nil {
		return err
	}

	var doc profile.Document
	doc, err = env.loadProfile(ctx)
	if err != nil {
		return err
	}

	var jobDescription string
	if latexJD != "" {
		jobDescription, err = fetchAndLogJD(ctx, latexJD)
		if err != nil {
			return err
		}
	}

	var profileText string
	profileText, err = render.RenderDocument(doc, render.TargetLatexPrompt)
	if err != nil {
		return err
	}

	client := env.llmClient(env.cfg.GetLatexModel())

	s := startSpinner("Generating LaTeX resume with Claude API...")
	var document string
	document, err = client.GenerateLatex(ctx, llm.LatexRequest{
		ProfileText:    profileText,
		JobDescription: jobDescription,
	})
	s.stopSpinner()
	if err != nil {
		err = errors.Wrap(err, "Claude API LaTeX generation failed")
		return err
	}

	outDir := env.outputDir(latexOutputDir)
	texPath := filepath.Join(outDir, export.Filename(doc.Contact.DisplayName(), "tex"))

	err = export.WriteFile([]byte(document), texPath)
	if err != nil {
		return err
	}
	fmt.Printf("✓ LaTeX written to %s\n", texPath)

	if !latexPDF {
		return err
	}

	pdfPath := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	err = export.CompileLatex(ctx, texPath, pdfPath, env.cfg.Pandoc.ClassFile)
	if err != nil {
		err = errors.Wrap(err, "failed to compile LaTeX")
		return err
	}
	fmt.Printf("✓ PDF written to %s\n", pdfPath)

	if !latexKeepTex {
		err = export.Cleanup(texPath)
		if err != nil {
			return err
		}
	}

	return err
}

// fetchAndLogJD loads the job description, falling back to text pasted on
// stdin when a URL cannot be fetched.
func fetchAndLogJD(ctx context.Context, jdInput string) (jobDescription string, err error) {
	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", jdInput)
	}

	jobDescription, err = jd.FetchWithContext(ctx, jdInput)
	if err != nil {
		// If fetching failed, offer to accept manual input
		fmt.Printf("\nWarning: Failed to fetch job description: %v\n", err)
		fmt.Println("This often happens with JavaScript-rendered pages (Lever, Workable, etc.)")
		fmt.Println("\nPlease paste the job description text below.")
		fmt.Println("When finished, press Ctrl+D (Unix/Mac) or Ctrl+Z then Enter (Windows):")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}

		if scanner.Err() != nil {
			err = errors.Wrap(scanner.Err(), "failed to read job description from stdin")
			return jobDescription, err
		}

		jobDescription = jd.CapContent(strings.TrimSpace(strings.Join(lines, "\n")))
		if jobDescription == "" {
			err = errors.New("no job description provided")
			return jobDescription, err
		}

		fmt.Printf("\nJob description received (%d characters)\n", len(jobDescription))
		err = nil
		return jobDescription, err
	}

	if getVerbose() {
		fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
	}

	return jobDescription, err
}
