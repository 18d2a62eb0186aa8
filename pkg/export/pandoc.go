package export

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// PandocOptions describes one pandoc PDF conversion.
type PandocOptions struct {
	// From is the pandoc input format, "latex" or "markdown".
	From string
	// TemplatePath is an optional pandoc template.
	TemplatePath string
	// ClassFile is an optional LaTeX class; its directory joins TEXINPUTS.
	ClassFile string
}

// CompileLatex turns a generated .tex file into a PDF.
func CompileLatex(ctx context.Context, texPath, outputPath, classFile string) (err error) {
	err = PandocPDF(ctx, texPath, outputPath, PandocOptions{From: "latex", ClassFile: classFile})
	return err
}

// PandocPDF converts inputPath to a PDF at outputPath using pandoc.
func PandocPDF(ctx context.Context, inputPath, outputPath string, opts PandocOptions) (err error) {
	// Validate pandoc exists
	err = checkPandocExists(ctx)
	if err != nil {
		return err
	}

	// Validate input files exist
	files := []string{inputPath}
	if opts.TemplatePath != "" {
		files = append(files, opts.TemplatePath)
	}
	if opts.ClassFile != "" {
		files = append(files, opts.ClassFile)
	}
	err = validateFiles(files...)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	from := opts.From
	if from == "" {
		from = "markdown"
	}

	// Build pandoc command
	args := []string{"-f", from, "-t", "pdf", "-o", outputPath}
	if opts.TemplatePath != "" {
		args = append(args, "--template", opts.TemplatePath)
	}
	args = append(args, inputPath)

	cmd := exec.CommandContext(ctx, "pandoc", args...)

	// Set TEXINPUTS to include directory with .cls file
	if opts.ClassFile != "" {
		classDir := filepath.Dir(opts.ClassFile)
		texinputs := classDir + ":" + os.Getenv("TEXINPUTS")
		cmd.Env = append(os.Environ(), "TEXINPUTS="+texinputs)
	}

	// Capture output
	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context) (err error) {
	cmd := exec.CommandContext(ctx, "pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to generate PDFs)")
		return err
	}
	return err
}
