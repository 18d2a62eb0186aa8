package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/cvforge/pkg/ordering"
	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/store"
)

//nolint:gochecknoglobals // Cobra boilerplate
var orderDryRun bool

//nolint:gochecknoglobals // Cobra boilerplate
var orderCmd = &cobra.Command{
	Use:   "order [preference]",
	Short: "Set the section order from a free-text preference",
	Long: `Set the section order from a free-text preference.

With an API key configured the preference is sent to the Claude API, which
suggests an order. Without one, only the presets academic, work-focused and
technical are understood. Either way the result is repaired so every non-empty
section appears exactly once. If the suggestion fails, the stored order is
kept.

With no preference the stored order is repaired and saved.

Example:
  cvforge order "lead with my publications"
  cvforge order technical
  cvforge order --dry-run "projects before experience"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrder,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.Flags().BoolVar(&orderDryRun, "dry-run", false, "Print the resolved order without saving it")
}

func runOrder(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	preference := strings.Join(args, " ")

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

	// A typed nil client must not reach the resolver
	var suggester ordering.Suggester
	if client := env.llmClient(env.cfg.GetSuggestionModel()); client != nil {
		suggester = client
	}
	resolver := ordering.NewResolver(suggester, env.logger)

	var s *spinner
	if suggester != nil && preference != "" {
		s = startSpinner("Asking Claude for a section order...")
	}
	result, resolveErr := resolver.Resolve(ctx, doc, preference)
	s.stopSpinner()

	err = applyOrder(ctx, env.store, doc, result, resolveErr, orderDryRun)
	return err
}

// applyOrder prints the resolved order and saves it. A failed resolution is
// reported with the order that stays in place and returned as an error.
func applyOrder(ctx context.Context, st store.Store, doc profile.Document, result ordering.Result, resolveErr error, dryRun bool) (err error) {
	if resolveErr != nil {
		fmt.Printf("Warning: %v\n", resolveErr)
		fmt.Printf("Keeping stored order: %s\n", joinKeys(result.Order))
		err = errors.Wrap(resolveErr, "section order not changed")
		return err
	}

	printOrder(result)

	if dryRun {
		return err
	}

	_, err = st.Save(ctx, doc.WithSectionOrder(result.Order))
	if err != nil {
		err = errors.Wrap(err, "failed to save section order")
		return err
	}

	fmt.Println("✓ Section order saved")
	return err
}

func printOrder(result ordering.Result) {
	fmt.Printf("Section order (%s):\n", result.Source)
	for i, k := range result.Order {
		fmt.Printf("  %d. %s\n", i+1, k)
	}
	if result.Reasoning != "" {
		fmt.Printf("Reasoning: %s\n", result.Reasoning)
	}
}
