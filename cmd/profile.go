package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/cvforge/pkg/ordering"
	"github.com/nikogura/cvforge/pkg/profile"
)

//nolint:gochecknoglobals // Cobra boilerplate
var profileShowOut string

//nolint:gochecknoglobals // Cobra boilerplate
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the stored profile",
}

//nolint:gochecknoglobals // Cobra boilerplate
var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a profile from a JSON or YAML file",
	Long: `Import a profile from a JSON or YAML file, replacing the stored one.

The file is checked against the profile schema. Items without an id get one,
and the section order is repaired so every non-empty section appears once.

Example:
  cvforge profile import profile.yaml
  cvforge profile import profile.json --user alice`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileImport,
}

//nolint:gochecknoglobals // Cobra boilerplate
var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile as JSON",
	Long: `Print the stored profile as JSON, or write it to a file with --out.

The written file can be edited and brought back with profile import.

Example:
  cvforge profile show
  cvforge profile show --out profile.json`,
	Args: cobra.NoArgs,
	RunE:  runProfileShow,
}

//nolint:gochecknoglobals // Cobra boilerplate
var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileDelete,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileImportCmd, profileShowCmd, profileDeleteCmd)
	profileShowCmd.Flags().StringVarP(&profileShowOut, "out", "o", "", "Write the profile to this file instead of stdout")
}

func runProfileImport(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var env environment
	env, err = setup(ctx)
	if err != nil {
		return err
	}
	defer env.store.Close()

	// Load and validate file
	var doc profile.Document
	doc, err = profile.Load(args[0])
	if err != nil {
		return err
	}

	doc.UserID = env.userID
	doc, assigned := profile.EnsureItemIDs(doc)
	doc = doc.WithSectionOrder(ordering.ReconcileDocument(doc))

	doc, err = env.store.Save(ctx, doc)
	if err != nil {
		err = errors.Wrap(err, "failed to save profile")
		return err
	}

	env.logger.WithField("assigned_ids", assigned).Debug("assigned missing item ids")

	fmt.Printf("✓ Imported profile for %s\n", env.userID)
	fmt.Printf("  Sections: %s\n", joinKeys(doc.SectionOrder))
	return err
}

func runProfileShow(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

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

	err = showProfile(doc, profileShowOut)
	return err
}

// showProfile prints doc as JSON, or writes it to outPath when one is given.
func showProfile(doc profile.Document, outPath string) (err error) {
	if outPath != "" {
		err = profile.Save(outPath, doc)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Profile written to %s\n", outPath)
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal profile")
		return err
	}

	fmt.Println(string(data))
	return err
}

func runProfileDelete(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var env environment
	env, err = setup(ctx)
	if err != nil {
		return err
	}
	defer env.store.Close()

	err = env.store.Delete(ctx, env.userID)
	if err != nil {
		err = errors.Wrapf(err, "failed to delete profile for %s", env.userID)
		return err
	}

	fmt.Printf("✓ Deleted profile for %s\n", env.userID)
	return err
}

func joinKeys(keys []profile.SectionKey) (out string) {
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += string(k)
	}
	if out == "" {
		out = "(none)"
	}
	return out
}
