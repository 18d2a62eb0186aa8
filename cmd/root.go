package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nikogura/cvforge/pkg/config"
	"github.com/nikogura/cvforge/pkg/llm"
	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/store"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var userFlag string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "cvforge",
	Short: "Store, order and render your professional profile",
	Long: `cvforge keeps one professional profile per user and renders it as plain
text, styled markup for word processors, or a LaTeX document.

Section order can be set from a free-text preference. The Claude API suggests
an order, and cvforge repairs whatever comes back so every non-empty section
appears exactly once.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.cvforge/config.json)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "profile owner (default from config)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger builds the CLI logger. Verbose mode turns on debug output.
func newLogger() (logger *logrus.Logger) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if getVerbose() {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// environment is what most commands need: configuration, the profile store
// and the user whose profile is addressed.
type environment struct {
	cfg    config.Config
	store  store.Store
	userID string
	logger *logrus.Logger
}

// setup loads config and opens the store. Callers close env.store.
func setup(ctx context.Context) (env environment, err error) {
	env.logger = newLogger()

	env.cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return env, err
	}

	env.userID = env.cfg.UserID
	if userFlag != "" {
		env.userID = userFlag
	}

	env.logger.WithFields(logrus.Fields{
		"driver": env.cfg.Store.Driver,
		"user":   env.userID,
	}).Debug("opening profile store")

	env.store, err = store.Open(ctx, env.cfg.Store)
	if err != nil {
		err = errors.Wrap(err, "failed to open profile store")
		return env, err
	}

	return env, err
}

// loadProfile fetches the stored profile for the current user.
func (env environment) loadProfile(ctx context.Context) (doc profile.Document, err error) {
	doc, err = env.store.Load(ctx, env.userID)
	if errors.Is(err, store.ErrNotFound) {
		err = errors.Errorf("no profile stored for user %q (run 'cvforge profile import <file>' first)", env.userID)
		return doc, err
	}
	return doc, err
}

// llmClient returns a Claude client, or nil when no API key is configured.
func (env environment) llmClient(model string) (client *llm.Client) {
	if env.cfg.AnthropicAPIKey == "" {
		return client
	}
	client = llm.NewClient(env.cfg.AnthropicAPIKey, model)
	return client
}

// outputDir returns the flag value if set, otherwise the config value.
func (env environment) outputDir(flagValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = env.cfg.Defaults.OutputDir
	}
	return outDir
}
