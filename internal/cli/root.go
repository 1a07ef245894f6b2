// Package cli wires the autolink commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/autolink/internal/app"
)

// options mirrors app.Config for flag binding. Zero values mean "not set" so
// env and the config file can fill them in.
type options struct {
	configPath string
	envFiles   []string

	llmBase   string
	llmModel  string
	llmKey    string
	maxTokens int
	timeout   time.Duration

	cacheDir    string
	cacheMaxAge time.Duration
	cacheClear  bool
	cacheStrict bool

	dryRun   bool
	verbose  bool
	debounce time.Duration
}

// NewRootCommand builds the command tree. Exposed for tests.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "autolink",
		Short: "Link key phrases in Markdown notes as [[wiki links]] using an LLM",
		Long: `autolink asks an OpenAI-compatible model for the salient phrases of a note and
wraps their unlinked occurrences in [[...]] so they become cross-references.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", app.BuildVersion, app.BuildCommit, app.BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.verbose)
			return app.LoadEnvFiles(opts.envFiles...)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to YAML or JSON config file")
	pf.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	pf.StringVar(&opts.llmBase, "llm.base", "", "OpenAI-compatible base URL (env LLM_BASE_URL)")
	pf.StringVar(&opts.llmModel, "llm.model", "", "Model name (env LLM_MODEL, default "+app.DefaultModel+")")
	pf.StringVar(&opts.llmKey, "llm.key", "", "API key (env LLM_API_KEY or OPENAI_API_KEY)")
	pf.IntVar(&opts.maxTokens, "max-tokens", 0, "Max output tokens for keyword extraction (env LLM_MAX_TOKENS)")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Deadline for one keyword extraction (env LLM_TIMEOUT)")
	pf.StringVar(&opts.cacheDir, "cache.dir", "", "Cache directory (env CACHE_DIR)")
	pf.DurationVar(&opts.cacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this at startup; 0 disables")
	pf.BoolVar(&opts.cacheClear, "cache.clear", false, "Clear cache directory before running")
	pf.BoolVar(&opts.cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	root.AddCommand(newLinkCommand(opts), newModelsCommand(opts), newWatchCommand(opts))
	return root
}

// Execute runs the root command with signal-aware context.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("autolink failed")
	}
	return err
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// resolveConfig layers flags over env over the config file.
func resolveConfig(opts *options) (app.Config, error) {
	cfg := app.Config{
		LLMBaseURL:       opts.llmBase,
		LLMModel:         opts.llmModel,
		LLMAPIKey:        opts.llmKey,
		MaxOutputTokens:  opts.maxTokens,
		Timeout:          opts.timeout,
		CacheDir:         opts.cacheDir,
		CacheMaxAge:      opts.cacheMaxAge,
		CacheClear:       opts.cacheClear,
		CacheStrictPerms: opts.cacheStrict,
		DryRun:           opts.dryRun,
		Verbose:          opts.verbose,
		WatchDebounce:    opts.debounce,
	}
	app.ApplyEnvToConfig(&cfg)
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyDefaults(&cfg)
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}
