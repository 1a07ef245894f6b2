package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/autolink/internal/cache"
	"github.com/hyperifyio/autolink/internal/keywords"
	"github.com/hyperifyio/autolink/internal/llm"
	"github.com/hyperifyio/autolink/internal/models"
	"github.com/hyperifyio/autolink/internal/weave"
)

// App links keywords in notes using one configured provider.
type App struct {
	cfg       Config
	provider  *llm.OpenAIProvider
	extractor keywords.Extractor
	cache     *cache.LLMCache
}

// New applies defaults, validates cfg, and prepares the provider client and
// cache. It performs no network calls.
func New(_ context.Context, cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	provider := llm.NewOpenAI(cfg.LLMAPIKey, cfg.LLMBaseURL, newHTTPClient(cfg.Timeout))
	a := &App{
		cfg:      cfg,
		provider: provider,
		extractor: &keywords.LLMExtractor{
			Client:          provider,
			Model:           cfg.LLMModel,
			MaxOutputTokens: cfg.MaxOutputTokens,
			Verbose:         cfg.Verbose,
		},
	}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeLLMCacheByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		a.cache = &cache.LLMCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	return a, nil
}

// Config returns the effective configuration after defaults.
func (a *App) Config() Config { return a.cfg }

// Run extracts keywords from the note at path, weaves links, and writes the
// note back when at least one link was added and DryRun is off.
func (a *App) Run(ctx context.Context, path string) (Outcome, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("read note: %w", err)
	}
	text := string(body)

	log.Info().Str("note", path).Msg("running autolink")
	phrases, err := a.extract(ctx, text)
	if err != nil {
		if isCancellation(err) {
			log.Warn().Err(err).Str("note", path).Msg("keyword extraction cancelled; note left unchanged")
			return Outcome{Status: StatusCancelled}, nil
		}
		log.Error().Err(err).Str("note", path).Msg("LLM failed; check API key and model")
		return Outcome{}, fmt.Errorf("extract keywords: %w", err)
	}
	if len(phrases) == 0 {
		log.Warn().Str("note", path).Msg("no keywords found")
		return Outcome{Status: StatusNoKeywords}, nil
	}

	res := weave.Weave(text, phrases)
	if res.Linked == 0 {
		log.Info().Str("note", path).Int("phrases", len(phrases)).Msg("no new keywords linked")
		return Outcome{Status: StatusNoNewLinks, Phrases: phrases}, nil
	}

	out := Outcome{Status: StatusLinked, Linked: res.Linked, Phrases: phrases, Text: res.Text}
	if a.cfg.DryRun {
		log.Info().Str("note", path).Int("linked", res.Linked).Msg("dry run; note not written")
		return out, nil
	}
	if err := writeFileAtomic(path, []byte(res.Text)); err != nil {
		return Outcome{}, fmt.Errorf("write note: %w", err)
	}
	out.Written = true
	log.Info().Str("note", path).Int("linked", res.Linked).Msg("linked new keywords")
	return out, nil
}

func (a *App) extract(ctx context.Context, text string) ([]string, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	return a.extractor.Extract(ctx, text)
}

// Models lists model ids for the configured provider, falling back to
// models.Defaults when discovery fails. refresh drops the on-disk memo first.
func (a *App) Models(ctx context.Context, refresh bool) []string {
	c := &models.Catalog{
		Lister:  a.provider,
		APIKey:  a.cfg.LLMAPIKey,
		BaseURL: a.cfg.LLMBaseURL,
		Known:   a.cfg.CachedModels,
		Cache:   a.cache,
	}
	if refresh {
		c.Known = nil
		if a.cache != nil {
			_ = a.cache.Delete(ctx, models.MemoKey(a.cfg.LLMBaseURL, a.cfg.LLMAPIKey))
		}
	}
	return c.ListOrDefault(ctx)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
