// Package models discovers which chat models the configured provider offers.
package models

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hyperifyio/autolink/internal/cache"
	"github.com/hyperifyio/autolink/internal/llm"
)

// Defaults is offered when no credential is configured or discovery fails.
var Defaults = []string{"gpt-3.5-turbo", "gpt-4"}

// Catalog lists model identifiers, preferring already-known values over a
// network call.
type Catalog struct {
	Lister llm.ModelLister
	APIKey string
	// BaseURL scopes the on-disk memo so different endpoints do not collide.
	BaseURL string
	// Known models, typically persisted settings, short-circuit discovery.
	Known []string
	Cache *cache.LLMCache
}

// List returns sorted model ids. Known models win, then the on-disk memo,
// then one call to the provider. Without an API key the defaults are
// returned.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	if len(c.Known) > 0 {
		log.Debug().Int("count", len(c.Known)).Msg("using known models")
		return append([]string(nil), c.Known...), nil
	}
	if c.APIKey == "" {
		log.Warn().Msg("no API key configured, using default models")
		return append([]string(nil), Defaults...), nil
	}
	key := MemoKey(c.BaseURL, c.APIKey)
	if c.Cache != nil {
		if raw, ok, _ := c.Cache.Get(ctx, key); ok {
			var ids []string
			if err := json.Unmarshal(raw, &ids); err == nil && len(ids) > 0 {
				return ids, nil
			}
		}
	}
	if c.Lister == nil {
		return nil, errors.New("model lister not configured")
	}
	resp, err := c.Lister.ListModels(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, llm.NewProviderError("models", err)
	}
	ids := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		if m.Object != "model" {
			log.Warn().Str("id", m.ID).Str("object", m.Object).Msg("skipping non-model item")
			continue
		}
		ids = append(ids, m.ID)
	}
	Sort(ids)
	if c.Cache != nil && len(ids) > 0 {
		if b, err := json.Marshal(ids); err == nil {
			_ = c.Cache.Save(ctx, key, b)
		}
	}
	return ids, nil
}

// MemoKey is the cache key under which List memoizes ids for one endpoint
// and credential.
func MemoKey(baseURL, apiKey string) string {
	return cache.KeyFrom("models\n"+baseURL, apiKey)
}

// ListOrDefault never fails: discovery errors and empty results fall back to
// Defaults.
func (c *Catalog) ListOrDefault(ctx context.Context) []string {
	ids, err := c.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch models")
		return append([]string(nil), Defaults...)
	}
	if len(ids) == 0 {
		log.Warn().Msg("no models found, using defaults")
		return append([]string(nil), Defaults...)
	}
	return ids
}

// Sort orders ids with root-locale collation so mixed case and digits sort
// the way a user-facing list would.
func Sort(ids []string) {
	collate.New(language.Und).SortStrings(ids)
}
