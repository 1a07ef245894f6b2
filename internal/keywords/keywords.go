// Package keywords asks a chat model for salient phrases in a note.
package keywords

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/autolink/internal/budget"
	"github.com/hyperifyio/autolink/internal/llm"
)

// DefaultMaxOutputTokens caps the completion when none is configured.
const DefaultMaxOutputTokens = 100

const promptTemplate = `List 5–10 unique, meaningful 2–3 word phrases from this Obsidian note. Include people, places, events, key ideas, acronyms, or jargon. Exclude headings, structure, or generic terms. Return a plain text list only.

Note content:
---
`

// Extractor produces candidate link phrases from document text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// LLMExtractor calls an OpenAI-compatible chat endpoint once per Extract.
type LLMExtractor struct {
	Client          llm.Client
	Model           string
	MaxOutputTokens int
	Verbose         bool
}

// Extract sends text to the model and returns the phrases in response order.
// Provider failures are returned as *llm.ProviderError. A cancelled or
// expired ctx is returned as the context error so callers can tell it apart.
func (e *LLMExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if e.Client == nil || strings.TrimSpace(e.Model) == "" {
		return nil, errors.New("keyword extractor not configured")
	}
	maxTokens := e.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}
	prompt := BuildPrompt(text)
	if est := budget.Check(e.Model, prompt, maxTokens); !est.Fits {
		// The provider decides; a long note may still be accepted.
		log.Warn().Str("model", e.Model).Int("prompt_tokens", est.PromptTokens).Int("context", est.ModelContext).Msg("note may exceed model context window")
	}
	if e.Verbose {
		// Never log the note itself.
		log.Debug().Str("stage", "keywords").Str("model", e.Model).Int("prompt_len", len(prompt)).Int("max_tokens", maxTokens).Msg("keyword prompt")
	}
	resp, err := e.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, llm.NewProviderError("keywords", err)
	}
	if len(resp.Choices) == 0 {
		return nil, &llm.ProviderError{Op: "keywords", Err: llm.ErrMissingContent}
	}
	phrases := ParseList(resp.Choices[0].Message.Content)
	log.Debug().Int("phrases", len(phrases)).Msg("keywords extracted")
	return phrases, nil
}

// BuildPrompt embeds the note in the fixed instruction template.
func BuildPrompt(text string) string {
	return promptTemplate + text + "\n"
}

// ParseList splits a plain-text list into phrases: each line is trimmed, a
// single leading "- " bullet is removed, and empty lines are dropped. Order
// is preserved and duplicates are kept.
func ParseList(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		s := strings.TrimPrefix(strings.TrimSpace(line), "- ")
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
