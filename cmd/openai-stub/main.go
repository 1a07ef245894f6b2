// Command openai-stub serves a deterministic OpenAI-compatible API for local
// autolink runs: a fixed model list and keyword answers taken from
// KEYWORDS (newline or comma separated).
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type chatRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	model := envOr("MODEL_ID", "test-model")
	addr := envOr("ADDR", ":8081")
	keywords := envOr("KEYWORDS", "Alan Turing\nBletchley Park\nEnigma machine")
	list := "- " + strings.Join(splitKeywords(keywords), "\n- ")

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"id": model, "object": "model", "created": 0, "owned_by": "stub"},
			},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) != 1 {
			http.Error(w, "expected one message", http.StatusBadRequest)
			return
		}
		if !strings.Contains(req.Messages[0].Content, "Note content:") {
			http.Error(w, "unexpected prompt", http.StatusBadRequest)
			return
		}
		log.Info().Str("model", req.Model).Int("max_tokens", req.MaxTokens).Int("prompt_len", len(req.Messages[0].Content)).Msg("chat completion")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": list}},
			},
		})
	})

	log.Info().Str("addr", addr).Str("model", model).Msg("openai-stub listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitKeywords(s string) []string {
	f := func(r rune) bool { return r == '\n' || r == ',' }
	var out []string
	for _, p := range strings.FieldsFunc(s, f) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
