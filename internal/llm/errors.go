package llm

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ProviderError reports a failed provider call: transport failure, non-2xx
// status, or a payload without the expected content. It is recoverable and is
// never retried internally.
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ErrMissingContent is wrapped by ProviderError when the response has no
// choices[0].message.content.
var ErrMissingContent = errors.New("response has no message content")

// NewProviderError classifies err returned by the OpenAI client, picking up
// the HTTP status when the library reports one.
func NewProviderError(op string, err error) *ProviderError {
	pe := &ProviderError{Op: op, Err: err}
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		pe.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		pe.StatusCode = reqErr.HTTPStatusCode
	}
	return pe
}
