// Package llm is the oracle transport: one Provider per vendor SDK plus the
// timeout, retry and event-logging decorators every call goes through.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider answers a single prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is one oracle prompt. Every call codemaster makes is single-turn,
// so Messages normally holds exactly one user message.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the vendor for JSON output and makes the
	// provider validate the answer against it before returning.
	Schema *Schema

	MaxTokens int

	// Temperature is left to the vendor default when zero.
	Temperature float64
}

// SingleTurn builds a request with one user message.
func SingleTurn(system, user string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
	}
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name and
// as the cache key for the compiled validator, so it must be unique.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a validated oracle answer.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// StopReason is the vendor finish reason normalized across SDKs.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish validates raw against the request schema and assembles the
// Response. An answer cut off at MaxTokens that fails validation is
// reported as truncated rather than invalid.
func finish(req Request, raw json.RawMessage, model string, usage Usage, stop StopReason) (*Response, error) {
	content := raw
	if req.Schema != nil {
		var err error
		content, err = structuredContent(req.Schema, raw)
		if err != nil {
			var invalid *ErrInvalidResponse
			if stop == StopMaxTokens && errors.As(err, &invalid) {
				return nil, &ErrMaxTokensExceeded{Content: raw}
			}
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
