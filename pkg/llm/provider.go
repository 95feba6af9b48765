package llm

import (
	"context"
	"errors"
)

const (
	RoleUser      = "user"
	RoleModel     = "model"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

var ErrEmptyResponse = errors.New("provider returned no content")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "model", "assistant", "system"
	Content string
}

// Source is a web citation returned by grounded generation.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature       float64
	MaxTokens         int
	Model             string // Override default model
	SystemInstruction string
	JSONSchema        *Schema // non-nil switches the provider into JSON mode
	WebSearch         bool
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithSystemInstruction(prompt string) Option {
	return func(o *Options) {
		o.SystemInstruction = prompt
	}
}

func WithJSONSchema(schema *Schema) Option {
	return func(o *Options) {
		o.JSONSchema = schema
	}
}

func WithWebSearch() Option {
	return func(o *Options) {
		o.WebSearch = true
	}
}

// ApplyOptions resolves opts on top of the defaults every provider shares.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// GroundedSearcher is implemented by providers able to answer with web citations.
type GroundedSearcher interface {
	Search(ctx context.Context, prompt string, options ...Option) (string, []Source, error)
}
