package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	module = "ProviderGateway"

	// ProviderNone marks a reply produced by the gateway itself.
	ProviderNone = "none"
)

type Config struct {
	// AttemptTimeout bounds each provider call so the chain finishes within the client budget.
	AttemptTimeout time.Duration
	Temperature    float64
	// DegradedReply is returned when every provider failed a chat reply.
	DegradedReply string
	// ManualReview is returned when every provider failed a structured extraction.
	ManualReview json.RawMessage
}

type Reply struct {
	Text     string
	Provider string
	Degraded bool
}

type Extraction struct {
	Data     json.RawMessage
	Provider string
	Degraded bool
}

// Gateway tries each configured provider in order and never returns an error.
type Gateway struct {
	providers []llm.LLMProvider
	cfg       Config
	logger    logger.ILogger
	tracer    trace.Tracer
}

// New drops nil providers, so an unconfigured secondary simply isn't tried.
func New(cfg Config, log logger.ILogger, providers ...llm.LLMProvider) *Gateway {
	chain := make([]llm.LLMProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			chain = append(chain, p)
		}
	}
	return &Gateway{
		providers: chain,
		cfg:       cfg,
		logger:    log,
		tracer:    otel.Tracer("llm-gateway"),
	}
}

func (g *Gateway) Providers() []string {
	names := make([]string, len(g.providers))
	for i, p := range g.providers {
		names[i] = p.Name()
	}
	return names
}

func (g *Gateway) Reply(ctx context.Context, systemPrompt string, history []llm.Message, message string) Reply {
	ctx, span := g.tracer.Start(ctx, "gateway.Reply")
	defer span.End()

	conversation := make([]llm.Message, 0, len(history)+1)
	conversation = append(conversation, history...)
	conversation = append(conversation, llm.Message{Role: llm.RoleUser, Content: message})

	for _, p := range g.providers {
		text, err := g.attempt(ctx, p, operationReply, func(attemptCtx context.Context) (string, error) {
			return p.Chat(attemptCtx, conversation,
				llm.WithSystemInstruction(systemPrompt),
				llm.WithTemperature(g.cfg.Temperature),
			)
		})
		if err != nil {
			continue
		}
		span.SetAttributes(attribute.String("provider", p.Name()))
		return Reply{Text: text, Provider: p.Name()}
	}

	providerRequests.WithLabelValues(ProviderNone, operationReply, outcomeDegraded).Inc()
	span.SetStatus(codes.Error, "all providers failed")
	g.logger.Error(module, "All providers failed, returning degraded reply", map[string]interface{}{
		"providers": g.Providers(),
	})
	return Reply{Text: g.cfg.DegradedReply, Provider: ProviderNone, Degraded: true}
}

// StructuredExtract asks for JSON matching schema. Output that fails to parse or
// validate counts as a provider failure and moves on to the next provider.
func (g *Gateway) StructuredExtract(ctx context.Context, schema *llm.Schema, prompt string) Extraction {
	ctx, span := g.tracer.Start(ctx, "gateway.StructuredExtract")
	defer span.End()

	for _, p := range g.providers {
		var data []byte
		_, err := g.attempt(ctx, p, operationExtract, func(attemptCtx context.Context) (string, error) {
			text, err := p.Generate(attemptCtx, prompt,
				llm.WithJSONSchema(schema),
				llm.WithTemperature(0),
			)
			if err != nil {
				return "", err
			}
			data = llm.CleanJSON(text)
			if err := schema.Validate(data); err != nil {
				return "", fmt.Errorf("invalid structured output: %w", err)
			}
			return text, nil
		})
		if err != nil {
			continue
		}
		span.SetAttributes(attribute.String("provider", p.Name()))
		return Extraction{Data: json.RawMessage(data), Provider: p.Name()}
	}

	providerRequests.WithLabelValues(ProviderNone, operationExtract, outcomeDegraded).Inc()
	span.SetStatus(codes.Error, "all providers failed")
	g.logger.Error(module, "All providers failed, returning manual review record", map[string]interface{}{
		"providers": g.Providers(),
	})
	return Extraction{Data: g.cfg.ManualReview, Provider: ProviderNone, Degraded: true}
}

func (g *Gateway) attempt(ctx context.Context, p llm.LLMProvider, operation string, call func(context.Context) (string, error)) (string, error) {
	attemptCtx := ctx
	if g.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, g.cfg.AttemptTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := call(attemptCtx)
	providerLatency.WithLabelValues(p.Name(), operation).Observe(time.Since(start).Seconds())

	if err != nil {
		providerRequests.WithLabelValues(p.Name(), operation, outcomeFailure).Inc()
		g.logger.Warn(module, "Provider attempt failed", map[string]interface{}{
			"provider":  p.Name(),
			"operation": operation,
			"error":     err.Error(),
		})
		return "", err
	}

	providerRequests.WithLabelValues(p.Name(), operation, outcomeSuccess).Inc()
	g.logger.Debug(module, "Provider attempt succeeded", map[string]interface{}{
		"provider":  p.Name(),
		"operation": operation,
	})
	return text, nil
}
