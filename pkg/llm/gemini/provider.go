package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cokeastorga/astorgayabogados/pkg/llm"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var (
	_ llm.LLMProvider      = &GeminiProvider{}
	_ llm.GroundedSearcher = &GeminiProvider{}
)

func NewGeminiProvider(baseURL, apiKey, modelName string) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiProvider{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64     `json:"temperature"`
	MaxOutputTokens  int         `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string      `json:"responseMimeType,omitempty"`
	ResponseSchema   *llm.Schema `json:"responseSchema,omitempty"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiRequest struct {
	Contents          []*geminiContent        `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
}

type geminiGroundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web,omitempty"`
}

type geminiCandidate struct {
	Content           *geminiContent `json:"content"`
	GroundingMetadata *struct {
		GroundingChunks []geminiGroundingChunk `json:"groundingChunks"`
	} `json:"groundingMetadata,omitempty"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Name() string {
	return "gemini"
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	candidate, err := g.generate(ctx, history, llm.ApplyOptions(opts...))
	if err != nil {
		return "", err
	}
	return candidateText(candidate), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// Search answers prompt with the google_search tool enabled and returns the cited pages.
func (g *GeminiProvider) Search(ctx context.Context, prompt string, opts ...llm.Option) (string, []llm.Source, error) {
	options := llm.ApplyOptions(opts...)
	options.WebSearch = true

	candidate, err := g.generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options)
	if err != nil {
		return "", nil, err
	}

	sources := make([]llm.Source, 0)
	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			sources = append(sources, llm.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return candidateText(candidate), sources, nil
}

func (g *GeminiProvider) generate(ctx context.Context, history []llm.Message, options *llm.Options) (*geminiCandidate, error) {
	payload := geminiRequest{
		Contents: make([]*geminiContent, 0, len(history)),
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}

	systemParts := make([]*geminiPart, 0)
	if options.SystemInstruction != "" {
		systemParts = append(systemParts, &geminiPart{Text: options.SystemInstruction})
	}

	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			systemParts = append(systemParts, &geminiPart{Text: msg.Content})
			continue
		case llm.RoleAssistant, llm.RoleModel:
			payload.Contents = append(payload.Contents, &geminiContent{
				Parts: []*geminiPart{{Text: msg.Content}},
				Role:  llm.RoleModel,
			})
		default:
			payload.Contents = append(payload.Contents, &geminiContent{
				Parts: []*geminiPart{{Text: msg.Content}},
				Role:  llm.RoleUser,
			})
		}
	}

	if len(systemParts) > 0 {
		payload.SystemInstruction = &geminiContent{Parts: systemParts}
	}
	if options.JSONSchema != nil {
		payload.GenerationConfig.ResponseMimeType = "application/json"
		payload.GenerationConfig.ResponseSchema = options.JSONSchema
	}
	if options.WebSearch {
		payload.Tools = []geminiTool{{GoogleSearch: &struct{}{}}}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(bodyBytes, &geminiRes); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || candidateText(geminiRes.Candidates[0]) == "" {
		return nil, llm.ErrEmptyResponse
	}

	return geminiRes.Candidates[0], nil
}

func candidateText(c *geminiCandidate) string {
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
