// Package gemini implements domain.Assistant on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/streamverse/internal/domain"
	"google.golang.org/genai"
)

// generator is the slice of *genai.Models the client needs
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements domain.Assistant. One genai client is kept per API key.
type Client struct {
	modes  map[domain.ChatMode]modeConfig
	logger *slog.Logger

	newGenerator func(ctx context.Context, apiKey string) (generator, error)

	mu         sync.Mutex
	generators map[string]generator
}

// NewClient creates a Gemini assistant client
func NewClient(models Models, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		modes:        models.withDefaults().table(),
		logger:       logger,
		newGenerator: newGenAIGenerator,
		generators:   make(map[string]generator),
	}
}

func newGenAIGenerator(ctx context.Context, apiKey string) (generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

func (c *Client) generatorFor(ctx context.Context, apiKey string) (generator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.generators[apiKey]; ok {
		return g, nil
	}
	g, err := c.newGenerator(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	c.generators[apiKey] = g
	return g, nil
}

// modeFor returns the table row for mode, falling back to lite
func (c *Client) modeFor(mode domain.ChatMode) modeConfig {
	if mc, ok := c.modes[mode]; ok {
		return mc
	}
	return c.modes[domain.ModeLite]
}

// Send asks the assistant for a reply. The first history entry is the
// session greeting and is never sent upstream.
func (c *Client) Send(ctx context.Context, credential string, history []domain.ChatMessage, text string, mode domain.ChatMode) (domain.AssistantReply, error) {
	if strings.TrimSpace(credential) == "" {
		return domain.AssistantReply{}, domain.ErrCredentialMissing
	}

	gen, err := c.generatorFor(ctx, credential)
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("%w: creating client: %w", domain.ErrAssistantRequest, err)
	}

	mc := c.modeFor(mode)
	contents := buildContents(history, text)

	c.logger.Debug("assistant request", "mode", mode, "model", mc.Model, "turns", len(contents))

	res, err := gen.GenerateContent(ctx, mc.Model, contents, mc.generateConfig())
	if err != nil {
		c.logger.Error("assistant request failed", "mode", mode, "model", mc.Model, "error", err)
		return domain.AssistantReply{}, fmt.Errorf("%w: %w", domain.ErrAssistantRequest, err)
	}

	reply := domain.AssistantReply{Text: res.Text()}
	if mode == domain.ModeSearch {
		reply.Sources = extractSources(res)
	}
	return reply, nil
}

// buildContents turns the transcript (minus the greeting) and the new
// message into genai contents
func buildContents(history []domain.ChatMessage, text string) []*genai.Content {
	var prior []domain.ChatMessage
	if len(history) > 1 {
		prior = history[1:]
	}

	contents := make([]*genai.Content, 0, len(prior)+1)
	for _, m := range prior {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return append(contents, genai.NewContentFromText(text, genai.RoleUser))
}

// extractSources reads web citations from the first candidate's grounding
// metadata, skipping chunks without both a URI and a title
func extractSources(res *genai.GenerateContentResponse) []domain.Source {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0] == nil {
		return nil
	}
	gm := res.Candidates[0].GroundingMetadata
	if gm == nil || len(gm.GroundingChunks) == 0 {
		return nil
	}

	sources := make([]domain.Source, 0, len(gm.GroundingChunks))
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		sources = append(sources, domain.Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}
