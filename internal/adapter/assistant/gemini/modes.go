package gemini

import (
	"github.com/mmcdole/streamverse/internal/domain"
	"google.golang.org/genai"
)

// Models names the backend model for each chat mode
type Models struct {
	Lite           string
	Thinking       string
	Search         string
	ThinkingBudget int32
}

// DefaultModels returns the stock mode mapping
func DefaultModels() Models {
	return Models{
		Lite:           "gemini-flash-lite-latest",
		Thinking:       "gemini-2.5-pro",
		Search:         "gemini-2.5-flash",
		ThinkingBudget: 32768,
	}
}

// modeConfig is one row of the mode lookup table
type modeConfig struct {
	Model          string
	ThinkingBudget int32 // 0 = extended reasoning off
	WebSearch      bool
}

func (m Models) withDefaults() Models {
	d := DefaultModels()
	if m.Lite == "" {
		m.Lite = d.Lite
	}
	if m.Thinking == "" {
		m.Thinking = d.Thinking
	}
	if m.Search == "" {
		m.Search = d.Search
	}
	if m.ThinkingBudget <= 0 {
		m.ThinkingBudget = d.ThinkingBudget
	}
	return m
}

func (m Models) table() map[domain.ChatMode]modeConfig {
	return map[domain.ChatMode]modeConfig{
		domain.ModeLite:     {Model: m.Lite},
		domain.ModeThinking: {Model: m.Thinking, ThinkingBudget: m.ThinkingBudget},
		domain.ModeSearch:   {Model: m.Search, WebSearch: true},
	}
}

// generateConfig builds the request config for a mode row
func (mc modeConfig) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	if mc.ThinkingBudget > 0 {
		budget := mc.ThinkingBudget
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	if mc.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

const systemInstruction = "You are a friendly and helpful assistant for StreamVerse, an entertainment streaming platform. " +
	"Answer questions about movies, web series, anime, and shows. Keep your answers concise and engaging."
