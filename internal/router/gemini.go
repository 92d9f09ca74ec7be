package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answered with no text.
var ErrEmptyResponse = errors.New("gemini returned an empty response")

// GeminiDriver calls the Gemini API through the genai SDK. It implements
// contracts.Provider and contracts.ModelLister.
type GeminiDriver struct {
	client      *genai.Client
	temperature float32
}

// NewGeminiDriver creates a driver for the Gemini Developer API.
func NewGeminiDriver(ctx context.Context, apiKey string, temperature float32) (*GeminiDriver, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiDriver{client: client, temperature: temperature}, nil
}

// Kind returns the provider identifier.
func (d *GeminiDriver) Kind() string { return "gemini" }

// Generate asks model for a JSON build. SDK errors are wrapped, not
// translated; ClassifyProviderError unwraps them.
func (d *GeminiDriver) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := d.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(d.temperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate %s: %w", model, err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// ListModels returns the bare names of models that support generateContent.
func (d *GeminiDriver) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	for m, err := range d.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list gemini models: %w", err)
		}
		if m == nil || !supportsGenerate(m.SupportedActions) {
			continue
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

func supportsGenerate(actions []string) bool {
	// Older listings omit supported actions entirely.
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if a == "generateContent" {
			return true
		}
	}
	return false
}
