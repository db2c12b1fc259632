package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.0-flash"

	generationTemperature = 0.7
	maxOutputTokens       = 800
)

// Generator is the opaque request/response surface of the chat assistant: a
// prompt goes in, generated text or an error comes out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini generates replies using Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey string, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("assistant: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: create client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (gemini *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := gemini.client.Models.GenerateContent(ctx,
		gemini.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(generationTemperature)),
			MaxOutputTokens: maxOutputTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("assistant: generate: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("assistant: empty response")
	}
	return text, nil
}
