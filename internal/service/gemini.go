package service

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Recommender — внешняя модель, которая по текстовому описанию заявки и
// списка специалистов возвращает ответ в свободной форме.
type Recommender interface {
	Recommend(ctx context.Context, prompt string) (string, error)
}

type GeminiRecommender struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiRecommender(ctx context.Context, apiKey, modelName string) (*GeminiRecommender, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента Gemini: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	return &GeminiRecommender{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiRecommender) Recommend(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("ошибка генерации ответа Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("пустой ответ Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (g *GeminiRecommender) Close() error {
	return g.client.Close()
}
