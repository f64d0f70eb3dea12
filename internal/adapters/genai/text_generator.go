package genai_adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"property-service/internal/adapters/metrics"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"property-service/pkg/retry"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	taskAnswer      = "answer"
	taskDescription = "description"
	taskComparison  = "comparison"
)

// contentGenerator - часть genai.Models, которой пользуется адаптер
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Retry   retry.Policy
}

// GeminiTextGenerator реализует TextGeneratorPort поверх Google Gemini.
type GeminiTextGenerator struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	policy  retry.Policy
	metrics *metrics.GenerationMetrics
}

func NewGeminiTextGenerator(ctx context.Context, cfg Config, m *metrics.GenerationMetrics) (*GeminiTextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGeminiTextGenerator(client.Models, cfg, m), nil
}

func newGeminiTextGenerator(models contentGenerator, cfg Config, m *metrics.GenerationMetrics) *GeminiTextGenerator {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   500 * time.Millisecond,
			MaxBackoff:       4 * time.Second,
			RateLimitBackoff: 5 * time.Second,
			Jitter:           0.2,
		}
	}
	return &GeminiTextGenerator{
		models:  models,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		policy:  cfg.Retry,
		metrics: m,
	}
}

func (g *GeminiTextGenerator) GenerateAnswer(ctx context.Context, query string, history []domain.ChatMessage) (string, error) {
	instruction := answerInstruction
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case domain.RoleSystem:
			instruction += "\n" + msg.Content
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	contents = append(contents, genai.NewContentFromText(query, genai.RoleUser))

	return g.generate(ctx, taskAnswer, instruction, contents)
}

func (g *GeminiTextGenerator) GenerateDescription(ctx context.Context, property domain.PropertyDescriptor) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(descriptionPrompt(property), genai.RoleUser)}
	return g.generate(ctx, taskDescription, descriptionInstruction, contents)
}

func (g *GeminiTextGenerator) GenerateComparison(ctx context.Context, properties []domain.PropertyDescriptor) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(comparisonPrompt(properties), genai.RoleUser)}
	return g.generate(ctx, taskComparison, comparisonInstruction, contents)
}

func (g *GeminiTextGenerator) generate(ctx context.Context, task, instruction string, contents []*genai.Content) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	genLogger := logger.WithFields(port.Fields{
		"component": "GeminiTextGenerator",
		"task":      task,
		"model":     g.model,
	})

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}

	policy := g.policy
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		genLogger.Warn("Generation attempt failed, retrying", port.Fields{
			"attempt": attempt,
			"backoff": backoff.String(),
			"error":   err.Error(),
		})
	}

	started := time.Now()
	text, err := retry.Do(ctx, policy, classifyGenAIError, func(ctx context.Context) (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.models.GenerateContent(callCtx, g.model, contents, config)
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return "", domain.ErrEmptyGeneration
		}
		return text, nil
	})
	g.metrics.Observe(task, started, err)
	if err != nil {
		genLogger.Error("Text generation failed", err, nil)
		return "", fmt.Errorf("%s generation failed: %w", task, err)
	}

	genLogger.Debug("Text generated", port.Fields{"length": len(text), "duration": time.Since(started).String()})
	return text, nil
}

// classifyGenAIError: 429 - долгий backoff, 5xx и таймауты - повтор, прочие 4xx - стоп
func classifyGenAIError(err error) retry.Action {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return retry.After
		case apiErr.Code >= 500:
			return retry.Retry
		default:
			return retry.Stop
		}
	}
	if errors.Is(err, context.Canceled) {
		return retry.Stop
	}
	return retry.Retry
}
