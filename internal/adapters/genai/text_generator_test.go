package genai_adapter

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"property-service/internal/adapters/metrics"
	"property-service/internal/core/domain"
	"property-service/pkg/retry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type generateCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu        sync.Mutex
	calls     []generateCall
	responses []string
	errs      []error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, generateCall{model: model, contents: contents, config: config})
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	text := ""
	if i < len(f.responses) {
		text = f.responses[i]
	}
	return textResponse(text), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

var fastPolicy = retry.Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond, RateLimitBackoff: time.Millisecond}

func newTestGenerator(models *fakeModels) (*GeminiTextGenerator, *metrics.GenerationMetrics) {
	m := metrics.NewGenerationMetrics(prometheus.NewRegistry())
	return newGeminiTextGenerator(models, Config{Model: "test-model", Retry: fastPolicy}, m), m
}

func TestGenerateAnswer_ForwardsHistory(t *testing.T) {
	models := &fakeModels{responses: []string{"  Yes, it has parking.  "}}
	gen, m := newTestGenerator(models)

	history := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "Prefer metric units."},
		{Role: domain.RoleUser, Content: "Tell me about the loft"},
		{Role: domain.RoleAssistant, Content: "It is a two-bedroom loft."},
	}
	answer, err := gen.GenerateAnswer(context.Background(), "Does it have parking?", history)
	require.NoError(t, err)
	assert.Equal(t, "Yes, it has parking.", answer)

	require.Len(t, models.calls, 1)
	call := models.calls[0]
	assert.Equal(t, "test-model", call.model)
	require.Len(t, call.contents, 3)
	assert.EqualValues(t, genai.RoleUser, call.contents[0].Role)
	assert.Equal(t, "Tell me about the loft", call.contents[0].Parts[0].Text)
	assert.EqualValues(t, genai.RoleModel, call.contents[1].Role)
	assert.Equal(t, "Does it have parking?", call.contents[2].Parts[0].Text)
	assert.Contains(t, call.config.SystemInstruction.Parts[0].Text, "Prefer metric units.")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(taskAnswer, "success")))
}

func TestGenerateDescription_PromptCarriesDetails(t *testing.T) {
	models := &fakeModels{responses: []string{"A bright loft."}}
	gen, _ := newTestGenerator(models)

	_, err := gen.GenerateDescription(context.Background(), domain.PropertyDescriptor{
		Name:      "Loft",
		Address:   "MG Road, Bengaluru",
		Price:     1500,
		Bedrooms:  2,
		Amenities: []string{"wifi", "gym"},
	})
	require.NoError(t, err)

	prompt := models.calls[0].contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Name: Loft")
	assert.Contains(t, prompt, "Address: MG Road, Bengaluru")
	assert.Contains(t, prompt, "Price: 1500")
	assert.Contains(t, prompt, "Amenities: wifi, gym")
	assert.NotContains(t, prompt, "Area:")
}

func TestGenerateComparison_NumbersProperties(t *testing.T) {
	models := &fakeModels{responses: []string{"The cottage wins."}}
	gen, _ := newTestGenerator(models)

	out, err := gen.GenerateComparison(context.Background(), []domain.PropertyDescriptor{{Name: "Loft"}, {Name: "Cottage"}})
	require.NoError(t, err)
	assert.Equal(t, "The cottage wins.", out)

	prompt := models.calls[0].contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Property 1\nName: Loft")
	assert.Contains(t, prompt, "Property 2\nName: Cottage")
}

func TestGenerate_RetriesTransientErrors(t *testing.T) {
	models := &fakeModels{
		errs:      []error{genai.APIError{Code: http.StatusServiceUnavailable}, genai.APIError{Code: http.StatusTooManyRequests}},
		responses: []string{"", "", "finally"},
	}
	gen, _ := newTestGenerator(models)

	out, err := gen.GenerateDescription(context.Background(), domain.PropertyDescriptor{Name: "Loft"})
	require.NoError(t, err)
	assert.Equal(t, "finally", out)
	assert.Len(t, models.calls, 3)
}

func TestGenerate_StopsOnClientError(t *testing.T) {
	models := &fakeModels{errs: []error{genai.APIError{Code: http.StatusBadRequest, Message: "bad prompt"}}}
	gen, m := newTestGenerator(models)

	_, err := gen.GenerateDescription(context.Background(), domain.PropertyDescriptor{Name: "Loft"})
	require.Error(t, err)
	var permanent *retry.PermanentError
	assert.True(t, errors.As(err, &permanent))
	assert.Len(t, models.calls, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(taskDescription, "error")))
}

func TestGenerate_EmptyOutput(t *testing.T) {
	models := &fakeModels{responses: []string{"", " ", ""}}
	gen, _ := newTestGenerator(models)

	_, err := gen.GenerateAnswer(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyGeneration)
	assert.Len(t, models.calls, 3)
}

func TestNewGeminiTextGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiTextGenerator(context.Background(), Config{}, nil)
	assert.Error(t, err)
}
