package usecase

import (
	"context"
	"errors"
	"testing"

	"property-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnswer_ForwardsContextVerbatim(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "I want 3 bedrooms"},
		{Role: domain.RoleAssistant, Content: "Noted"},
	}
	var gotQuery string
	var gotHistory []domain.ChatMessage
	gen := &fakeGenerator{answerFn: func(_ context.Context, q string, h []domain.ChatMessage) (string, error) {
		gotQuery, gotHistory = q, h
		return "Try the villa", nil
	}}

	answer, err := NewGetAnswerUseCase(gen).Execute(context.Background(), "What fits me?", history)
	require.NoError(t, err)
	assert.Equal(t, "Try the villa", answer)
	assert.Equal(t, "What fits me?", gotQuery)
	assert.Equal(t, history, gotHistory)
}

func TestGetAnswer_MissingContextBecomesEmptySlice(t *testing.T) {
	var gotHistory []domain.ChatMessage
	gen := &fakeGenerator{answerFn: func(_ context.Context, _ string, h []domain.ChatMessage) (string, error) {
		gotHistory = h
		return "ok", nil
	}}

	_, err := NewGetAnswerUseCase(gen).Execute(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.NotNil(t, gotHistory)
	assert.Empty(t, gotHistory)
}

func TestGetAnswer_Errors(t *testing.T) {
	_, err := NewGetAnswerUseCase(&fakeGenerator{}).Execute(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewGetAnswerUseCase(nil).Execute(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, domain.ErrGeneratorDisabled)

	boom := errors.New("quota exceeded")
	gen := &fakeGenerator{answerFn: func(context.Context, string, []domain.ChatMessage) (string, error) { return "", boom }}
	_, err = NewGetAnswerUseCase(gen).Execute(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, boom)
}

func TestGetDescription(t *testing.T) {
	gen := &fakeGenerator{descriptionFn: func(_ context.Context, p domain.PropertyDescriptor) (string, error) {
		return "A lovely " + p.Name, nil
	}}

	text, err := NewGetDescriptionUseCase(gen).Execute(context.Background(), domain.PropertyDescriptor{Name: "loft"})
	require.NoError(t, err)
	assert.Equal(t, "A lovely loft", text)

	_, err = NewGetDescriptionUseCase(gen).Execute(context.Background(), domain.PropertyDescriptor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetComparison(t *testing.T) {
	var got int
	gen := &fakeGenerator{comparisonFn: func(_ context.Context, ps []domain.PropertyDescriptor) (string, error) {
		got = len(ps)
		return "A beats B", nil
	}}
	uc := NewGetComparisonUseCase(gen)

	text, err := uc.Execute(context.Background(), []domain.PropertyDescriptor{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)
	assert.Equal(t, "A beats B", text)
	assert.Equal(t, 2, got)

	_, err = uc.Execute(context.Background(), []domain.PropertyDescriptor{{Name: "A"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), make([]domain.PropertyDescriptor, MaxComparedProperties+1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
