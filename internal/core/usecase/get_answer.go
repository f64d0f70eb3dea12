package usecase

import (
	"context"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"strings"
)

type GetAnswerUseCase struct {
	generator port.TextGeneratorPort
}

func NewGetAnswerUseCase(generator port.TextGeneratorPort) *GetAnswerUseCase {
	return &GetAnswerUseCase{generator: generator}
}

// Execute передает вопрос и контекст генератору как есть. Отсутствующий контекст - пустой срез.
func (uc *GetAnswerUseCase) Execute(ctx context.Context, query string, history []domain.ChatMessage) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "GetAnswer",
		"history_length": len(history),
	})

	ucLogger.Info("Use case started", nil)

	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if uc.generator == nil {
		return "", domain.ErrGeneratorDisabled
	}
	if history == nil {
		history = []domain.ChatMessage{}
	}

	answer, err := uc.generator.GenerateAnswer(ctx, query, history)
	if err != nil {
		ucLogger.Error("Text generator returned an error", err, nil)
		return "", err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"answer_length": len(answer)})
	return answer, nil
}
