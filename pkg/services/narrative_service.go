package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/llm"
	"github.com/latefee/latefee/pkg/models"
	"github.com/latefee/latefee/pkg/prompts"
)

// NarrativeService produces free-text commentary for a movie.
type NarrativeService interface {
	// EyeOfTheDuck describes the movie's most essential scene. It never
	// fails: on any generation error it returns a fixed apology string
	// carrying the error detail.
	EyeOfTheDuck(ctx context.Context, movie *models.Movie) string
}

type narrativeService struct {
	client llm.Client
	logger *zap.Logger
}

// NewNarrativeService creates the narrative service.
func NewNarrativeService(client llm.Client, logger *zap.Logger) NarrativeService {
	return &narrativeService{
		client: client,
		logger: logger.Named("narrative"),
	}
}

func (s *narrativeService) EyeOfTheDuck(ctx context.Context, movie *models.Movie) string {
	prompt := prompts.BuildEyeOfTheDuckPrompt(movie)

	explanation, err := s.client.GenerateResponse(ctx, prompt, prompts.FilmCriticSystemMessage)
	if err != nil {
		s.logger.Warn("Narrative generation failed",
			zap.String("movie", movie.Name),
			zap.Error(err))
		return fmt.Sprintf(
			"Sorry, there was an error generating the 'Eye of the Duck' explanation: %v", err)
	}

	return explanation
}
