package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"study_webapp/internal/ai"
	"study_webapp/internal/domain"
	"study_webapp/internal/logger"
	"study_webapp/internal/repository"

	"github.com/google/uuid"
)

// Coins and xp awarded once per generation session, regardless of how many
// content types it produced.
const (
	sessionCoinReward = 10
	sessionXPReward   = 50
)

var (
	ErrNoText          = errors.New("no text to process")
	ErrNoOptions       = errors.New("no content types selected")
	ErrUnknownContent  = errors.New("unknown content type")
	ErrGenerationEmpty = errors.New("generation produced no usable content")
)

// Generator is the text-generation collaborator. Implemented by ai.Client.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StudyService turns user text into study content: for each requested type
// it asks the generator for a strict-JSON payload, validates it against the
// domain shape and persists it under a shared session id.
type StudyService struct {
	gen      Generator
	contents *repository.ContentRepository
	stats    *repository.StatsRepository
}

func NewStudyService(gen Generator, contents *repository.ContentRepository, stats *repository.StatsRepository) *StudyService {
	return &StudyService{gen: gen, contents: contents, stats: stats}
}

// GenerateResult maps each requested type to its stored content row.
type GenerateResult struct {
	SessionID uuid.UUID                              `json:"sessionId"`
	Results   map[domain.ContentType]*domain.StudyContent `json:"results"`
}

// Generate produces and stores content for every requested type. A type
// whose generation fails is skipped with a log line; the call only fails
// when nothing could be generated at all. A successful session advances the
// user's streak and awards coins and xp.
func (s *StudyService) Generate(ctx context.Context, userID uuid.UUID, types []domain.ContentType, text string) (*GenerateResult, error) {
	if text == "" {
		return nil, ErrNoText
	}
	if len(types) == 0 {
		return nil, ErrNoOptions
	}
	for _, t := range types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownContent, t)
		}
	}

	sessionID := uuid.New()
	out := &GenerateResult{
		SessionID: sessionID,
		Results:   make(map[domain.ContentType]*domain.StudyContent, len(types)),
	}

	for _, t := range types {
		content, err := s.generateOne(ctx, userID, sessionID, t, text)
		if err != nil {
			logger.Error("content generation failed", "type", t, "user_id", userID, "error", err)
			continue
		}
		out.Results[t] = content
	}

	if len(out.Results) == 0 {
		return nil, ErrGenerationEmpty
	}

	// Reward the session. Failures here must not undo the generated
	// content, so they are only logged.
	if err := s.stats.TouchStreak(ctx, userID); err != nil {
		logger.Error("streak update failed", "user_id", userID, "error", err)
	}
	if _, err := s.stats.AddCoins(ctx, userID, sessionCoinReward); err != nil {
		logger.Error("coin reward failed", "user_id", userID, "error", err)
	}
	if err := s.stats.AddXP(ctx, userID, sessionXPReward); err != nil {
		logger.Error("xp reward failed", "user_id", userID, "error", err)
	}

	return out, nil
}

func (s *StudyService) generateOne(ctx context.Context, userID, sessionID uuid.UUID, t domain.ContentType, text string) (*domain.StudyContent, error) {
	prompt, err := ai.BuildPrompt(t, text)
	if err != nil {
		return nil, err
	}

	completion, err := s.gen.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload := []byte(ai.ExtractJSON(completion))
	title, err := validatePayload(t, payload)
	if err != nil {
		return nil, err
	}

	content := &domain.StudyContent{
		UserID:    userID,
		SessionID: sessionID,
		Type:      t,
		Title:     title,
		Payload:   payload,
	}
	if err := s.contents.Save(ctx, content, text); err != nil {
		return nil, err
	}
	return content, nil
}

// validatePayload decodes the payload against its expected shape and
// returns the title, rejecting structurally empty generations.
func validatePayload(t domain.ContentType, payload []byte) (string, error) {
	switch t {
	case domain.ContentFlashcard:
		var p domain.FlashcardSet
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", err
		}
		if len(p.Cards) == 0 {
			return "", ErrGenerationEmpty
		}
		return p.Title, nil
	case domain.ContentDiagram:
		var p domain.DiagramPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", err
		}
		if p.RootNode.Label == "" {
			return "", ErrGenerationEmpty
		}
		return p.Title, nil
	case domain.ContentSummary:
		var p domain.SummaryPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", err
		}
		if p.SummaryText == "" {
			return "", ErrGenerationEmpty
		}
		return p.Title, nil
	case domain.ContentQuiz:
		var p domain.QuizPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", err
		}
		if len(p.Questions) == 0 {
			return "", ErrGenerationEmpty
		}
		return p.Title, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContent, t)
}
