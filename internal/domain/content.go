package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentType tags the study-content variants.
type ContentType string

const (
	ContentFlashcard ContentType = "flashcard"
	ContentDiagram   ContentType = "schema"
	ContentSummary   ContentType = "summary"
	ContentQuiz      ContentType = "quiz"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentFlashcard, ContentDiagram, ContentSummary, ContentQuiz:
		return true
	}
	return false
}

// StudyContent is the common envelope for generated study material.
// The payload shape depends on Type and is kept as raw JSON in the DB
// (jsonb column); typed accessors decode it on demand.
type StudyContent struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"user_id"`
	SessionID  uuid.UUID       `db:"session_id" json:"session_id"`
	Type       ContentType     `db:"type" json:"type"`
	Title      string          `db:"title" json:"title"`
	Payload    json.RawMessage `db:"content" json:"content,omitempty"`
	IsFavorite bool            `db:"is_favorite" json:"is_favorite"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// FlashcardSet is the payload for ContentFlashcard.
type FlashcardSet struct {
	Title string          `json:"title"`
	Cards []FlashcardItem `json:"cards"`
}

type FlashcardItem struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// DiagramPayload is the payload for ContentDiagram.
type DiagramPayload struct {
	Title    string      `json:"title"`
	RootNode DiagramNode `json:"rootNode"`
}

type DiagramNode struct {
	Label    string        `json:"label"`
	Children []DiagramNode `json:"children"`
}

// SummaryPayload is the payload for ContentSummary.
type SummaryPayload struct {
	Title       string `json:"title"`
	SummaryText string `json:"summaryText"`
}

// QuizPayload is the payload for ContentQuiz.
type QuizPayload struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Flashcards decodes the payload as a flashcard set.
func (c *StudyContent) Flashcards() (*FlashcardSet, error) {
	var s FlashcardSet
	if err := json.Unmarshal(c.Payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Quiz decodes the payload as a quiz.
func (c *StudyContent) Quiz() (*QuizPayload, error) {
	var q QuizPayload
	if err := json.Unmarshal(c.Payload, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
