package ai

import (
	"fmt"

	"study_webapp/internal/domain"
)

// BuildPrompt returns the generation prompt for a content type. Every
// prompt demands a strict-JSON reply matching the payload shape the domain
// decoders expect.
func BuildPrompt(t domain.ContentType, text string) (string, error) {
	switch t {
	case domain.ContentFlashcard:
		return `You are an educational tutor. Analyze the following text and produce a set of flashcards.
Reply ONLY with valid JSON, no extra text, in this exact format:
{
  "title": "Descriptive topic title",
  "cards": [
    { "front": "Concept or question", "back": "Definition or answer" }
  ]
}
Produce between 8 and 15 flashcards. Be concise and clear.

TEXT TO STUDY:
` + text, nil

	case domain.ContentDiagram:
		return `You are an educational tutor. Analyze the following text and produce a hierarchical outline.
Reply ONLY with valid JSON, no extra text, in this exact format:
{
  "title": "Topic title",
  "rootNode": {
    "label": "Main topic",
    "children": [
      { "label": "Subtopic", "children": [ { "label": "Key point", "children": [] } ] }
    ]
  }
}

TEXT TO STUDY:
` + text, nil

	case domain.ContentSummary:
		return `You are an educational tutor. Produce a clear, structured summary of the following text.
Reply ONLY with valid JSON, no extra text, in this exact format:
{
  "title": "Topic title",
  "summaryText": "Full summary using basic markdown (## for subtitles, **bold**, - lists)"
}
The summary must be clear, complete and useful for studying.

TEXT TO STUDY:
` + text, nil

	case domain.ContentQuiz:
		return `You are an educational tutor. Produce a multiple-choice quiz about the following text.
Reply ONLY with valid JSON, no extra text, in this exact format:
{
  "title": "Topic title",
  "questions": [
    {
      "question": "Question here",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctIndex": 0,
      "explanation": "Why this is the correct answer"
    }
  ]
}
Produce between 5 and 10 questions of varied difficulty.

TEXT TO STUDY:
` + text, nil
	}

	return "", fmt.Errorf("unknown content type %q", t)
}
