package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"study_webapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"title":"Cells"}`,
			want: `{"title":"Cells"}`,
		},
		{
			name: "json code fence",
			in:   "```json\n{\"title\":\"Cells\"}\n```",
			want: `{"title":"Cells"}`,
		},
		{
			name: "plain code fence",
			in:   "```\n{\"title\":\"Cells\"}\n```",
			want: `{"title":"Cells"}`,
		},
		{
			name: "chatter around object",
			in:   "Sure! Here is your JSON:\n{\"title\":\"Cells\"}\nLet me know if you need more.",
			want: `{"title":"Cells"}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n{\"title\":\"Cells\"}\n  ",
			want: `{"title":"Cells"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	text := "The cell is the basic unit of life."
	for _, ct := range []domain.ContentType{
		domain.ContentFlashcard, domain.ContentDiagram,
		domain.ContentSummary, domain.ContentQuiz,
	} {
		prompt, err := BuildPrompt(ct, text)
		require.NoError(t, err, "type %s", ct)
		assert.Contains(t, prompt, text)
		assert.Contains(t, prompt, "JSON")
	}

	_, err := BuildPrompt("podcast", text)
	assert.Error(t, err)
}

func TestCompleteSendsPromptAndParsesReply(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"title\":\"Cells\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-3.5-turbo", 5*time.Second)
	out, err := client.Complete(context.Background(), "summarize this")
	require.NoError(t, err)

	assert.Equal(t, `{"title":"Cells"}`, out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "gpt-3.5-turbo", 5*time.Second)
	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "gpt-3.5-turbo", 5*time.Second)
	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"))
}
