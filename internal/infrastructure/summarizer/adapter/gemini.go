package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/summarizer/port"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("summarizer: no API key configured")

// GeminiSummarizer implements port.Summarizer against the Gemini REST API.
type GeminiSummarizer struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGeminiFromEnv reads GEMINI_API_KEY; an empty key yields a disabled
// summarizer whose calls return ErrDisabled.
func NewGeminiFromEnv() *GeminiSummarizer {
	return &GeminiSummarizer{
		apiKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

var _ port.Summarizer = (*GeminiSummarizer)(nil)

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, messages []string, question string) (string, error) {
	if g.apiKey == "" {
		return "", ErrDisabled
	}
	if len(messages) > 40 {
		messages = messages[len(messages)-40:]
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(messages, question)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("summarizer: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("summarizer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarizer: call model: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer: model returned status %d", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("summarizer: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("summarizer: empty model response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

func buildPrompt(messages []string, question string) string {
	var b strings.Builder
	b.WriteString("Summarize the group chat below in three lines. ")
	b.WriteString("Keep only the key decisions, times, places and the context a newly joined member needs.")
	if question != "" {
		b.WriteString(" Also answer the reader's question: ")
		b.WriteString(question)
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join(messages, "\n"))
	return b.String()
}
