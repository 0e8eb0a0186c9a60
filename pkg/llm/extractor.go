// Package llm is the fallback field extractor: when the regex cascade cannot
// determine company or title, the email is sent to the Anthropic messages API
// for a best-effort second opinion. Strictly best-effort: any failure yields
// empty fields and the caller keeps its regex-derived sentinels.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	model            = "claude-sonnet-4-20250514"
	maxBodyChars     = 500
)

type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey:  apiKey,
		baseURL: anthropicAPIURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Available reports whether an API key is configured. The scanner only
// escalates to the LLM when this is true.
func (s *Service) Available() bool {
	return s.apiKey != ""
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type extractedFields struct {
	Company string `json:"company"`
	Title   string `json:"title"`
}

// Extract asks the model for company and job title. Empty strings mean the
// field could not be determined; the method never returns an error because
// the caller treats every failure the same way.
func (s *Service) Extract(ctx context.Context, sender, subject, body string) (string, string) {
	if !s.Available() {
		return "", ""
	}

	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	prompt := fmt.Sprintf(
		"Extract the company name and job title from this job application email. "+
			"Return ONLY a JSON object with format: {\"company\": \"...\", \"title\": \"...\"}. "+
			"If you cannot determine either field, use \"Unknown\" for that field.\n\n"+
			"Email Details:\nFrom: %s\nSubject: %s\nBody: %s\n\nJSON Response:",
		sender, subject, body)

	payload, err := json.Marshal(messageRequest{
		Model:     model,
		MaxTokens: 200,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", ""
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[LLM] Request failed: %v", err)
		return "", ""
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ""
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLM] API returned status %d", resp.StatusCode)
		return "", ""
	}

	return parseResponse(respBody)
}

// parseResponse pulls the JSON object out of the model's text reply. The
// model sometimes wraps it in markdown fences, so those are stripped first.
func parseResponse(respBody []byte) (string, string) {
	var parsed messageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Content) == 0 {
		log.Printf("[LLM] Unparseable response")
		return "", ""
	}

	text := parsed.Content[0].Text
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var fields extractedFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		log.Printf("[LLM] Response was not the expected JSON: %v", err)
		return "", ""
	}

	return cleanField(fields.Company), cleanField(fields.Title)
}

// cleanField maps the model's "don't know" spellings to absent.
func cleanField(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "unknown", "n/a", "unknown company", "unknown position":
		return ""
	}
	return value
}
