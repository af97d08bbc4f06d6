package learn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPGenerator fetches generated content from a campus content service over
// plain JSON. It satisfies Generator; the Service routes any failure here to
// the local question bank, so no retry logic lives at this layer.
type HTTPGenerator struct {
	base   string
	client *http.Client
}

// NewHTTPGenerator points a generator at the service base URL. A nil client
// gets a default with a request timeout.
func NewHTTPGenerator(baseURL string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPGenerator{base: strings.TrimRight(baseURL, "/"), client: client}
}

type genRequest struct {
	Course string `json:"course"`
	Topic  string `json:"topic"`
	Level  int    `json:"level"`
	Count  int    `json:"count,omitempty"`
}

type quizResponse struct {
	Questions []struct {
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
		Correct int      `json:"correct"`
	} `json:"questions"`
}

type noteResponse struct {
	Note string `json:"note"`
}

func (h *HTTPGenerator) post(ctx context.Context, path string, req genRequest, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content service: unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GenerateQuiz implements Generator.
func (h *HTTPGenerator) GenerateQuiz(ctx context.Context, course, topic string, level int) ([]Question, error) {
	var resp quizResponse
	err := h.post(ctx, "/v1/quiz", genRequest{Course: course, Topic: topic, Level: level, Count: QuestionsPerQuiz}, &resp)
	if err != nil {
		return nil, err
	}

	tier := TierForLevel(level)
	qs := make([]Question, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		if q.Prompt == "" || len(q.Options) < 2 || q.Correct < 0 || q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("content service: malformed question %q", q.Prompt)
		}
		qs = append(qs, Question{Prompt: q.Prompt, Options: q.Options, Correct: q.Correct, Tier: tier})
	}
	return qs, nil
}

// GenerateStudyNote implements Generator.
func (h *HTTPGenerator) GenerateStudyNote(ctx context.Context, course, topic string, level int) (string, error) {
	var resp noteResponse
	err := h.post(ctx, "/v1/note", genRequest{Course: course, Topic: topic, Level: level}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Note, nil
}
