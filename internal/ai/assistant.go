// Package ai wraps the chat-completion service behind the AI mentor feature.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const systemPrompt = `You are an AI mentor assistant for MentorHub, a mentorship platform. ` +
	`You help students and professionals with career guidance, study advice, skill development, ` +
	`and professional growth. Be helpful, encouraging, and provide actionable advice. ` +
	`Keep responses concise but informative.`

// canned responses served when no API key is configured, so the endpoint
// works in development.
var cannedResponses = []string{
	"That's a great question! Based on my understanding, here are some key strategies you should consider...",
	"I'd recommend focusing on building your skills in these areas. Let me break this down for you...",
	"This is definitely an important topic in today's professional landscape. Here's my advice...",
	"Great question! When approaching this challenge, I suggest considering these factors...",
}

// Message is one turn of a conversation, in OpenAI wire shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant calls an OpenAI-compatible chat-completions endpoint.
type Assistant struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

// NewAssistant builds an assistant. With an empty apiKey it answers from the
// canned response pool instead of calling out.
func NewAssistant(apiKey, model string) *Assistant {
	return &Assistant{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://api.openai.com/v1",
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Chat answers a user message given prior conversation turns.
func (a *Assistant) Chat(ctx context.Context, userMessage string, history []Message) (string, error) {
	if a.APIKey == "" {
		return cannedResponses[len(userMessage)%len(cannedResponses)], nil
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})

	body, err := json.Marshal(chatCompletionRequest{
		Model:       a.Model,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion failed with status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
