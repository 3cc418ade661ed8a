package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const historyLimit = 20

// OpenAICompleter answers with a chat completion, keeping a short per-user
// history so follow-up questions have context.
type OpenAICompleter struct {
	client *openai.Client
	model  string
	now    func() time.Time

	mu      sync.Mutex
	history map[string][]openai.ChatCompletionMessage
}

func NewOpenAICompleter(apiKey, baseURL, model string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimSpace(baseURL)
	}
	if strings.TrimSpace(model) == "" {
		model = openai.GPT4o
	}
	return &OpenAICompleter{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		now:     time.Now,
		history: map[string][]openai.ChatCompletionMessage{},
	}
}

func (c *OpenAICompleter) systemPrompt() string {
	return fmt.Sprintf("You are TrackUp Buddy, an intelligent project management assistant. "+
		"Today's date is %s. When asked about team status, provide detailed breakdowns.",
		c.now().Format("2006-01-02"))
}

func (c *OpenAICompleter) Complete(ctx context.Context, userID, text string) (string, error) {
	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text}

	c.mu.Lock()
	prior := append([]openai.ChatCompletionMessage(nil), c.history[userID]...)
	c.mu.Unlock()

	msgs := make([]openai.ChatCompletionMessage, 0, len(prior)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt()})
	msgs = append(msgs, prior...)
	msgs = append(msgs, user)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
		User:     userID,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	reply := resp.Choices[0].Message

	c.mu.Lock()
	h := append(c.history[userID], user, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply.Content})
	if len(h) > historyLimit {
		h = h[len(h)-historyLimit:]
	}
	c.history[userID] = h
	c.mu.Unlock()

	return reply.Content, nil
}

// completionErrorReply turns a completion failure into the reply text shown
// in the chat.
func completionErrorReply(err error) string {
	code := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		code = reqErr.HTTPStatusCode
	}
	msg := strings.ToLower(err.Error())
	switch {
	case code == http.StatusUnauthorized || strings.Contains(msg, "unauthorized"):
		return "Error: Unauthorized. Please check your API Key in the .env file."
	case code == http.StatusTooManyRequests || strings.Contains(msg, "rate limit"):
		return "Error: Rate limit exceeded. Please wait a moment before trying again."
	}
	return errorReply(err)
}
