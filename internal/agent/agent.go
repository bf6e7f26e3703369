package agent

import (
	"context"

	"github.com/sashabaranov/go-openai"
	"github.com/xaenox/gatekeeper-bot/internal/models"
	"go.uber.org/zap"
)

const defaultSystemPrompt = `You are a helpful assistant answering direct messages on behalf of a business.
Keep answers short, friendly and factual. If you don't know something, say so.`

const fallbackReply = "Sorry, I'm having trouble answering right now. Please try again in a moment."

// Responder generates the reply for an admitted direct message using the
// OpenAI chat completion API, with recent conversation history as context.
type Responder struct {
	client       *openai.Client
	model        string
	maxTokens    int
	temperature  float64
	systemPrompt string
	logger       *zap.Logger
}

func NewResponder(apiKey, model string, maxTokens int, temperature float64, systemPrompt string, logger *zap.Logger) *Responder {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	return &Responder{
		client:       openai.NewClient(apiKey),
		model:        model,
		maxTokens:    maxTokens,
		temperature:  temperature,
		systemPrompt: systemPrompt,
		logger:       logger,
	}
}

// Reply produces the assistant's answer for content, given the stored
// conversation history in chronological order. API failures degrade to a
// static fallback reply rather than an error.
func (r *Responder) Reply(ctx context.Context, history []*models.Message, content string) string {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: r.systemPrompt,
	})

	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})

	resp, err := r.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       r.model,
			Messages:    messages,
			MaxTokens:   r.maxTokens,
			Temperature: float32(r.temperature),
		},
	)
	if err != nil {
		r.logger.Error("Failed to get completion from OpenAI", zap.Error(err))
		return fallbackReply
	}
	if len(resp.Choices) == 0 {
		r.logger.Error("OpenAI returned no choices")
		return fallbackReply
	}

	return resp.Choices[0].Message.Content
}
