package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Daskott/raksha/shared"
	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	FALLBACK_REPLY = "I'm here to help with your safety needs. Please let me know what specific assistance you need, or use the emergency buttons if you're in immediate danger."

	DEFAULT_OPENAI_MODEL = openai.GPT4oMini
	REPLY_TIMEOUT        = 15 * time.Second

	cannedTemplate = "I'm Raksha AI, your safety assistant. I understand you said: '%s'. How can I help keep you safe today?"
	systemPrompt   = "You are Raksha AI, a calm and practical personal safety assistant inside the Raksha+ app. " +
		"Keep answers short. If the user may be in immediate danger, tell them to use the app's emergency buttons or call local emergency services."
)

// Prompt is a single chat turn from a user
type Prompt struct {
	Message string
	// LastKnownAddress is the address of the user's most recent located event, if any
	LastKnownAddress string
}

// Responder produces the assistant's reply to a prompt
type Responder interface {
	Reply(ctx context.Context, prompt Prompt) (string, error)
}

// CannedResponder echoes the message back in a fixed reply
type CannedResponder struct{}

func (CannedResponder) Reply(ctx context.Context, prompt Prompt) (string, error) {
	return fmt.Sprintf(cannedTemplate, prompt.Message), nil
}

// OpenAIResponder answers with a chat completion
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

// NewResponder returns an OpenAIResponder when an api key is configured, a CannedResponder otherwise
func NewResponder(config shared.OpenAIConfig) Responder {
	if config.APIKey == "" {
		return CannedResponder{}
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = DEFAULT_OPENAI_MODEL
	}

	return &OpenAIResponder{client: openai.NewClientWithConfig(clientConfig), model: model}
}

func (r *OpenAIResponder) Reply(ctx context.Context, prompt Prompt) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if prompt.LastKnownAddress != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "The user's last known location: " + prompt.LastKnownAddress,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.Message})

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    r.model,
		Messages: messages,
	})
	if err != nil {
		return "", errors.Wrap(err, "CreateChatCompletion")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("CreateChatCompletion: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// SafeReply never fails. Any error, panic or empty reply from the responder yields FALLBACK_REPLY.
// An empty message is still passed on, the canned responder echoes it like any other.
func SafeReply(ctx context.Context, responder Responder, prompt Prompt, logg *zap.SugaredLogger) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			logg.Errorf("assistant panicked: %v", r)
			reply = FALLBACK_REPLY
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, REPLY_TIMEOUT)
	defer cancel()

	reply, err := responder.Reply(ctx, prompt)
	if err != nil {
		logg.Warnf("assistant unavailable: %v", err)
		return FALLBACK_REPLY
	}

	if strings.TrimSpace(reply) == "" {
		return FALLBACK_REPLY
	}

	return reply
}
