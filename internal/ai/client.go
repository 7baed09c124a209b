package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel = openai.GPT4oMini

	// Replies are WhatsApp messages; keep them message-sized and cheap.
	maxTokens   = 500
	temperature = 0.7

	requestTimeout = 60 * time.Second

	// NoResponse is returned (as a reply, not an error) when the provider
	// answers with zero choices.
	NoResponse = "no response generated"
)

// ErrMissingCredential means no tier of the credential chain resolved a key.
var ErrMissingCredential = errors.New("ai: no completion credential available")

type Config struct {
	// DefaultAPIKey is the deploy-time credential, the last tier of the
	// fallback chain. May be empty.
	DefaultAPIKey string
	Model         string
	// BaseURL overrides the provider endpoint; tests point it at a stub.
	BaseURL string
}

// Client issues one non-streaming chat completion per inbound message.
type Client struct {
	cfg  Config
	keys KeyStore
	http *http.Client
}

func NewClient(cfg Config, keys KeyStore) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Client{
		cfg:  cfg,
		keys: keys,
		http: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) Respond(ctx context.Context, req Request) (string, error) {
	key, err := c.resolveKey(req)
	if err != nil {
		return "", err
	}

	system := req.System
	if system == "" && req.Business != nil {
		system = BuildBusinessPrompt(req.Business)
	}

	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserMessage,
	})

	occfg := openai.DefaultConfig(key)
	occfg.HTTPClient = c.http
	if c.cfg.BaseURL != "" {
		occfg.BaseURL = c.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(occfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("ai: provider error: %s", apiErr.Message)
		}
		return "", fmt.Errorf("ai: completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Printf("ai: provider returned no choices")
		return NoResponse, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// resolveKey walks the credential chain: request override, business record
// override, locally stored key, deploy-time default.
func (c *Client) resolveKey(req Request) (string, error) {
	if req.APIKeyOverride != "" {
		return req.APIKeyOverride, nil
	}
	if req.Business != nil && req.Business.APIKey != "" {
		return req.Business.APIKey, nil
	}

	botID := req.BotID
	if botID == "" && req.Business != nil {
		botID = req.Business.BotID
	}
	if botID != "" && c.keys != nil {
		if key, err := c.keys.GetAPIKey(botID); err == nil && key != "" {
			return key, nil
		}
	}

	if c.cfg.DefaultAPIKey != "" {
		return c.cfg.DefaultAPIKey, nil
	}
	return "", ErrMissingCredential
}
