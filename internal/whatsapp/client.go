package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	defaultAPIURL = "https://api.wabridge.io/v1"
	defaultLocale = "he"
	maxButtons    = 3
)

// SendResult is the typed outcome of a best-effort send. Sent is false for
// mock sends and failures; Reason says why. Transport errors never propagate
// past this boundary.
type SendResult struct {
	Sent      bool
	MessageID string
	Reason    string
}

type Config struct {
	BaseURL       string
	AccessToken   string
	FromNumber    string
	DefaultLocale string
}

// Messenger formats logical replies into provider envelopes and dispatches
// them. With no access token configured it runs in mock mode: every send is
// logged instead of transmitted.
type Messenger struct {
	baseURL     string
	accessToken string
	from        string
	locale      string
	http        *http.Client
}

func NewMessenger(cfg Config) *Messenger {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIURL
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = defaultLocale
	}
	return &Messenger{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		from:        NormalizePhone(cfg.FromNumber),
		locale:      cfg.DefaultLocale,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *Messenger) SendText(ctx context.Context, to, body string) SendResult {
	return m.dispatch(ctx, to, func(env *Envelope) {
		env.Body = body
	})
}

func (m *Messenger) SendList(ctx context.Context, to string, msg ListMessage) SendResult {
	return m.dispatch(ctx, to, func(env *Envelope) {
		env.Interactive = &Interactive{
			Type: "list",
			Body: InteractiveBody{Text: msg.Body},
			Action: InteractiveAction{
				Button:   msg.ButtonText,
				Sections: msg.Sections,
			},
		}
		if msg.HeaderText != "" {
			env.Interactive.Header = &Header{Type: "text", Text: msg.HeaderText}
		}
		if msg.FooterText != "" {
			env.Interactive.Footer = &Footer{Text: msg.FooterText}
		}
	})
}

func (m *Messenger) SendButtons(ctx context.Context, to string, msg ButtonsMessage) SendResult {
	replies := msg.Buttons
	if len(replies) > maxButtons {
		log.Printf("whatsapp: truncating %d buttons to %d", len(replies), maxButtons)
		replies = replies[:maxButtons]
	}

	buttons := make([]Button, len(replies))
	for i, r := range replies {
		buttons[i] = Button{Type: "reply", Reply: r}
	}

	return m.dispatch(ctx, to, func(env *Envelope) {
		env.Interactive = &Interactive{
			Type:   "button",
			Header: msg.Header,
			Body:   InteractiveBody{Text: msg.Body},
			Action: InteractiveAction{Buttons: buttons},
		}
		if msg.FooterText != "" {
			env.Interactive.Footer = &Footer{Text: msg.FooterText}
		}
	})
}

func (m *Messenger) SendTemplate(ctx context.Context, to string, msg TemplateMessage) SendResult {
	lang := msg.Language
	if lang == "" {
		lang = m.locale
	}
	return m.dispatch(ctx, to, func(env *Envelope) {
		env.Template = &Template{
			Name:       msg.Name,
			Language:   TemplateLanguage{Code: lang},
			Components: msg.Components,
		}
	})
}

func (m *Messenger) dispatch(ctx context.Context, to string, fill func(*Envelope)) SendResult {
	if m.from == "" {
		log.Printf("whatsapp: no sending number configured, dropping message to %s", to)
		return SendResult{Reason: "no sending number configured"}
	}

	toDigits := NormalizePhone(to)
	env := Envelope{From: WirePhone(m.from), To: WirePhone(toDigits)}
	fill(&env)

	if toDigits == m.from {
		return m.mock(env, "destination equals sender")
	}
	if m.accessToken == "" {
		return m.mock(env, "no access token configured")
	}

	id, err := m.post(ctx, env)
	if err != nil {
		log.Printf("whatsapp: send to %s failed: %v", env.To, err)
		return SendResult{Reason: err.Error()}
	}

	log.Printf("whatsapp: sent %s to %s", id, env.To)
	return SendResult{Sent: true, MessageID: id}
}

func (m *Messenger) mock(env Envelope, reason string) SendResult {
	payload, _ := json.Marshal(env)
	id := "mock-" + uuid.NewString()
	log.Printf("whatsapp: mock send (%s) %s: %s", reason, id, payload)
	return SendResult{MessageID: id, Reason: reason}
}

func (m *Messenger) post(ctx context.Context, env Envelope) (string, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshaling envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+m.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("whatsapp API status %d: %s", resp.StatusCode, respBody)
	}

	var parsed sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding send response: %w", err)
	}
	if len(parsed.Messages) == 0 {
		return "", nil
	}
	return parsed.Messages[0].ID, nil
}
