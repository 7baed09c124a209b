package bot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// InboundMessage is one webhook invocation's view of the provider payload.
// It lives for the duration of the request and is never persisted.
type InboundMessage struct {
	From        string `json:"From"`
	To          string `json:"To"`
	Body        string `json:"Body"`
	MessageSid  string `json:"SmsMessageSid"`
	NumMedia    int    `json:"NumMedia,string"`
	ProfileName string `json:"ProfileName"`
	WaID        string `json:"WaId"`
}

// parseInbound reads the provider payload, accepting both the form-encoded
// shape the provider posts and the JSON shape used by integration tests and
// newer provider versions.
func parseInbound(r *http.Request) (*InboundMessage, error) {
	var msg InboundMessage

	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			return nil, fmt.Errorf("decoding json payload: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parsing form payload: %w", err)
		}
		msg = InboundMessage{
			From:        r.PostFormValue("From"),
			To:          r.PostFormValue("To"),
			Body:        r.PostFormValue("Body"),
			MessageSid:  r.PostFormValue("SmsMessageSid"),
			ProfileName: r.PostFormValue("ProfileName"),
			WaID:        r.PostFormValue("WaId"),
		}
		msg.NumMedia, _ = strconv.Atoi(r.PostFormValue("NumMedia"))
	}

	if msg.From == "" || msg.Body == "" {
		return nil, fmt.Errorf("payload missing From or Body")
	}
	return &msg, nil
}

// parseRoutingToken extracts the bot identifier from the message body.
// "botId=<id>" is the canonical convention; "#bot:<id>" is kept as a
// compatibility alias. The remainder is the actual user message.
func parseRoutingToken(body string) (botID, remainder string) {
	trimmed := strings.TrimSpace(body)

	for _, prefix := range []string{"botId=", "#bot:"} {
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		rest := trimmed[len(prefix):]
		if i := strings.IndexAny(rest, " \t\n"); i >= 0 {
			return rest[:i], strings.TrimSpace(rest[i:])
		}
		return rest, ""
	}
	return "", trimmed
}
