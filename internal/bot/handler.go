package bot

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/bizwise/maya/internal/ai"
	"github.com/bizwise/maya/internal/business"
	"github.com/bizwise/maya/internal/store"
	"github.com/bizwise/maya/internal/whatsapp"
)

const (
	fallbackUnknownBusiness = "שלום! לא הצלחנו לזהות את העסק שאליו פנית. נסו לציין את מזהה הבוט בתחילת ההודעה, למשל: botId=salon1"
	fallbackTemporaryError  = "מצטערים, נתקלנו בתקלה זמנית. נסו שוב בעוד מספר דקות."
)

// Directory is the read-only business lookup the relay depends on.
type Directory interface {
	FindByBotID(id string) (*business.Business, error)
	FindByPhone(number string) (*business.Business, error)
	ListAll() ([]business.Business, error)
}

// Messenger is the slice of the outbound client the relay uses for replies.
type Messenger interface {
	SendText(ctx context.Context, to, body string) whatsapp.SendResult
}

type Handler struct {
	directory Directory
	completer ai.Completer
	messenger Messenger
}

func NewHandler(directory Directory, completer ai.Completer, messenger Messenger) *Handler {
	return &Handler{directory: directory, completer: completer, messenger: messenger}
}

// HandleWebhook drives one inbound message through the relay pipeline:
// parse → resolve business → grounded completion → outbound reply. Terminal
// outcomes are exactly 200 (processed), 405 (wrong method), 500 (parse or
// lookup failure). Business-logic misses still acknowledge with 200 so the
// provider does not retry.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte("method not allowed"))
		return
	}

	msg, err := parseInbound(r)
	if err != nil {
		log.Printf("bot: bad inbound payload: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("error"))
		return
	}
	log.Printf("bot: inbound sid=%s from=%s media=%d", msg.MessageSid, msg.From, msg.NumMedia)

	botID, text := parseRoutingToken(msg.Body)

	biz, err := h.resolveBusiness(botID, msg.To)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("bot: directory lookup failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("error"))
		return
	}

	if biz == nil {
		log.Printf("bot: no business for bot id %q / recipient %s, sending fallback", botID, msg.To)
		h.reply(r.Context(), msg.From, fallbackUnknownBusiness)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
		return
	}

	replyText := h.complete(r.Context(), biz, text)
	h.reply(r.Context(), msg.From, replyText)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// resolveBusiness tries the routing token first, then the recipient number
// (messages sent straight to a business line carry no token).
func (h *Handler) resolveBusiness(botID, to string) (*business.Business, error) {
	if botID != "" {
		return h.directory.FindByBotID(botID)
	}
	if to != "" {
		return h.directory.FindByPhone(to)
	}
	return nil, store.ErrNotFound
}

func (h *Handler) complete(ctx context.Context, biz *business.Business, text string) string {
	reply, err := h.completer.Respond(ctx, ai.Request{
		Business:    biz,
		BotID:       biz.BotID,
		UserMessage: text,
	})
	if err != nil {
		// Raw provider detail stays in the logs; the user gets a short
		// apologetic line.
		log.Printf("bot: completion for %s failed: %v", biz.BotID, err)
		return fallbackTemporaryError
	}
	return reply
}

func (h *Handler) reply(ctx context.Context, to, text string) {
	if res := h.messenger.SendText(ctx, to, text); !res.Sent {
		log.Printf("bot: reply to %s not transmitted: %s", to, res.Reason)
	}
}
