package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+12345678901", "12345678901"},
		{"whatsapp:+12345678901", "12345678901"},
		{"972 50 765 4321", "972507654321"},
		{"12345678901", "12345678901"},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if got := WirePhone(tc.in); got != "whatsapp:+"+tc.want {
			t.Errorf("WirePhone(%q) = %q, want %q", tc.in, got, "whatsapp:+"+tc.want)
		}
	}
}

// newTestMessenger points a messenger at a stub transport and captures every
// envelope it posts.
func newTestMessenger(t *testing.T, from string) (*Messenger, *[]Envelope) {
	t.Helper()

	var captured []Envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env Envelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			t.Errorf("decoding envelope: %v", err)
		}
		captured = append(captured, env)
		w.Write([]byte(`{"messages":[{"id":"wamid.test.1"}]}`))
	}))
	t.Cleanup(srv.Close)

	m := NewMessenger(Config{
		BaseURL:     srv.URL,
		AccessToken: "test-token",
		FromNumber:  from,
	})
	return m, &captured
}

func TestSendText_Success(t *testing.T) {
	m, captured := newTestMessenger(t, "972500000001")

	res := m.SendText(context.Background(), "whatsapp:+972507654321", "hello")
	if !res.Sent {
		t.Fatalf("SendText not sent: %s", res.Reason)
	}
	if res.MessageID != "wamid.test.1" {
		t.Errorf("MessageID = %q, want wamid.test.1", res.MessageID)
	}
	if len(*captured) != 1 {
		t.Fatalf("captured %d envelopes, want 1", len(*captured))
	}
	env := (*captured)[0]
	if env.From != "whatsapp:+972500000001" || env.To != "whatsapp:+972507654321" {
		t.Errorf("envelope from/to = %q/%q", env.From, env.To)
	}
	if env.Body != "hello" {
		t.Errorf("envelope body = %q, want hello", env.Body)
	}
}

func TestSelfSendGuard(t *testing.T) {
	m, captured := newTestMessenger(t, "972500000001")

	res := m.SendText(context.Background(), "whatsapp:+972 50 000 0001", "loop")
	if res.Sent {
		t.Error("self-send was transmitted, want mock")
	}
	if res.Reason != "destination equals sender" {
		t.Errorf("Reason = %q", res.Reason)
	}
	if res.MessageID == "" {
		t.Error("mock send should still mint a message id")
	}
	if len(*captured) != 0 {
		t.Errorf("transport called %d times, want 0", len(*captured))
	}
}

func TestMissingFromNumber(t *testing.T) {
	m, captured := newTestMessenger(t, "")

	res := m.SendText(context.Background(), "972507654321", "x")
	if res.Sent || res.Reason != "no sending number configured" {
		t.Errorf("result = %+v, want negative with missing-sender reason", res)
	}
	if len(*captured) != 0 {
		t.Errorf("transport called %d times, want 0", len(*captured))
	}
}

func TestMockModeWithoutToken(t *testing.T) {
	m := NewMessenger(Config{FromNumber: "972500000001"})

	res := m.SendText(context.Background(), "972507654321", "x")
	if res.Sent {
		t.Error("send without token should be mocked")
	}
	if res.Reason != "no access token configured" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestSendButtons_TruncatesToThree(t *testing.T) {
	m, captured := newTestMessenger(t, "972500000001")

	msg := ButtonsMessage{
		Body: "pick one",
		Buttons: []ButtonReply{
			{ID: "1", Title: "one"},
			{ID: "2", Title: "two"},
			{ID: "3", Title: "three"},
			{ID: "4", Title: "four"},
			{ID: "5", Title: "five"},
		},
	}
	res := m.SendButtons(context.Background(), "972507654321", msg)
	if !res.Sent {
		t.Fatalf("SendButtons not sent: %s", res.Reason)
	}

	env := (*captured)[0]
	if env.Interactive == nil || env.Interactive.Type != "button" {
		t.Fatalf("envelope interactive = %+v, want button", env.Interactive)
	}
	got := env.Interactive.Action.Buttons
	if len(got) != 3 {
		t.Fatalf("submitted %d buttons, want 3", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i].Reply.Title != want || got[i].Type != "reply" {
			t.Errorf("button %d = %+v, want reply %q", i, got[i], want)
		}
	}
}

func TestSendList_Envelope(t *testing.T) {
	m, captured := newTestMessenger(t, "972500000001")

	msg := ListMessage{
		Body:       "our services",
		ButtonText: "browse",
		HeaderText: "Menu",
		FooterText: "reply anytime",
		Sections: []Section{{
			Title: "Treatments",
			Rows: []SectionRow{
				{ID: "cut", Title: "Haircut", Description: "30 min"},
				{ID: "color", Title: "Coloring"},
			},
		}},
	}
	if res := m.SendList(context.Background(), "972507654321", msg); !res.Sent {
		t.Fatalf("SendList not sent: %s", res.Reason)
	}

	env := (*captured)[0]
	iv := env.Interactive
	if iv == nil || iv.Type != "list" {
		t.Fatalf("interactive = %+v, want list", iv)
	}
	if iv.Action.Button != "browse" || len(iv.Action.Sections) != 1 || len(iv.Action.Sections[0].Rows) != 2 {
		t.Errorf("action = %+v", iv.Action)
	}
	if iv.Header == nil || iv.Header.Type != "text" || iv.Header.Text != "Menu" {
		t.Errorf("header = %+v", iv.Header)
	}
	if iv.Footer == nil || iv.Footer.Text != "reply anytime" {
		t.Errorf("footer = %+v", iv.Footer)
	}
}

func TestSendTemplate_DefaultLocale(t *testing.T) {
	m, captured := newTestMessenger(t, "972500000001")

	msg := TemplateMessage{
		Name:       "order_update",
		Components: []any{map[string]any{"type": "body"}},
	}
	if res := m.SendTemplate(context.Background(), "972507654321", msg); !res.Sent {
		t.Fatalf("SendTemplate not sent: %s", res.Reason)
	}

	tpl := (*captured)[0].Template
	if tpl == nil || tpl.Name != "order_update" {
		t.Fatalf("template = %+v", tpl)
	}
	if tpl.Language.Code != "he" {
		t.Errorf("language = %q, want default he", tpl.Language.Code)
	}
	if len(tpl.Components) != 1 {
		t.Errorf("components passed through = %d, want 1", len(tpl.Components))
	}
}

func TestTransportFailureReturnsNegative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid recipient"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	m := NewMessenger(Config{BaseURL: srv.URL, AccessToken: "t", FromNumber: "972500000001"})
	res := m.SendText(context.Background(), "972507654321", "x")
	if res.Sent {
		t.Error("failed transport reported as sent")
	}
	if res.Reason == "" {
		t.Error("failure reason missing")
	}
}
