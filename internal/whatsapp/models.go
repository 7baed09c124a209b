package whatsapp

// --- Outbound wire envelope ---

// Envelope is the wire-level shape a message takes after formatting. Exactly
// one of Body, Interactive, Template is set.
type Envelope struct {
	From        string       `json:"from"`
	To          string       `json:"to"`
	Body        string       `json:"body,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
	Template    *Template    `json:"template,omitempty"`
}

type Interactive struct {
	Type   string            `json:"type"`
	Header *Header           `json:"header,omitempty"`
	Body   InteractiveBody   `json:"body"`
	Footer *Footer           `json:"footer,omitempty"`
	Action InteractiveAction `json:"action"`
}

type InteractiveBody struct {
	Text string `json:"text"`
}

type Footer struct {
	Text string `json:"text"`
}

// Header is either inline text or a media link keyed by its kind.
type Header struct {
	Type     string     `json:"type"`
	Text     string     `json:"text,omitempty"`
	Image    *MediaLink `json:"image,omitempty"`
	Document *MediaLink `json:"document,omitempty"`
	Video    *MediaLink `json:"video,omitempty"`
}

type MediaLink struct {
	Link string `json:"link"`
}

type InteractiveAction struct {
	Button   string    `json:"button,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Buttons  []Button  `json:"buttons,omitempty"`
}

type Section struct {
	Title string       `json:"title"`
	Rows  []SectionRow `json:"rows"`
}

type SectionRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Button struct {
	Type  string      `json:"type"`
	Reply ButtonReply `json:"reply"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Template components are provider-defined; passed through verbatim.
type Template struct {
	Name       string           `json:"name"`
	Language   TemplateLanguage `json:"language"`
	Components []any            `json:"components,omitempty"`
}

type TemplateLanguage struct {
	Code string `json:"code"`
}

// --- Logical (pre-formatting) message shapes ---

type ListMessage struct {
	Body       string
	ButtonText string
	Sections   []Section
	HeaderText string
	FooterText string
}

type ButtonsMessage struct {
	Body       string
	Buttons    []ButtonReply
	Header     *Header
	FooterText string
}

type TemplateMessage struct {
	Name       string
	Language   string
	Components []any
}

// --- Provider send response ---

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}
