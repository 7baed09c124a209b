package business

import "encoding/json"

// Business is the configuration and knowledge base for one tenant of the
// platform. Records are created and edited from the dashboard; the relay
// path only ever reads them.
type Business struct {
	BotID       string `json:"bot_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Hours is free text ("Sun-Thu 9:00-18:00"); StructuredHours is the
	// day-keyed form the dashboard's hours editor produces. A record may
	// carry either, both, or neither.
	Hours           string            `json:"hours,omitempty"`
	StructuredHours map[string]string `json:"structured_hours,omitempty"`

	// FAQ is heterogeneous across dashboard versions: a string array, an
	// array of question/answer objects (under several key spellings), or a
	// question→answer map. Kept raw and normalized at read time via
	// ValidFAQItems.
	FAQ json.RawMessage `json:"faq,omitempty"`

	// Phone is the business WhatsApp number as E.164 digits, no leading "+".
	Phone string `json:"phone"`

	// APIKey optionally overrides the platform completion credential for
	// this business.
	APIKey string `json:"api_key,omitempty"`

	// PromptTemplate is free-form owner-supplied instruction text, appended
	// to the assembled prompt (or used verbatim when the caller chooses).
	PromptTemplate string `json:"prompt_template,omitempty"`

	// BusinessData holds the structured extras from the dashboard: services,
	// location, policies, an hours table. Opaque to the relay beyond being
	// serialized into the prompt.
	BusinessData map[string]any `json:"business_data,omitempty"`
}

// FAQItem is the canonical question/answer pair every FAQ shape normalizes to.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
