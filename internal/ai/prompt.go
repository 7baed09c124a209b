package ai

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/bizwise/maya/internal/business"
)

// BuildBusinessPrompt assembles the grounded system prompt for one business.
// The framing and section labels follow the dashboard's Hebrew templates; an
// owner-supplied PromptTemplate is appended verbatim, in whatever language
// the owner wrote it.
//
// Missing fields are omitted entirely, never rendered as placeholders.
func BuildBusinessPrompt(b *business.Business) string {
	var sb strings.Builder

	sb.WriteString("אתה עוזר וירטואלי של בוט עסקי בוואטסאפ. ענה ללקוחות בנימוס, בתמציתיות ובגובה העיניים.\n\n")

	// Full record dump first, so the model stays grounded even when the
	// structured fields below are incomplete.
	if dump, err := json.Marshal(b); err == nil {
		sb.WriteString("פרטי העסק המלאים:\n")
		sb.Write(dump)
		sb.WriteString("\n\n")
	}

	if b.Name != "" {
		sb.WriteString("שם העסק: " + b.Name + "\n")
	}
	if b.Description != "" {
		sb.WriteString("תיאור: " + b.Description + "\n")
	}
	writeHours(&sb, b)

	if items := business.ValidFAQItems(b.FAQ); len(items) > 0 {
		sb.WriteString("שאלות נפוצות:\n")
		for i, item := range items {
			fmt.Fprintf(&sb, "%d. ש: %s ת: %s\n", i+1, item.Question, item.Answer)
		}
	}

	if len(b.BusinessData) > 0 {
		if data, err := json.Marshal(b.BusinessData); err == nil {
			sb.WriteString("מידע נוסף על העסק:\n")
			sb.Write(data)
			sb.WriteString("\n")
		}
	}

	if b.PromptTemplate != "" {
		sb.WriteString("\nהנחיות מיוחדות מבעל העסק:\n" + b.PromptTemplate + "\n")
	}

	sb.WriteString("\nאל תמציא מידע שאינו מופיע בפרטים שסופקו לך. אם אינך יודע את התשובה, אמור זאת בפשטות.")
	return sb.String()
}

func writeHours(sb *strings.Builder, b *business.Business) {
	if b.Hours != "" {
		sb.WriteString("שעות פעילות: " + b.Hours + "\n")
	}
	if len(b.StructuredHours) == 0 {
		return
	}

	days := make([]string, 0, len(b.StructuredHours))
	for d := range b.StructuredHours {
		days = append(days, d)
	}
	sort.Strings(days)

	sb.WriteString("שעות פעילות לפי יום:\n")
	for _, d := range days {
		fmt.Fprintf(sb, "- %s: %s\n", d, b.StructuredHours[d])
	}
}
