package business

import (
	"encoding/json"
	"sort"
	"strings"
)

// faqSeparators are tried in order of appearance when a FAQ entry is a plain
// string; the earliest match splits it into question/answer.
var faqSeparators = []string{"?", ":", "|", "-", "="}

// ValidFAQItems normalizes whatever FAQ shape a business record carries into
// a flat list of question/answer pairs. Tolerated shapes: string arrays,
// arrays of {question,answer} / {q,a} / {title,content} objects, 2-element
// tuples, and question→answer maps. Entries that fail to normalize are
// dropped, never surfaced as errors.
func ValidFAQItems(raw json.RawMessage) []FAQItem {
	if len(raw) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err == nil {
		var items []FAQItem
		for _, e := range elems {
			if item, ok := normalizeFAQElement(e); ok {
				items = append(items, item)
			}
		}
		return items
	}

	var kv map[string]string
	if err := json.Unmarshal(raw, &kv); err == nil {
		return mapToItems(kv)
	}

	return nil
}

func normalizeFAQElement(e json.RawMessage) (FAQItem, bool) {
	var s string
	if err := json.Unmarshal(e, &s); err == nil {
		return splitFAQString(s)
	}

	// Dashboard versions disagree on key names; probe all spellings at once.
	var obj struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Q        string `json:"q"`
		A        string `json:"a"`
		Title    string `json:"title"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(e, &obj); err == nil {
		for _, pair := range [][2]string{
			{obj.Question, obj.Answer},
			{obj.Q, obj.A},
			{obj.Title, obj.Content},
		} {
			q, a := strings.TrimSpace(pair[0]), strings.TrimSpace(pair[1])
			if q != "" && a != "" {
				return FAQItem{Question: q, Answer: a}, true
			}
		}
	}

	var tuple []string
	if err := json.Unmarshal(e, &tuple); err == nil && len(tuple) >= 2 {
		q, a := strings.TrimSpace(tuple[0]), strings.TrimSpace(tuple[1])
		if q != "" && a != "" {
			return FAQItem{Question: q, Answer: a}, true
		}
	}

	var kv map[string]string
	if err := json.Unmarshal(e, &kv); err == nil {
		if items := mapToItems(kv); len(items) == 1 {
			return items[0], true
		}
	}

	return FAQItem{}, false
}

// splitFAQString splits "Where are you located? Tel Aviv" style entries on
// the earliest separator. A "?" stays attached to the question side.
func splitFAQString(s string) (FAQItem, bool) {
	idx, sep := -1, ""
	for _, cand := range faqSeparators {
		if i := strings.Index(s, cand); i > 0 && (idx == -1 || i < idx) {
			idx, sep = i, cand
		}
	}
	if idx == -1 {
		return FAQItem{}, false
	}

	q := s[:idx]
	if sep == "?" {
		q = s[:idx+1]
	}
	q = strings.TrimSpace(q)
	a := strings.TrimSpace(s[idx+len(sep):])
	if q == "" || a == "" {
		return FAQItem{}, false
	}
	return FAQItem{Question: q, Answer: a}, true
}

func mapToItems(kv map[string]string) []FAQItem {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		if strings.TrimSpace(k) != "" && strings.TrimSpace(kv[k]) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	items := make([]FAQItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, FAQItem{
			Question: strings.TrimSpace(k),
			Answer:   strings.TrimSpace(kv[k]),
		})
	}
	return items
}
