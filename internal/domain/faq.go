package domain

import (
	"bytes"
	"encoding/json"
)

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ is the optional "faq" document. Both a bare array and an object with
// an "items" array are accepted.
type FAQ struct {
	Items []FAQItem `json:"items"`
}

func (f *FAQ) UnmarshalJSON(b []byte) error {
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &f.Items)
	}
	type plain FAQ
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*f = FAQ(p)
	return nil
}
