package assistant

import (
	"bytes"
	"encoding/json"
	"strings"
)

// replyKeys are checked in order for a plain-text answer.
var replyKeys = []string{"reply", "message", "response", "text", "answer", "content"}

// Normalize turns a service answer into display text.
//
// JSON objects use the first non-empty string under one of replyKeys;
// otherwise every field is rendered "**Label:** value", in the order the
// service sent them, separated by blank lines. Anything that is not JSON is
// used as trimmed text. An empty result becomes Fallback.
func Normalize(contentType string, body []byte) string {
	body = bytes.TrimSpace(body)
	var out string
	if strings.Contains(strings.ToLower(contentType), "json") && json.Valid(body) {
		out = fromJSON(body)
	} else {
		out = string(body)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return Fallback
	}
	return out
}

func fromJSON(body []byte) string {
	switch body[0] {
	case '{':
		fields, err := orderedFields(body)
		if err != nil {
			return string(body)
		}
		for _, k := range replyKeys {
			for _, f := range fields {
				if f.key != k {
					continue
				}
				var s string
				if json.Unmarshal(f.raw, &s) == nil && strings.TrimSpace(s) != "" {
					return s
				}
			}
		}
		lines := make([]string, 0, len(fields))
		for _, f := range fields {
			lines = append(lines, "**"+label(f.key)+":** "+renderValue(f.raw))
		}
		return strings.Join(lines, "\n\n")
	case '"':
		var s string
		_ = json.Unmarshal(body, &s)
		return s
	}
	return string(body)
}

type field struct {
	key string
	raw json.RawMessage
}

// orderedFields decodes a JSON object keeping key order.
func orderedFields(body []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil { // {
		return nil, err
	}
	var out []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, field{key: key, raw: raw})
	}
	return out, nil
}

// label turns "issue_type" into "Issue type".
func label(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func renderValue(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var buf bytes.Buffer
	if json.Compact(&buf, raw) == nil {
		return buf.String()
	}
	return string(raw)
}
