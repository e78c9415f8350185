package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the JSON object out of a model response. Models often
// wrap output in markdown fences or lead with prose; we keep everything
// between the first '{' and the last '}'.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// ParseJSON unmarshals a model response into T after extraction.
func ParseJSON[T any](raw string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &out); err != nil {
		return out, fmt.Errorf("failed to parse model response: %w", err)
	}
	return out, nil
}
