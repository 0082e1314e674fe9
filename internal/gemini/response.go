package gemini

import (
	"fmt"
	"strings"
)

// ExtractText pulls a best-effort text payload out of a decoded response.
// The generateContent response format varies between API releases, so an
// ordered list of known shapes is tried before falling back to a string
// coercion of the whole value. Returns "" for a nil response.
func ExtractText(resp any) string {
	if resp == nil {
		return ""
	}

	if m, ok := resp.(map[string]any); ok {
		if text, ok := extractFromCandidates(m); ok {
			return text
		}

		// Some responses carry a plain text field
		if text, ok := m["text"].(string); ok {
			return text
		}

		// Some return output or result containers
		if text, ok := extractContainer(m["output"]); ok {
			return text
		}
		if text, ok := extractContainer(m["result"]); ok {
			return text
		}
	}

	// Last resort: stringify
	return fmt.Sprintf("%v", resp)
}

// extractFromCandidates handles the candidates[0] family of shapes
func extractFromCandidates(m map[string]any) (string, bool) {
	candidates, ok := m["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return "", false
	}
	c0, ok := candidates[0].(map[string]any)
	if !ok {
		return "", false
	}

	switch content := c0["content"].(type) {
	case map[string]any:
		// Current shape: content.parts is a list of {text: ...}
		if parts, ok := content["parts"].([]any); ok && len(parts) > 0 {
			var sb strings.Builder
			for _, p := range parts {
				if pm, ok := p.(map[string]any); ok {
					if text, ok := pm["text"].(string); ok {
						sb.WriteString(text)
					}
				}
			}
			if sb.Len() > 0 {
				return sb.String(), true
			}
		}
	case []any:
		// Older shape: content is a list of dicts or strings
		if len(content) > 0 {
			if first, ok := content[0].(map[string]any); ok {
				if text, ok := first["text"].(string); ok {
					return text, true
				}
			}
			if text, ok := content[0].(string); ok {
				return text, true
			}
		}
	case string:
		return content, true
	}

	// Candidate may carry output or text directly
	if out, ok := c0["output"].([]any); ok && len(out) > 0 {
		if el, ok := out[0].(map[string]any); ok {
			if text, ok := el["text"].(string); ok {
				return text, true
			}
		}
		if text, ok := out[0].(string); ok {
			return text, true
		}
	}
	if text, ok := c0["text"].(string); ok {
		return text, true
	}

	return "", false
}

// extractContainer handles a value that is either a string or a map
// holding a content field
func extractContainer(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case map[string]any:
		if text, ok := val["content"].(string); ok {
			return text, true
		}
	}
	return "", false
}
