package hook

import "strings"

// MaxSubjectLength is the cap enforced on the first line of the message
const MaxSubjectLength = 50

// Sanitize strips wrapping artifacts the model tends to add despite the
// prompt: one layer of triple fences, one layer of single backticks, one
// layer of quotes. Each stripping is applied at most once, in that
// order, never recursively.
func Sanitize(text string) string {
	t := strings.TrimSpace(text)

	if len(t) >= 6 && strings.HasPrefix(t, "```") && strings.HasSuffix(t, "```") {
		t = strings.TrimSpace(t[3 : len(t)-3])
	}
	if len(t) >= 2 && strings.HasPrefix(t, "`") && strings.HasSuffix(t, "`") {
		t = strings.TrimSpace(t[1 : len(t)-1])
	}
	if len(t) >= 2 && ((strings.HasPrefix(t, `"`) && strings.HasSuffix(t, `"`)) ||
		(strings.HasPrefix(t, "'") && strings.HasSuffix(t, "'"))) {
		t = strings.TrimSpace(t[1 : len(t)-1])
	}

	return t
}

// TruncateSubject enforces the subject-length cap. Subjects over the cap
// are cut to exactly MaxSubjectLength characters, then trimmed back to
// the last word boundary when one exists within the cut. The cap counts
// characters, not bytes, so multibyte subjects are never split mid-rune.
func TruncateSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) <= MaxSubjectLength {
		return subject
	}
	truncated := string(runes[:MaxSubjectLength])
	if strings.Contains(truncated, " ") {
		words := strings.Split(truncated, " ")
		truncated = strings.TrimRight(strings.Join(words[:len(words)-1], " "), " \t")
	}
	return truncated
}

// BuildMessage assembles the final two-part message from sanitized text:
// a bounded subject line, then a blank line and the body if one exists.
// Returns "" when the text has no lines at all.
func BuildMessage(cleaned string) string {
	lines := strings.Split(cleaned, "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return ""
	}

	subject := TruncateSubject(strings.TrimSpace(lines[0]))
	rest := strings.TrimRight(strings.Join(lines[1:], "\n"), " \t\n\r")

	if rest != "" {
		return subject + "\n\n" + rest
	}
	return subject
}
