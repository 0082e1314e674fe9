package hook

import "fmt"

// promptTemplate frames the model as a git maintainer and pins down the
// output contract. The staged diff is substituted at the end, unescaped.
const promptTemplate = `You are an expert software developer and git maintainer. Based on the staged git diff below, compose a concise, high-quality commit message using the Conventional Commits format.

Requirements (must follow exactly):
- Output only the raw commit message with no commentary, explanation, or markdown formatting.
- Use Conventional Commits types (e.g., feat, fix, docs, chore, refactor, perf, test).
- Enforce a 50-character limit for the SUBJECT line (the first line). If necessary, shorten the subject to fit 50 characters while remaining clear.
- The commit message should have a subject line (type: short summary) and, optionally, a blank line followed by a more detailed body if the changes require it.
- Do NOT include surrounding backticks or triple-backticks in your output.

Format example to emulate exactly (subject <= 50 chars):
feat(parser): add support for X

Add a short descriptive body if necessary. Keep the body lines reasonably wrapped.

Staged git diff (do not invent changes, base message only on the diff below):

%s`

// BuildPrompt maps the staged diff to the complete instruction string.
// Deterministic given its input.
func BuildPrompt(diffText string) string {
	return fmt.Sprintf(promptTemplate, diffText)
}
