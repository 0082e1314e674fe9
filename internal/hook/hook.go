// Package hook implements the prepare-commit-msg pipeline: source gate,
// credential check, diff collection, generation, sanitization, and the
// final write into the commit message file.
package hook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"draftmsg.dev/draftmsg/internal/config"
	draftmsgerrors "draftmsg.dev/draftmsg/internal/errors"
	"draftmsg.dev/draftmsg/internal/gemini"
	"draftmsg.dev/draftmsg/internal/tui"
)

// DiffSource produces the staged diff text
type DiffSource interface {
	StagedDiff(ctx context.Context) (string, error)
}

// Generator calls the remote model and returns its decoded response
type Generator interface {
	Generate(ctx context.Context, prompt string) (any, error)
}

// Options describes a single hook invocation
type Options struct {
	// CommitMsgPath is the file Git hands to prepare-commit-msg hooks
	CommitMsgPath string

	// CommitSource is Git's commit-source tag (message, template, merge,
	// squash, commit) or empty
	CommitSource string

	// DryRun suppresses the file write; the message is returned only
	DryRun bool
}

// ShouldSkip reports whether the hook should not run at all for the
// given commit source. Git passes "message" when the user supplied -m
// and "commit" on amend; in both cases the message is theirs to keep.
func ShouldSkip(commitSource string) bool {
	if commitSource == "" {
		return false
	}
	lower := strings.ToLower(commitSource)
	return lower == "message" || lower == "commit"
}

// Hook runs the pipeline
type Hook struct {
	cfg  *config.Config
	diff DiffSource
	gen  Generator
	log  *tui.Splog
}

// New creates a Hook
func New(cfg *config.Config, diff DiffSource, gen Generator, log *tui.Splog) *Hook {
	return &Hook{cfg: cfg, diff: diff, gen: gen, log: log}
}

// Run executes the pipeline once. It returns the generated message, or
// "" when the run was an intentional no-op (user-supplied message, no
// staged changes, or generation service unavailable).
//
// Error classes: ErrMissingAPIKey for a missing credential, checked
// before any subprocess or network call; GenerationError for
// non-transient remote failures; ErrEmptyMessage when the model
// returned nothing usable.
func (h *Hook) Run(ctx context.Context, opts Options) (string, error) {
	if ShouldSkip(opts.CommitSource) {
		h.log.Debug("commit source %q supplied by user, skipping", opts.CommitSource)
		return "", nil
	}

	if h.cfg.APIKey == "" {
		return "", draftmsgerrors.ErrMissingAPIKey
	}

	diffText, err := h.diff.StagedDiff(ctx)
	if err != nil {
		// Never block a commit over tooling failures: treat as no
		// staged changes.
		h.log.Warn("running git diff failed: %v", err)
		diffText = ""
	}
	if strings.TrimSpace(diffText) == "" {
		h.log.Debug("no staged changes, nothing to generate")
		return "", nil
	}

	prompt := BuildPrompt(diffText)

	resp, err := h.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, draftmsgerrors.ErrServiceUnavailable) {
			// Already warned by the client; degrade to a no-op.
			return "", nil
		}
		return "", err
	}

	raw := gemini.ExtractText(resp)
	cleaned := Sanitize(raw)
	if cleaned == "" {
		return "", draftmsgerrors.ErrEmptyMessage
	}

	message := BuildMessage(cleaned)
	if message == "" {
		return "", nil
	}

	if opts.DryRun {
		return message, nil
	}

	if err := os.WriteFile(opts.CommitMsgPath, []byte(message+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write commit message file: %w", err)
	}
	h.log.Debug("wrote generated message to %s", opts.CommitMsgPath)

	return message, nil
}
