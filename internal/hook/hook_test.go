package hook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftmsg.dev/draftmsg/internal/config"
	draftmsgerrors "draftmsg.dev/draftmsg/internal/errors"
	"draftmsg.dev/draftmsg/internal/tui"
)

type stubDiff struct {
	diff  string
	err   error
	calls int
}

func (s *stubDiff) StagedDiff(_ context.Context) (string, error) {
	s.calls++
	return s.diff, s.err
}

type stubGen struct {
	resp  any
	err   error
	calls int
}

func (s *stubGen) Generate(_ context.Context, _ string) (any, error) {
	s.calls++
	return s.resp, s.err
}

// geminiResponse builds the current generateContent response shape
// around the given text
func geminiResponse(text string) any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"text": text},
					},
				},
			},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		APIKey:           "test-key",
		Model:            config.DefaultModel,
		MaxAttempts:      config.DefaultMaxAttempts,
		TransientMarkers: config.DefaultTransientMarkers,
	}
}

func TestRun_SkipsUserSuppliedSources(t *testing.T) {
	for _, source := range []string{"message", "commit", "Message", "COMMIT"} {
		t.Run(source, func(t *testing.T) {
			diff := &stubDiff{diff: "+change"}
			gen := &stubGen{resp: geminiResponse("feat: x")}
			h := New(testConfig(), diff, gen, tui.NewSplog())

			target := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
			msg, err := h.Run(context.Background(), Options{
				CommitMsgPath: target,
				CommitSource:  source,
			})

			require.NoError(t, err)
			assert.Empty(t, msg)
			assert.Zero(t, diff.calls, "diff must not be collected")
			assert.Zero(t, gen.calls, "model must not be called")
			assert.NoFileExists(t, target)
		})
	}
}

func TestRun_MissingCredentialFailsBeforeAnySubprocess(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	diff := &stubDiff{diff: "+change"}
	gen := &stubGen{resp: geminiResponse("feat: x")}
	h := New(cfg, diff, gen, tui.NewSplog())

	_, err := h.Run(context.Background(), Options{CommitMsgPath: "unused"})

	require.ErrorIs(t, err, draftmsgerrors.ErrMissingAPIKey)
	assert.Zero(t, diff.calls, "credential check must precede diff collection")
	assert.Zero(t, gen.calls)
}

func TestRun_EmptyDiffIsNoOp(t *testing.T) {
	for _, diffText := range []string{"", "   \n\t\n"} {
		diff := &stubDiff{diff: diffText}
		gen := &stubGen{}
		h := New(testConfig(), diff, gen, tui.NewSplog())

		msg, err := h.Run(context.Background(), Options{CommitMsgPath: "unused"})

		require.NoError(t, err)
		assert.Empty(t, msg)
		assert.Zero(t, gen.calls)
	}
}

func TestRun_DiffFailureDegradesToNoOp(t *testing.T) {
	diff := &stubDiff{err: errors.New("git not found")}
	gen := &stubGen{}
	h := New(testConfig(), diff, gen, tui.NewSplog())

	msg, err := h.Run(context.Background(), Options{CommitMsgPath: "unused"})

	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Zero(t, gen.calls)
}

func TestRun_DryRunGeneratesMessage(t *testing.T) {
	diff := &stubDiff{diff: "diff --git a/foo.py b/foo.py\n+print(\"hello\")\n"}
	gen := &stubGen{resp: geminiResponse("feat: add hello print\n\nAdd print statement to foo")}
	h := New(testConfig(), diff, gen, tui.NewSplog())

	target := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	msg, err := h.Run(context.Background(), Options{
		CommitMsgPath: target,
		DryRun:        true,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "feat:"), "message should start with a Conventional Commits type")
	assert.Contains(t, msg, "hello")
	assert.NoFileExists(t, target, "dry run must not write the file")
}

func TestRun_WritesFileWithTrailingNewline(t *testing.T) {
	diff := &stubDiff{diff: "+change"}
	gen := &stubGen{resp: geminiResponse("fix: correct off by one")}
	h := New(testConfig(), diff, gen, tui.NewSplog())

	target := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	msg, err := h.Run(context.Background(), Options{CommitMsgPath: target})

	require.NoError(t, err)
	assert.Equal(t, "fix: correct off by one", msg)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fix: correct off by one\n", string(written))
}

func TestRun_SanitizesWrappedResponse(t *testing.T) {
	diff := &stubDiff{diff: "+change"}
	gen := &stubGen{resp: geminiResponse("```feat: x```")}
	h := New(testConfig(), diff, gen, tui.NewSplog())

	msg, err := h.Run(context.Background(), Options{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, "feat: x", msg)
}

func TestRun_EmptyModelOutputIsFatal(t *testing.T) {
	diff := &stubDiff{diff: "+change"}
	gen := &stubGen{resp: map[string]any{"text": ""}}
	h := New(testConfig(), diff, gen, tui.NewSplog())

	_, err := h.Run(context.Background(), Options{DryRun: true})

	require.ErrorIs(t, err, draftmsgerrors.ErrEmptyMessage)
}

func TestRun_ServiceUnavailableDegradesToNoOp(t *testing.T) {
	diff := &stubDiff{diff: "+change"}
	gen := &stubGen{err: fmt.Errorf("%w: 503", draftmsgerrors.ErrServiceUnavailable)}
	h := New(testConfig(), diff, gen, tui.NewSplog())

	msg, err := h.Run(context.Background(), Options{DryRun: true})

	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestRun_NonTransientFailureSurfaces(t *testing.T) {
	diff := &stubDiff{diff: "+change"}
	genErr := draftmsgerrors.NewGenerationError("gemini-2.5-flash", errors.New("invalid api key"))
	gen := &stubGen{err: genErr}
	h := New(testConfig(), diff, gen, tui.NewSplog())

	_, err := h.Run(context.Background(), Options{DryRun: true})

	require.Error(t, err)
	var target *draftmsgerrors.GenerationError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 1, gen.calls)
}

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"", false},
		{"message", true},
		{"commit", true},
		{"MESSAGE", true},
		{"template", false},
		{"merge", false},
		{"squash", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShouldSkip(tt.source), "source %q", tt.source)
	}
}
