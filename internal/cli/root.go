// Package cli wires the cobra commands for the draftmsg binary.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"draftmsg.dev/draftmsg/internal/config"
	draftmsgerrors "draftmsg.dev/draftmsg/internal/errors"
	"draftmsg.dev/draftmsg/internal/gemini"
	"draftmsg.dev/draftmsg/internal/git"
	"draftmsg.dev/draftmsg/internal/hook"
	"draftmsg.dev/draftmsg/internal/tui"
)

// NewRootCmd creates the root cobra command. The root command carries
// the hook behavior itself so that Git can invoke the binary directly
// as .git/hooks/prepare-commit-msg.
func NewRootCmd(version, commit, date string) *cobra.Command {
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "draftmsg <commit-msg-file> [commit-source] [sha1]",
		Short: "Generate Conventional Commits messages from the staged diff",
		Long: `Draftmsg is a prepare-commit-msg Git hook that asks Gemini to compose a
Conventional Commits formatted message from the staged diff.

Git invokes the hook with the commit message file path, an optional
commit source, and an optional object name. When the commit source
indicates a user-supplied message (-m or --amend), the hook is a no-op.`,
		Args:          cobra.RangeArgs(1, 3),
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			commitSource := ""
			if len(args) >= 2 {
				commitSource = args[1]
			}
			// args[2], the object name, is accepted and ignored
			return runHook(cmd, args[0], commitSource, dryRun)
		},
	}

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the generated message instead of writing the commit message file")

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())

	return rootCmd
}

func runHook(cmd *cobra.Command, commitMsgPath, commitSource string, dryRun bool) error {
	splog := tui.NewSplog()
	defer func() { _ = splog.Close() }()

	// Repo discovery is best effort: outside a repository the hook still
	// runs with default configuration.
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		repoRoot = ""
	}

	cfg, err := config.Load(config.Options{RepoRoot: repoRoot})
	if err != nil {
		return err
	}

	client := gemini.NewClient(cfg, splog)
	h := hook.New(cfg, git.NewCommandRunner(""), client, splog)

	message, err := h.Run(cmd.Context(), hook.Options{
		CommitMsgPath: commitMsgPath,
		CommitSource:  commitSource,
		DryRun:        dryRun,
	})
	if err != nil {
		return err
	}

	if dryRun && message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), message)
	}

	return nil
}

// ExitCode maps an error returned by Execute to the process exit code:
// 0 success, 1 configuration error (missing credential), 2 any other
// runtime failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, draftmsgerrors.ErrMissingAPIKey):
		return 1
	default:
		return 2
	}
}
