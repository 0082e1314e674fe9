package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"draftmsg.dev/draftmsg/internal/git"
	"draftmsg.dev/draftmsg/internal/tui"
)

const hookName = "prepare-commit-msg"

// hookMarker identifies hooks written by us, so uninstall never deletes
// a hook somebody else put there
const hookMarker = "# Installed by draftmsg."

// newInstallCmd creates the install command
func newInstallCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install draftmsg as the prepare-commit-msg hook for this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return installHook(force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing hook without asking")

	return cmd
}

// newUninstallCmd creates the uninstall command
func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the draftmsg prepare-commit-msg hook from this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return uninstallHook()
		},
	}
}

func installHook(force bool) error {
	splog := tui.NewSplog()
	defer func() { _ = splog.Close() }()

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return err
	}
	hookPath := filepath.Join(git.HooksDir(repoRoot), hookName)

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	if _, err := os.Stat(hookPath); err == nil && !force {
		existing, readErr := os.ReadFile(hookPath)
		// Reinstalling over our own hook needs no confirmation
		ours := readErr == nil && strings.Contains(string(existing), hookMarker)
		if !ours {
			overwrite := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("A %s hook already exists. Overwrite it?", hookName),
			}
			if err := survey.AskOne(prompt, &overwrite); err != nil {
				return fmt.Errorf("canceled")
			}
			if !overwrite {
				return fmt.Errorf("hook already exists at %s", hookPath)
			}
		}
	}

	script := fmt.Sprintf("#!/bin/sh\n%s Generates commit messages from the staged diff.\nexec \"%s\" \"$@\"\n", hookMarker, exe)

	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}
	if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
		return fmt.Errorf("failed to write hook: %w", err)
	}

	splog.Info("Installed %s hook at %s", hookName, hookPath)
	return nil
}

func uninstallHook() error {
	splog := tui.NewSplog()
	defer func() { _ = splog.Close() }()

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return err
	}
	hookPath := filepath.Join(git.HooksDir(repoRoot), hookName)

	content, err := os.ReadFile(hookPath)
	if os.IsNotExist(err) {
		splog.Info("No %s hook installed", hookName)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read hook: %w", err)
	}

	if !strings.Contains(string(content), hookMarker) {
		return fmt.Errorf("hook at %s was not installed by draftmsg, refusing to remove it", hookPath)
	}

	if err := os.Remove(hookPath); err != nil {
		return fmt.Errorf("failed to remove hook: %w", err)
	}

	splog.Info("Removed %s hook at %s", hookName, hookPath)
	return nil
}
