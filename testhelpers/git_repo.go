// Package testhelpers provides throwaway Git repositories for tests.
package testhelpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// GitRepo represents a Git repository created for a single test.
type GitRepo struct {
	Dir string

	t *testing.T
}

// NewGitRepo initializes a new Git repository in a temporary directory.
// The repository is configured with a test user so commits work.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo := &GitRepo{Dir: dir, t: t}

	// Use git -c flags to avoid reading global config
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	require.NoError(t, cmd.Run(), "failed to init repo")

	repo.Git("config", "user.name", "Test User")
	repo.Git("config", "user.email", "test@example.com")

	return repo
}

// Git executes a git command in the repository directory and fails the
// test on error.
func (r *GitRepo) Git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	require.NoError(r.t, err, "git %v failed: %s", args, output)
	return string(output)
}

// WriteFile writes a file relative to the repository root.
func (r *GitRepo) WriteFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.Dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0644))
}

// Stage stages the given path.
func (r *GitRepo) Stage(name string) {
	r.t.Helper()
	r.Git("add", name)
}

// Commit commits all staged changes with the given message.
func (r *GitRepo) Commit(message string) {
	r.t.Helper()
	r.Git("commit", "-m", message)
}
