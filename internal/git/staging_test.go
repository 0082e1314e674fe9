package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftmsg.dev/draftmsg/internal/git"
	"draftmsg.dev/draftmsg/testhelpers"
)

func TestStagedDiff(t *testing.T) {
	t.Run("empty when nothing is staged", func(t *testing.T) {
		repo := testhelpers.NewGitRepo(t)
		runner := git.NewCommandRunner(repo.Dir)

		diff, err := runner.StagedDiff(context.Background())
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("contains staged content", func(t *testing.T) {
		repo := testhelpers.NewGitRepo(t)
		repo.WriteFile("foo.txt", "hello world\n")
		repo.Stage("foo.txt")

		runner := git.NewCommandRunner(repo.Dir)
		diff, err := runner.StagedDiff(context.Background())
		require.NoError(t, err)
		assert.Contains(t, diff, "+hello world")
		assert.Contains(t, diff, "foo.txt")
	})

	t.Run("excludes unstaged changes", func(t *testing.T) {
		repo := testhelpers.NewGitRepo(t)
		repo.WriteFile("foo.txt", "first\n")
		repo.Stage("foo.txt")
		repo.Commit("init")

		repo.WriteFile("foo.txt", "second\n")

		runner := git.NewCommandRunner(repo.Dir)
		diff, err := runner.StagedDiff(context.Background())
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("fails outside a repository", func(t *testing.T) {
		runner := git.NewCommandRunner(t.TempDir())
		_, err := runner.StagedDiff(context.Background())
		require.Error(t, err)
	})
}

func TestHasStagedChanges(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	runner := git.NewCommandRunner(repo.Dir)

	staged, err := runner.HasStagedChanges(context.Background())
	require.NoError(t, err)
	assert.False(t, staged)

	repo.WriteFile("foo.txt", "content\n")
	repo.Stage("foo.txt")

	staged, err = runner.HasStagedChanges(context.Background())
	require.NoError(t, err)
	assert.True(t, staged)
}
