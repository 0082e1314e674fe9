package git

import (
	"context"
	"strings"
)

// StagedDiff returns the textual diff of currently staged changes.
// The output is returned untrimmed; an empty string means nothing is staged.
func (r *CommandRunner) StagedDiff(ctx context.Context) (string, error) {
	return r.RunRaw(ctx, "diff", "--staged")
}

// HasStagedChanges checks if there are staged changes
func (r *CommandRunner) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := r.Run(ctx, "diff", "--staged", "--shortstat")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}
