package history

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitLog enumerates revisions of a file tracked in a git repository by
// shelling out to git. Each commit touching the file is one snapshot; the
// committer instant is the snapshot's reference instant.
type GitLog struct {
	repoDir  string
	artifact string // path of the tracked file, relative to the repo root
}

// Compile-time interface check.
var _ Provider = (*GitLog)(nil)

// NewGitLog creates a provider for one tracked artifact.
func NewGitLog(repoDir, artifact string) *GitLog {
	return &GitLog{repoDir: repoDir, artifact: artifact}
}

// List returns one ref per commit that touched the artifact, oldest first.
func (g *GitLog) List(ctx context.Context) ([]SnapshotRef, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", g.repoDir,
		"log", "--reverse", "--format=%H %cI", "--", g.artifact)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git log %s: %w: %s", g.artifact, err, strings.TrimSpace(stderr.String()))
	}

	var refs []SnapshotRef
	for _, line := range strings.Split(out.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hash, instant, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		commitTime, err := time.Parse(time.RFC3339, instant)
		if err != nil {
			continue
		}
		refs = append(refs, SnapshotRef{ID: hash, CommitTime: commitTime})
	}
	return refs, nil
}

// Payload returns the artifact contents at one revision.
func (g *GitLog) Payload(ctx context.Context, ref SnapshotRef) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", g.repoDir,
		"show", ref.ID+":"+g.artifact)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git show %s:%s: %w: %s", ref.ID, g.artifact, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
