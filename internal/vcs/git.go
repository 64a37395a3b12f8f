// Package vcs provides the git queries the review core depends on: branch
// enumeration, branch head resolution and diff computation. All operations
// shell out to the git binary in a fixed working directory.
package vcs

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DiffFile is one file of a diff with its raw patch lines.
type DiffFile struct {
	Path  string
	Lines []string
}

// DiffSet is a parsed git diff between two commits.
type DiffSet struct {
	Files []DiffFile
}

// Empty reports whether the diff touches no files.
func (d DiffSet) Empty() bool { return len(d.Files) == 0 }

// Runner executes git commands in a repository directory.
type Runner struct {
	Dir string // working directory for git commands
}

// NewRunner creates a Runner for the given repository path.
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir}
}

// Branches lists local branch names, sorted by git's ref order.
func (r *Runner) Branches() ([]string, error) {
	out, err := r.run("for-each-ref", "refs/heads", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("git branches: %w", err)
	}
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// BranchHeadSHA resolves the head commit of a local branch. A missing
// branch yields ok=false and no error; the error return is reserved for
// git invocation failures (no repository, unreadable refs).
func (r *Runner) BranchHeadSHA(branch string) (sha string, ok bool, err error) {
	out, err := r.run("rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	if err != nil {
		var exitErr *exec.ExitError
		// rev-parse --verify --quiet exits 1 for an unknown ref with no output
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("git rev-parse %s: %w", branch, err)
	}
	return strings.TrimSpace(out), true, nil
}

// DiffBetween computes the diff from base to target (both commit SHAs or
// refs), split per file.
func (r *Runner) DiffBetween(base, target string) (DiffSet, error) {
	out, err := r.run("diff", base+".."+target)
	if err != nil {
		return DiffSet{}, fmt.Errorf("git diff %s..%s: %w", base, target, err)
	}
	return parseDiff(out), nil
}

// SuggestBranch returns the closest existing branch name to the given one,
// or "" when nothing is within editing distance 3. Used to enrich
// branch-not-found messages.
func SuggestBranch(name string, branches []string) string {
	best := ""
	bestDist := 4
	for _, b := range branches {
		if d := levenshtein.ComputeDistance(name, b); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

func (r *Runner) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", msg, err)
	}
	return stdout.String(), nil
}

func parseDiff(out string) DiffSet {
	var set DiffSet
	var current *DiffFile
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			set.Files = append(set.Files, DiffFile{Path: pathFromHeader(line)})
			current = &set.Files[len(set.Files)-1]
			continue
		}
		if current != nil {
			current.Lines = append(current.Lines, line)
		}
	}
	// git terminates the output with a newline; drop the trailing blank
	if current != nil && len(current.Lines) > 0 && current.Lines[len(current.Lines)-1] == "" {
		current.Lines = current.Lines[:len(current.Lines)-1]
	}
	return set
}

// pathFromHeader extracts the b-side path from a "diff --git a/x b/x" line.
func pathFromHeader(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return line
	}
	return strings.TrimPrefix(fields[3], "b/")
}
