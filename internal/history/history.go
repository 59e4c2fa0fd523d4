// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package history mines the project's version-control log: per-path commit
// counts, last-modified timestamps, and contributor sets; and extracts
// "decision" commits by message prefix/keyword.
package history

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// maxCommits caps the walk for performance.
const maxCommits = 1000

const commitSep = "\x1f"
const recordSep = "\x1e"

// Result summarizes one mining pass.
type Result struct {
	NotARepository bool
	CommitsWalked int
	FilesWithStats int
	DecisionsFound int
}

type fileAccum struct {
	commitCount int64
	lastModified string
	contributors map[string]bool
}

// Mine walks the log (newest first, capped at maxCommits), accumulates
// per-path stats, inserts qualifying decisions, and upserts file_stats for
// every path the store already tracks. If the project root is not a
// version-control repository it returns a structured result rather than
// failing the enclosing command.
func Mine(s *store.Store, repoRoot string) (Result, error) {
	if !isGitRepo(repoRoot) {
		slog.Debug("history.mine.skipped", "reason", "not a git repository", "root", repoRoot)
		return Result{NotARepository: true}, nil
	}

	out, err := runGitLog(repoRoot)
	if err != nil {
		slog.Warn("history.gitlog.error", "err", err)
		return Result{}, err
	}

	stats := map[string]*fileAccum{}
	var res Result

	for _, commit := range out {
		res.CommitsWalked++

		changed, err := diffPaths(repoRoot, commit.hash)
		if err != nil {
			continue
		}

		for _, path := range changed {
			acc, ok := stats[path]
			if !ok {
				acc = &fileAccum{contributors: map[string]bool{}}
				stats[path] = acc
			}
			acc.commitCount++
			acc.contributors[commit.author] = true
			if acc.lastModified == "" {
				acc.lastModified = commit.timestamp
			}
		}

		if isDecisionCommit(commit.message) {
			hash := commit.hash
			if err := s.InsertDecision(strings.TrimSpace(commit.message), store.SourceCommit, &hash, changed); err == nil {
				res.DecisionsFound++
			}
		}
	}

	var maxCount int64 = 1
	for _, acc := range stats {
		if acc.commitCount > maxCount {
			maxCount = acc.commitCount
		}
	}

	for path, acc := range stats {
		fileID, err := s.GetFileID(path)
		if err != nil || fileID == nil {
			continue
		}
		churn := float64(acc.commitCount) / float64(maxCount)
		var lastModified *string
		if acc.lastModified != "" {
			lm := acc.lastModified
			lastModified = &lm
		}
		if err := s.UpsertFileStats(*fileID, acc.commitCount, lastModified, churn, int64(len(acc.contributors))); err == nil {
			res.FilesWithStats++
		}
	}

	slog.Info("history.mine.complete",
		"commits_walked", res.CommitsWalked, "files_with_stats", res.FilesWithStats,
		"decisions_found", res.DecisionsFound)

	return res, nil
}

// isDecisionCommit qualifies a commit by message prefix/keyword.
func isDecisionCommit(message string) bool {
	if message == "" {
		return false
	}
	if strings.HasPrefix(message, "feat:") || strings.HasPrefix(message, "feat(") ||
		strings.HasPrefix(message, "refactor:") || strings.HasPrefix(message, "refactor(") {
		return true
	}
	for _, kw := range []string{"BREAKING", "migration", "replace", "switch to", "switch from"} {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

type commitRecord struct {
	hash string
	author string
	timestamp string
	message string
}

func isGitRepo(repoRoot string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = repoRoot
	return cmd.Run() == nil
}

// runGitLog reads the commit log newest-first, capped at maxCommits,
// formatted as hash/author/timestamp/message records delimited by ASCII
// unit/record separators so multi-line commit messages survive intact.
func runGitLog(repoRoot string) ([]commitRecord, error) {
	cmd := exec.Command("git", "log",
		"--max-count="+strconv.Itoa(maxCommits),
		"--date=format:%Y-%m-%d %H:%M:%S",
		"--pretty=format:%H"+commitSep+"%an"+commitSep+"%ad"+commitSep+"%B"+recordSep,
	)
	cmd.Dir = repoRoot
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}

	var records []commitRecord
	for _, rec := range strings.Split(out.String(), recordSep) {
		rec = strings.TrimPrefix(rec, "\n")
		if strings.TrimSpace(rec) == "" {
			continue
		}
		parts := strings.SplitN(rec, commitSep, 4)
		if len(parts) != 4 {
			continue
		}
		records = append(records, commitRecord{
			hash: parts[0], author: parts[1], timestamp: parts[2],
			message: strings.TrimRight(parts[3], "\n"),
		})
	}
	return records, nil
}

// diffPaths computes the set of paths touched by commit vs. its first
// parent, or vs. the empty tree for root commits.
func diffPaths(repoRoot, commitHash string) ([]string, error) {
	const emptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

	parent, err := firstParent(repoRoot, commitHash)
	base := emptyTree
	if err == nil && parent != "" {
		base = parent
	}

	cmd := exec.Command("git", "diff", "--name-only", base, commitHash)
	cmd.Dir = repoRoot
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}

	var paths []string
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

func firstParent(repoRoot, commitHash string) (string, error) {
	cmd := exec.Command("git", "rev-parse", commitHash+"^")
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
