// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// DisableEnvVar suppresses background-watch spawning when set.
const DisableEnvVar = "CTX_AGENT_DISABLE_AUTO_WATCH"

// AutoEnvVar is set by the spawner on the detached child, informationally.
const AutoEnvVar = "CTX_AGENT_AUTO_WATCH"

// lockFileName lives inside the store's hidden subdirectory and records the
// PID of the watcher currently claiming this project, using a
// lockfile-and-liveness scheme instead of scanning the process table.
const lockFileName = "watch.pid"

// SpawnIfNeeded detaches a `watch` child against projectRoot if auto-watch
// is not disabled and no live watcher already holds the project's lock.
// It is a no-op, not an error, whenever a watcher should not be started.
func SpawnIfNeeded(projectRoot, ctxDir string) error {
	if os.Getenv(DisableEnvVar) != "" {
		return nil
	}

	lockPath := filepath.Join(ctxDir, lockFileName)
	if running(lockPath) {
		return nil
	}

	logPath, err := logFilePath(projectRoot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	cmd := exec.Command(exe, "watch", "--project", projectRoot)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Env = append(os.Environ(), AutoEnvVar+"=1")
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}

	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(cmd.Process.Pid)), 0o644); err != nil {
		return err
	}

	go cmd.Wait() //nolint:errcheck // detached; nothing to report to

	return nil
}

// running reports whether the PID recorded at lockPath names a live process.
// A stale or missing lock is treated as "not running" so a new watcher can
// claim the project.
func running(lockPath string) bool {
	raw, err := os.ReadFile(lockPath)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return false
	}
	proc, err := ps.FindProcess(pid)
	return err == nil && proc != nil
}

// logFilePath derives the per-project log path from a hash of the
// canonical project root, under the user's home directory.
func logFilePath(projectRoot string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(projectRoot))
	name := hex.EncodeToString(sum[:])[:16]
	return filepath.Join(home, ".ctx-agent", "watch-logs", fmt.Sprintf("%s.log", name)), nil
}
