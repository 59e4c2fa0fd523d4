// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

//go:build !windows

package watch

import (
	"os/exec"
	"syscall"
)

// detach configures cmd to survive the spawning process's exit by starting
// it in its own session.
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}
