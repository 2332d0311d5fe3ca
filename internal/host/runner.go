// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package host wraps the external programs the tool drives: the package
// manager, useradd, systemctl and journalctl. Every call goes through a
// Runner so tests can substitute a fake.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands.
type Runner interface {
	// Run executes name with args and returns its combined output. A
	// non-zero exit status is reported as an error; the output is still
	// returned.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports where name is found in PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Env is appended to the current environment.
	Env []string
}

// NewExecRunner returns a runner that keeps package managers from
// prompting.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Env: []string{"DEBIAN_FRONTEND=noninteractive"}}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w", CommandLine(name, args...), err)
	}
	return out, nil
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// CommandLine formats a command for logs and hints.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// ExitCode extracts the exit status from a Run error, or -1 when the
// command did not run to completion.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
