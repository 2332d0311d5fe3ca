// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package host

import (
	"bytes"
	"context"
	"fmt"
)

// Systemd drives systemctl for one unit.
type Systemd struct {
	Runner Runner
	Unit   string
}

// Enable makes the unit start at boot.
func (s Systemd) Enable(ctx context.Context) error {
	return s.run(ctx, "enable", s.Unit)
}

// Restart restarts the unit so it rereads its configuration.
func (s Systemd) Restart(ctx context.Context) error {
	return s.run(ctx, "restart", s.Unit)
}

// IsActive reports whether the unit is running.
func (s Systemd) IsActive(ctx context.Context) bool {
	_, err := s.Runner.Run(ctx, "systemctl", "is-active", "--quiet", s.Unit)
	return err == nil
}

// JournalTail returns the last n journal lines of the unit, message text
// only.
func (s Systemd) JournalTail(ctx context.Context, n int) (string, error) {
	out, err := s.Runner.Run(ctx, "journalctl", "-u", s.Unit, "-n", fmt.Sprint(n), "--no-pager", "-o", "cat")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s Systemd) run(ctx context.Context, args ...string) error {
	if out, err := s.Runner.Run(ctx, "systemctl", args...); err != nil {
		return fmt.Errorf("%w: %s", err, lastLine(out))
	}
	return nil
}

func lastLine(out []byte) string {
	out = bytes.TrimSpace(out)
	if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}
	if len(out) == 0 {
		return "no output"
	}
	return string(out)
}

