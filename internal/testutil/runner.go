// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"grimm.is/vrrpsetup/internal/host"
)

// Response is a canned command result.
type Response struct {
	Output string
	Err    error
}

// FakeRunner records commands instead of executing them. Responses are
// matched on the full command line first, then on the program name.
// Unmatched commands succeed with no output.
type FakeRunner struct {
	mu        sync.Mutex
	calls     []string
	Responses map[string]Response
	// Missing lists programs LookPath reports as absent.
	Missing map[string]bool
	// OnRun, if set, is called after a command is recorded.
	OnRun func(cmdline string)
}

var _ host.Runner = (*FakeRunner)(nil)

// NewFakeRunner returns a runner where every command succeeds.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: make(map[string]Response),
		Missing:   make(map[string]bool),
	}
}

// Fail makes cmdline (or program name) fail with the given output.
func (f *FakeRunner) Fail(cmdline, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[cmdline] = Response{Output: output, Err: fmt.Errorf("%s: exit status 1", cmdline)}
}

// Reply makes cmdline (or program name) succeed with output.
func (f *FakeRunner) Reply(cmdline, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[cmdline] = Response{Output: output}
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmdline := host.CommandLine(name, args...)

	f.mu.Lock()
	f.calls = append(f.calls, cmdline)
	resp, ok := f.Responses[cmdline]
	if !ok {
		resp = f.Responses[name]
	}
	hook := f.OnRun
	f.mu.Unlock()

	if hook != nil {
		hook(cmdline)
	}
	return []byte(resp.Output), resp.Err
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// Calls returns the recorded command lines in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Count returns how many recorded command lines start with prefix.
func (f *FakeRunner) Count(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// FakeAccounts is an in-memory account database. Accounts created through
// a FakeRunner's useradd call can be added with Observe.
type FakeAccounts struct {
	mu    sync.Mutex
	users map[string]bool
	Err   error
}

// NewFakeAccounts returns a database containing names.
func NewFakeAccounts(names ...string) *FakeAccounts {
	a := &FakeAccounts{users: make(map[string]bool)}
	for _, n := range names {
		a.users[n] = true
	}
	return a
}

// Lookup satisfies host.AccountLookup.
func (a *FakeAccounts) Lookup(name string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return false, a.Err
	}
	return a.users[name], nil
}

// Observe records accounts created by a useradd command line.
func (a *FakeAccounts) Observe(cmdline string) {
	if !strings.HasPrefix(cmdline, "useradd ") {
		return
	}
	fields := strings.Fields(cmdline)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[fields[len(fields)-1]] = true
}
