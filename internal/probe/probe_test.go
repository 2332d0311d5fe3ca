// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package probe

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/testutil"
)

type fakeAddrs struct {
	bound bool
	err   error
	calls int
}

func (f *fakeAddrs) HasAddress(iface, addr string) (bool, error) {
	f.calls++
	return f.bound, f.err
}

func model() cluster.Model {
	return cluster.Model{
		Node:   cluster.NodeConfig{Role: cluster.RolePrimary, Interface: "eth0", Priority: 101},
		Shared: cluster.SharedConfig{GroupID: 51, AuthSecret: "s3cr3t", FloatingAddress: "192.168.0.5", PrefixLength: 24},
	}
}

func TestParseJournal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"no markers", "Starting VRRP child process\nOpening file '/etc/keepalived/keepalived.conf'.\n", ""},
		{"legacy format", "VRRP_Instance(VI_51) Entering BACKUP STATE\n", MarkerBackup},
		{"last wins", "(VI_51) Entering BACKUP STATE\n(VI_51) Entering MASTER STATE\n", MarkerMaster},
		{"fault last", "(VI_51) Entering MASTER STATE\n(VI_51) Entering FAULT STATE\n", MarkerFault},
		{"fault recovered", "(VI_51) Entering FAULT STATE\n(VI_51) Entering BACKUP STATE (init)\n", MarkerBackup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJournal(tt.text))
		})
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		marker  string
		bound   bool
		checked bool
		want    State
	}{
		{MarkerMaster, true, true, Primary},
		{MarkerBackup, false, true, Secondary},
		{MarkerMaster, false, true, Inconclusive},
		{MarkerBackup, true, true, Inconclusive},
		{MarkerFault, false, true, Inconclusive},
		{MarkerFault, true, true, Inconclusive},
		{"", true, true, Inconclusive},
		{"", false, false, Inconclusive},
		{MarkerMaster, false, false, Inconclusive},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/bound=%v/checked=%v", tt.marker, tt.bound, tt.checked), func(t *testing.T) {
			s := Combine(tt.marker, tt.bound, tt.checked)
			assert.Equal(t, tt.want, s.State)
			assert.NotEmpty(t, s.Message)
		})
	}
}

func TestProbe_WaitsForSettleDelay(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Reply("journalctl", "(VI_51) Entering MASTER STATE\n")
	addrs := &fakeAddrs{bound: true}
	clock := clockwork.NewFakeClock()
	p := New(r, addrs, clock)

	done := make(chan Status, 1)
	go func() { done <- p.Probe(context.Background(), model()) }()

	clock.BlockUntil(1)
	assert.Empty(t, r.Calls(), "journal must not be read before the delay")
	clock.Advance(DefaultSettleDelay)

	select {
	case s := <-done:
		assert.Equal(t, Primary, s.State)
		assert.True(t, s.AddressChecked)
	case <-time.After(5 * time.Second):
		t.Fatal("probe did not finish after the settle delay")
	}
	assert.Equal(t, 1, addrs.calls)
	assert.Equal(t, 1, r.Count("journalctl -u keepalived -n 50"))
}

func TestProbe_DegradesOnErrors(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Fail("journalctl", "No journal files were found.")
	p := New(r, &fakeAddrs{err: fmt.Errorf("link not found")}, clockwork.NewFakeClock())
	p.SetSettleDelay(0)

	s := p.Probe(context.Background(), model())
	assert.Equal(t, Inconclusive, s.State)
	assert.False(t, s.AddressChecked)
	assert.Empty(t, s.Marker)
}

func TestProbe_Secondary(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Reply("journalctl", "(VI_51) Entering BACKUP STATE\n")
	p := New(r, &fakeAddrs{bound: false}, nil)
	p.SetSettleDelay(0)

	s := p.Probe(context.Background(), model())
	require.Equal(t, Secondary, s.State)
	assert.Equal(t, MarkerBackup, s.Marker)
}

func TestProbe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := testutil.NewFakeRunner()
	p := New(r, nil, clockwork.NewFakeClock())

	s := p.Probe(ctx, model())
	assert.Equal(t, Inconclusive, s.State)
	assert.Empty(t, r.Calls())
}
