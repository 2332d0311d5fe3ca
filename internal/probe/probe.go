// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package probe reports which role the daemon actually assumed after a
// restart. It combines the daemon's own state transitions from the journal
// with whether the floating address is bound locally. The result is
// advisory; a probe never fails a run.
package probe

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jonboulle/clockwork"

	"grimm.is/vrrpsetup/internal/brand"
	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/host"
	"grimm.is/vrrpsetup/internal/logging"
)

// DefaultSettleDelay gives the daemon time to finish its first election.
const DefaultSettleDelay = 5 * time.Second

// JournalLines is how much of the daemon's journal is inspected.
const JournalLines = 50

// State is the observed role of this node.
type State int

const (
	Inconclusive State = iota
	Primary
	Secondary
)

func (s State) String() string {
	switch s {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "inconclusive"
	}
}

// Journal markers, as the daemon logs them.
const (
	MarkerMaster = "MASTER"
	MarkerBackup = "BACKUP"
	MarkerFault  = "FAULT"
)

var markerRegex = regexp.MustCompile(`Entering (MASTER|BACKUP|FAULT) STATE`)

// Status is the outcome of a probe.
type Status struct {
	State State
	// Marker is the last state transition found in the journal, or "".
	Marker string
	// AddressBound reports whether the floating address is on the
	// interface. Only meaningful when AddressChecked is true.
	AddressBound   bool
	AddressChecked bool
	Message        string
}

// AddressChecker reports whether an address is assigned to an interface.
type AddressChecker interface {
	HasAddress(iface, addr string) (bool, error)
}

// Prober inspects the node after the daemon was restarted.
type Prober struct {
	systemd     host.Systemd
	addrs       AddressChecker
	clock       clockwork.Clock
	settleDelay time.Duration
	log         *logging.Logger
}

// New creates a prober reading the daemon's journal through r.
func New(r host.Runner, addrs AddressChecker, clock clockwork.Clock) *Prober {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Prober{
		systemd:     host.Systemd{Runner: r, Unit: brand.DaemonUnit},
		addrs:       addrs,
		clock:       clock,
		settleDelay: DefaultSettleDelay,
		log:         logging.WithComponent("probe"),
	}
}

// SetSettleDelay overrides DefaultSettleDelay. Zero disables the wait.
func (p *Prober) SetSettleDelay(d time.Duration) {
	p.settleDelay = d
}

// Probe waits for the settle delay and then reports the node's state for
// the model that was just applied. A cancelled context ends the wait early
// with an inconclusive result.
func (p *Prober) Probe(ctx context.Context, m cluster.Model) Status {
	if p.settleDelay > 0 {
		p.log.Debug("waiting for election to settle", "delay", p.settleDelay)
		select {
		case <-p.clock.After(p.settleDelay):
		case <-ctx.Done():
			return Status{State: Inconclusive, Message: "probe cancelled"}
		}
	}

	var marker string
	journal, err := p.systemd.JournalTail(ctx, JournalLines)
	if err != nil {
		p.log.Warn("cannot read daemon journal", "error", err)
	} else {
		marker = ParseJournal(journal)
	}

	var bound, checked bool
	if p.addrs != nil {
		bound, err = p.addrs.HasAddress(m.Node.Interface, m.Shared.FloatingAddress)
		if err != nil {
			p.log.Warn("cannot check floating address", "interface", m.Node.Interface, "error", err)
		} else {
			checked = true
		}
	}

	status := Combine(marker, bound, checked)
	p.log.Info("probe finished", "state", status.State, "marker", marker, "address_bound", bound)
	return status
}

// ParseJournal returns the last state marker in the journal text, or ""
// when there is none.
func ParseJournal(text string) string {
	matches := markerRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// Combine derives the node state from the journal marker and the address
// check. Both signals must agree; anything else is inconclusive.
func Combine(marker string, bound, checked bool) Status {
	s := Status{Marker: marker, AddressBound: bound, AddressChecked: checked}

	switch {
	case marker == MarkerFault:
		s.Message = "daemon is in FAULT state; the health probe is failing or the interface is down"
	case marker == "" && !checked:
		s.Message = "no state transition in the journal and the address could not be checked"
	case marker == "":
		s.Message = "no state transition in the journal yet"
	case !checked:
		s.Message = fmt.Sprintf("journal reports %s but the address could not be checked", marker)
	case marker == MarkerMaster && bound:
		s.State = Primary
		s.Message = "this node holds the floating address"
	case marker == MarkerBackup && !bound:
		s.State = Secondary
		s.Message = "this node is standing by"
	case marker == MarkerMaster:
		s.Message = "journal reports MASTER but the floating address is not bound"
	default:
		s.Message = "journal reports BACKUP but the floating address is bound"
	}
	return s
}
