// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"strconv"

	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/config"
	"grimm.is/vrrpsetup/internal/validation"
)

// Inputs are the raw values bound to the form fields. Everything is text
// until Model runs the validators.
type Inputs struct {
	Role        string
	Interface   string
	Priority    string
	NoPreempt   bool
	GroupID     string
	Secret      string
	SecretAgain string
	Address     string
	Prefix      string
	TimeSync    bool
	// ResolverUnit is not prompted for; it comes from the answers file.
	ResolverUnit string
}

// InputsFromAnswers pre-fills the form from an answers file. A nil
// answers file yields empty inputs.
func InputsFromAnswers(a *config.Answers) Inputs {
	var in Inputs
	if a == nil {
		return in
	}
	if role, err := validation.ParseRole(a.Role); err == nil {
		in.Role = string(role)
	}
	in.Interface = a.Interface
	if a.Priority != nil {
		in.Priority = strconv.Itoa(*a.Priority)
	}
	in.NoPreempt = a.NoPreempt
	in.TimeSync = a.TimeSync
	in.ResolverUnit = a.ResolverUnit
	if s := a.Shared; s != nil {
		if s.GroupID != nil {
			in.GroupID = strconv.Itoa(*s.GroupID)
		}
		in.Secret = s.AuthSecret
		in.SecretAgain = s.AuthSecret
		in.Address = s.FloatingAddress
		if s.PrefixLength != nil {
			in.Prefix = strconv.Itoa(*s.PrefixLength)
		}
	}
	return in
}

// Model validates the inputs and builds the cluster model. The form
// validators have already checked each field; this is the final pass.
func (in Inputs) Model(lister validation.InterfaceLister) (*cluster.Model, error) {
	var m cluster.Model
	var err error

	if m.Node.Role, err = validation.ParseRole(in.Role); err != nil {
		return nil, err
	}
	if m.Node.Interface, err = validation.ValidateInterface(in.Interface, lister); err != nil {
		return nil, err
	}
	if m.Node.Priority, err = validation.ParsePriority(in.Priority); err != nil {
		return nil, err
	}
	m.Node.NoPreempt = in.NoPreempt

	if m.Shared.GroupID, err = validation.ParseGroupID(in.GroupID); err != nil {
		return nil, err
	}
	if m.Shared.AuthSecret, err = validation.ConfirmSecret(in.Secret, in.SecretAgain); err != nil {
		return nil, err
	}
	if m.Shared.FloatingAddress, err = validation.ParseFloatingAddress(in.Address); err != nil {
		return nil, err
	}
	if m.Shared.PrefixLength, err = validation.ParsePrefixLength(in.Prefix); err != nil {
		return nil, err
	}

	m.Health = cluster.HealthCheckPolicy{ResolverUnit: in.ResolverUnit, TimeSyncMonitoring: in.TimeSync}
	if in.ResolverUnit != "" {
		if err := validation.ValidateUnitName(in.ResolverUnit); err != nil {
			return nil, err
		}
	}

	m.Normalize()
	return &m, nil
}
