// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package tui is the interactive front end: a huh form that collects the
// node and cluster settings, plus renderers for the preview and the apply
// report.
package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/validation"
)

// ErrAborted is returned when the operator leaves the form.
var ErrAborted = errors.New("aborted by operator")

// Wizard prompts for every setting. Invalid entries are rejected in place
// and the field is asked again.
type Wizard struct {
	lister validation.InterfaceLister
	theme  *huh.Theme
}

// NewWizard creates a wizard that checks interfaces against lister.
func NewWizard(lister validation.InterfaceLister) *Wizard {
	return &Wizard{lister: lister, theme: huh.ThemeBase16()}
}

func (w *Wizard) run(groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithTheme(w.theme).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Run asks for the settings, starting from the values already in in, and
// returns the validated model.
func (w *Wizard) Run(in *Inputs) (*cluster.Model, error) {
	if in.Role == "" {
		in.Role = string(cluster.RolePrimary)
	}
	if err := w.run(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Role of this node").
			Description("The primary holds the floating address while it is healthy.").
			Options(
				huh.NewOption("Primary (MASTER)", string(cluster.RolePrimary)),
				huh.NewOption("Secondary (BACKUP)", string(cluster.RoleSecondary)),
			).
			Value(&in.Role),
	)); err != nil {
		return nil, err
	}

	role, err := validation.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if in.Priority == "" {
		in.Priority = strconv.Itoa(role.DefaultPriority())
	}

	v := Validators(w.lister, &in.Secret)

	var suggestions []string
	if w.lister != nil {
		suggestions, _ = w.lister.Interfaces()
	}

	node := huh.NewGroup(
		huh.NewInput().
			Title("Network interface").
			Description("Interface that carries the floating address.").
			Suggestions(suggestions).
			Validate(v[validation.FieldInterface]).
			Value(&in.Interface),
		huh.NewInput().
			Title("Priority").
			Description("1-255. The higher priority wins; use 101 on the primary and 100 on the secondary.").
			Validate(v[validation.FieldPriority]).
			Value(&in.Priority),
	).Title("This node")

	preempt := huh.NewGroup(
		huh.NewConfirm().
			Title("Keep the floating address after the primary recovers?").
			Description("Adds nopreempt: avoids a second failover at the cost of not returning to the primary.").
			Value(&in.NoPreempt),
	).WithHideFunc(func() bool { return role != cluster.RoleSecondary })

	shared := huh.NewGroup(
		huh.NewInput().
			Title("Failover group id").
			Description("0-255, identical on both nodes and unique on the network segment.").
			Validate(v[validation.FieldGroupID]).
			Value(&in.GroupID),
		huh.NewInput().
			Title("Shared secret").
			Description("Identical on both nodes. Only the first 8 characters are used.").
			EchoMode(huh.EchoModePassword).
			Validate(v[validation.FieldAuthSecret]).
			Value(&in.Secret),
		huh.NewInput().
			Title("Shared secret (again)").
			EchoMode(huh.EchoModePassword).
			Validate(v[validation.FieldAuthSecret+" confirmation"]).
			Value(&in.SecretAgain),
		huh.NewInput().
			Title("Floating address").
			Description("IPv4 address that moves between the nodes, e.g. 192.168.0.5.").
			Validate(v[validation.FieldFloatingAddress]).
			Value(&in.Address),
		huh.NewInput().
			Title("Prefix length").
			Description("1-32, e.g. 24.").
			Validate(v[validation.FieldPrefixLength]).
			Value(&in.Prefix),
	).Title("Both nodes")

	health := huh.NewGroup(
		huh.NewConfirm().
			Title("Also require a synchronized clock?").
			Description("Installs chrony and treats the node as unhealthy while it reports a leap status other than Normal.").
			Value(&in.TimeSync),
	).Title("Health probe")

	if err := w.run(node, preempt, shared, health); err != nil {
		return nil, err
	}
	return in.Model(w.lister)
}

// Confirm asks a yes/no question, defaulting to no.
func (w *Wizard) Confirm(title, description string) (bool, error) {
	var ok bool
	err := w.run(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Apply").
			Negative("Cancel").
			Value(&ok),
	))
	return ok, err
}
