// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package apply turns a validated cluster model into a running daemon.
//
// Phases run strictly in order and the first fatal failure stops the run.
// Nothing is rolled back: every phase is idempotent, so the operator fixes
// the cause and runs the tool again.
package apply

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"

	"grimm.is/vrrpsetup/internal/brand"
	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/config"
	"grimm.is/vrrpsetup/internal/errors"
	"grimm.is/vrrpsetup/internal/healthcheck"
	"grimm.is/vrrpsetup/internal/host"
	"grimm.is/vrrpsetup/internal/install"
	"grimm.is/vrrpsetup/internal/keepalived"
	"grimm.is/vrrpsetup/internal/logging"
	"grimm.is/vrrpsetup/internal/probe"
	"grimm.is/vrrpsetup/internal/validation"
)

// Phase names one step of an apply.
type Phase string

const (
	PhaseInstall Phase = "install"
	PhaseAccount Phase = "account"
	PhaseScript  Phase = "script"
	PhaseConfig  Phase = "config"
	PhaseService Phase = "service"
	PhaseExport  Phase = "export"
	PhaseProbe   Phase = "probe"
)

// Prober reports the node's runtime state after the service phase.
type Prober interface {
	Probe(ctx context.Context, m cluster.Model) probe.Status
}

// Options configures an Orchestrator. Zero values select the real host.
type Options struct {
	Runner        host.Runner
	LookupAccount host.AccountLookup
	Lister        validation.InterfaceLister
	Prober        Prober
	Clock         clockwork.Clock
	Logger        *logging.Logger

	ScriptPath string
	ConfigPath string
	// ExportPath receives the shared settings after a successful apply.
	// Empty disables the export.
	ExportPath string
}

// Orchestrator applies a model to the host.
type Orchestrator struct {
	runner     host.Runner
	lookup     host.AccountLookup
	lister     validation.InterfaceLister
	prober     Prober
	clock      clockwork.Clock
	log        *logging.Logger
	systemd    host.Systemd
	scriptPath string
	configPath string
	exportPath string
}

// New creates an orchestrator. Unset paths fall back to the install
// package's locations.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		runner:     opts.Runner,
		lookup:     opts.LookupAccount,
		lister:     opts.Lister,
		prober:     opts.Prober,
		clock:      opts.Clock,
		log:        opts.Logger,
		scriptPath: opts.ScriptPath,
		configPath: opts.ConfigPath,
		exportPath: opts.ExportPath,
	}
	if o.runner == nil {
		o.runner = host.NewExecRunner()
	}
	if o.lookup == nil {
		o.lookup = host.LookupAccount
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	if o.log == nil {
		o.log = logging.WithComponent("apply")
	}
	if o.scriptPath == "" {
		o.scriptPath = install.GetHealthCheckScriptPath()
	}
	if o.configPath == "" {
		o.configPath = install.GetKeepalivedConfigPath()
	}
	o.systemd = host.Systemd{Runner: o.runner, Unit: brand.DaemonUnit}
	return o
}

// Render validates m and produces its artifacts without touching the host.
func (o *Orchestrator) Render(m *cluster.Model) (cluster.Artifacts, error) {
	m.Normalize()
	if err := validation.ValidateModel(m, o.lister); err != nil {
		return cluster.Artifacts{}, err
	}
	return cluster.Artifacts{
		ScriptPath: o.scriptPath,
		ScriptText: healthcheck.Synthesize(m.Health),
		ConfigPath: o.configPath,
		ConfigText: keepalived.Render(m.Node, m.Shared, o.scriptPath),
	}, nil
}

// Apply runs every phase for m. On a fatal failure the returned error
// carries the phase and a diagnostic hint as attributes, and the report
// lists the phases that ran. A model that fails validation is rejected
// before anything is written.
func (o *Orchestrator) Apply(ctx context.Context, m *cluster.Model) (*Report, error) {
	report := &Report{}

	art, err := o.Render(m)
	if err != nil {
		return report, err
	}

	phases := []struct {
		phase Phase
		kind  errors.Kind
		hint  string
		run   func(context.Context) (string, error)
	}{
		{PhaseInstall, errors.KindDependency, "check network access and the package manager's output above",
			func(ctx context.Context) (string, error) { return o.installPackages(ctx, m.Health) }},
		{PhaseAccount, errors.KindDependency, "create it by hand: " + host.CommandLine("useradd", host.SystemAccountArgs(brand.ScriptUser)...),
			o.ensureAccount},
		{PhaseScript, errors.KindWrite, "check that " + art.ScriptPath + " is writable by root",
			func(context.Context) (string, error) {
				return art.ScriptPath, writeArtifact(art.ScriptPath, art.ScriptText, cluster.ScriptMode)
			}},
		{PhaseConfig, errors.KindWrite, "check that " + art.ConfigPath + " is writable by root",
			func(context.Context) (string, error) {
				return art.ConfigPath, writeArtifact(art.ConfigPath, art.ConfigText, cluster.ConfigMode)
			}},
		{PhaseService, errors.KindService, "inspect the daemon log: journalctl -u " + brand.DaemonUnit + " -n 50",
			o.startService},
	}

	for _, p := range phases {
		start := o.clock.Now()
		o.log.Info("phase started", "phase", p.phase)

		detail, err := p.run(ctx)
		result := PhaseResult{Phase: p.phase, Duration: o.clock.Since(start), Detail: detail}
		if err != nil {
			result.Status = StatusFailed
			result.Detail = err.Error()
			report.add(result)
			o.log.Error("phase failed", "phase", p.phase, "error", err)

			wrapped := errors.Wrapf(err, p.kind, "%s failed", p.phase)
			wrapped = errors.Attr(wrapped, errors.AttrPhase, string(p.phase))
			return report, errors.Attr(wrapped, errors.AttrHint, p.hint)
		}
		result.Status = StatusOK
		report.add(result)
	}

	if o.exportPath != "" {
		start := o.clock.Now()
		result := PhaseResult{Phase: PhaseExport, Status: StatusOK, Detail: o.exportPath}
		if err := config.ExportShared(o.exportPath, m.Shared); err != nil {
			o.log.Warn("shared settings not exported", "path", o.exportPath, "error", err)
			result.Status = StatusWarning
			result.Detail = err.Error()
		}
		result.Duration = o.clock.Since(start)
		report.add(result)
	}

	if o.prober != nil {
		start := o.clock.Now()
		status := o.prober.Probe(ctx, *m)
		report.Probe = &status
		report.add(PhaseResult{
			Phase:    PhaseProbe,
			Status:   StatusOK,
			Duration: o.clock.Since(start),
			Detail:   status.State.String() + ": " + status.Message,
		})
	}

	return report, nil
}

func (o *Orchestrator) installPackages(ctx context.Context, policy cluster.HealthCheckPolicy) (string, error) {
	pm, err := host.DetectPackageManager(o.runner)
	if err != nil {
		return "", err
	}
	pkgs := append([]string{brand.DaemonName}, healthcheck.Packages(policy)...)

	warning, err := pm.InstallPackages(ctx, o.runner, pkgs...)
	if warning != nil {
		o.log.Warn("package index refresh failed", "manager", pm.Name, "error", warning)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", pm.Name, strings.Join(pkgs, ", ")), nil
}

func (o *Orchestrator) ensureAccount(ctx context.Context) (string, error) {
	created, err := host.EnsureSystemAccount(ctx, o.runner, o.lookup, brand.ScriptUser)
	if err != nil {
		return "", err
	}
	if created {
		return "created " + brand.ScriptUser, nil
	}
	return brand.ScriptUser + " already exists", nil
}

func (o *Orchestrator) startService(ctx context.Context) (string, error) {
	if err := o.systemd.Enable(ctx); err != nil {
		return "", err
	}
	if err := o.systemd.Restart(ctx); err != nil {
		return "", err
	}
	if !o.systemd.IsActive(ctx) {
		return "", fmt.Errorf("%s is not active after restart", brand.DaemonUnit)
	}
	return brand.DaemonUnit + " active", nil
}

// writeArtifact replaces path atomically. The parent directory is created
// when the daemon package has not created it yet.
func writeArtifact(path, text string, mode os.FileMode) error {
	return config.WriteFileAtomic(path, []byte(text), mode)
}

