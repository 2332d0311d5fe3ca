// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package cmd implements the single setup command.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"grimm.is/vrrpsetup/internal/apply"
	"grimm.is/vrrpsetup/internal/brand"
	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/config"
	"grimm.is/vrrpsetup/internal/errors"
	"grimm.is/vrrpsetup/internal/host"
	"grimm.is/vrrpsetup/internal/install"
	"grimm.is/vrrpsetup/internal/logging"
	"grimm.is/vrrpsetup/internal/netutil"
	"grimm.is/vrrpsetup/internal/probe"
	"grimm.is/vrrpsetup/internal/tui"
	"grimm.is/vrrpsetup/internal/validation"
)

// Prompter collects settings and confirmation interactively.
type Prompter interface {
	Run(in *tui.Inputs) (*cluster.Model, error)
	Confirm(title, description string) (bool, error)
}

// SetupOptions wires the setup flow to its collaborators.
type SetupOptions struct {
	Out          io.Writer
	Interactive  bool
	Answers      *config.Answers
	Lister       validation.InterfaceLister
	Prompter     Prompter
	Orchestrator *apply.Orchestrator
	Logger       *logging.Logger
}

// RunSetup configures this node against the real host and returns the
// process exit code.
func RunSetup(ctx context.Context) int {
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(os.Getenv(brand.ConfigEnvPrefix + "_LOG_LEVEL")),
		Output: os.Stderr,
	}).With("run", uuid.NewString())
	logging.SetDefault(logger)

	if os.Geteuid() != 0 {
		logger.Warn("not running as root; installing packages and controlling the service will likely fail")
	}

	var answers *config.Answers
	if path := install.GetAnswersFile(); path != "" {
		a, err := config.LoadAnswers(path)
		if err != nil {
			Printer.Fprintf(os.Stdout, "❌ %v\n", err)
			return 1
		}
		logger.Info("loaded answers file", "path", path)
		answers = a
	}

	lister := netutil.Host{}
	runner := host.NewExecRunner()
	orch := apply.New(apply.Options{
		Runner:        runner,
		LookupAccount: host.LookupAccount,
		Lister:        lister,
		Prober:        probe.New(runner, lister, nil),
		Logger:        logger.WithComponent("apply"),
		ExportPath:    install.GetSharedExportPath(),
	})

	err := Setup(ctx, SetupOptions{
		Out:          os.Stdout,
		Interactive:  term.IsTerminal(int(os.Stdin.Fd())),
		Answers:      answers,
		Lister:       lister,
		Prompter:     tui.NewWizard(lister),
		Orchestrator: orch,
		Logger:       logger,
	})
	if err != nil {
		return 1
	}
	return 0
}

// Setup runs the whole flow: collect, preview, confirm, apply, report.
// It prints every outcome itself; a declined confirmation is not an
// error. The returned error is only for the exit code.
func Setup(ctx context.Context, opts SetupOptions) error {
	out := opts.Out
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	Printer.Fprintf(out, "%s\n", tui.StyleTitle.Render(brand.Name+": "+brand.Description))

	m, err := collect(opts)
	if errors.Is(err, tui.ErrAborted) {
		Printer.Fprintln(out, "Aborted, no changes made.")
		return nil
	}
	if err != nil {
		Printer.Fprintf(out, "❌ %v\n", err)
		return err
	}

	preview, err := opts.Orchestrator.Preview(m)
	if err != nil {
		Printer.Fprintf(out, "❌ %v\n", err)
		return err
	}
	Printer.Fprintf(out, "%s\n%s\n", tui.RenderSummary(m), tui.RenderPreview(preview))

	ok, err := confirm(opts)
	if err != nil && !errors.Is(err, tui.ErrAborted) {
		Printer.Fprintf(out, "❌ %v\n", err)
		return err
	}
	if !ok {
		Printer.Fprintln(out, "Aborted, no changes made.")
		return nil
	}

	logger.Info("applying", "role", m.Node.Role, "interface", m.Node.Interface, "group", m.Shared.GroupID)
	report, err := opts.Orchestrator.Apply(ctx, m)
	if len(report.Phases) > 0 {
		Printer.Fprintf(out, "%s\n", tui.RenderReport(report))
	}
	if err != nil {
		printFailure(out, err)
		return err
	}

	Printer.Fprintf(out, "✅ This node is configured as %s on %s.\n", m.Node.Role, m.Node.Interface)
	for _, p := range report.Phases {
		if p.Phase == apply.PhaseExport && p.Status == apply.StatusOK {
			Printer.Fprintf(out, "Shared settings for the peer node: %s\n", p.Detail)
		}
	}
	return nil
}

func collect(opts SetupOptions) (*cluster.Model, error) {
	if opts.Interactive {
		in := tui.InputsFromAnswers(opts.Answers)
		return opts.Prompter.Run(&in)
	}
	if opts.Answers == nil {
		return nil, errors.Errorf(errors.KindValidation,
			"no terminal attached; set %s_ANSWERS to an answers file", brand.ConfigEnvPrefix)
	}
	return opts.Answers.Model(opts.Lister)
}

func confirm(opts SetupOptions) (bool, error) {
	if opts.Interactive {
		return opts.Prompter.Confirm("Apply these changes?",
			"Installs packages, writes both files and restarts "+brand.DaemonUnit+".")
	}
	return opts.Answers.Confirm, nil
}

func printFailure(out io.Writer, err error) {
	phase := errors.GetString(err, errors.AttrPhase)
	cause := err
	if inner := errors.Unwrap(err); inner != nil {
		cause = inner
	}
	if phase == "" {
		Printer.Fprintf(out, "❌ %v\n", err)
	} else {
		Printer.Fprintf(out, "❌ %s failed: %v\n", phase, cause)
	}
	if hint := errors.GetString(err, errors.AttrHint); hint != "" {
		Printer.Fprintf(out, "   hint: %s\n", hint)
	}
}
