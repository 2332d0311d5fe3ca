// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package host

import (
	"context"
	"errors"
	"fmt"
)

// PackageManager installs distribution packages.
type PackageManager struct {
	Name string
	// Refresh updates the package index before installing, if the manager
	// needs that.
	Refresh []string
	Install []string
}

// Supported package managers, in detection order.
var PackageManagers = []PackageManager{
	{Name: "apt-get", Refresh: []string{"update"}, Install: []string{"install", "-y"}},
	{Name: "dnf", Install: []string{"install", "-y"}},
	{Name: "yum", Install: []string{"install", "-y"}},
}

// ErrNoPackageManager is returned when none of PackageManagers is in PATH.
var ErrNoPackageManager = errors.New("no supported package manager found (tried apt-get, dnf, yum)")

// DetectPackageManager returns the first supported manager found in PATH.
func DetectPackageManager(r Runner) (PackageManager, error) {
	for _, pm := range PackageManagers {
		if _, err := r.LookPath(pm.Name); err == nil {
			return pm, nil
		}
	}
	return PackageManager{}, ErrNoPackageManager
}

// InstallCommand returns the argument list that installs pkgs.
func (pm PackageManager) InstallCommand(pkgs ...string) []string {
	args := append([]string{}, pm.Install...)
	return append(args, pkgs...)
}

// InstallPackages refreshes the index when needed and installs pkgs. A
// failed refresh is returned as a warning; the install is still attempted
// since a stale index is often good enough.
func (pm PackageManager) InstallPackages(ctx context.Context, r Runner, pkgs ...string) (warning error, err error) {
	if len(pm.Refresh) > 0 {
		if _, rerr := r.Run(ctx, pm.Name, pm.Refresh...); rerr != nil {
			warning = rerr
		}
	}
	if out, err := r.Run(ctx, pm.Name, pm.InstallCommand(pkgs...)...); err != nil {
		return warning, fmt.Errorf("%w: %s", err, lastLine(out))
	}
	return warning, nil
}
