// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package host

import (
	"context"
	"errors"
	"fmt"
	"os/user"
)

// AccountLookup reports whether a local account exists.
type AccountLookup func(name string) (bool, error)

// LookupAccount checks the local user database.
func LookupAccount(name string) (bool, error) {
	_, err := user.Lookup(name)
	if err == nil {
		return true, nil
	}
	var unknown user.UnknownUserError
	if errors.As(err, &unknown) {
		return false, nil
	}
	return false, err
}

// SystemAccountArgs are the useradd arguments for a login-less system
// account without a home directory.
func SystemAccountArgs(name string) []string {
	return []string{"--system", "--no-create-home", "--shell", "/usr/sbin/nologin", name}
}

// EnsureSystemAccount creates the account unless it already exists. It
// reports whether the account was created.
func EnsureSystemAccount(ctx context.Context, r Runner, lookup AccountLookup, name string) (bool, error) {
	exists, err := lookup(name)
	if err != nil {
		return false, fmt.Errorf("failed to look up account %s: %w", name, err)
	}
	if exists {
		return false, nil
	}
	if out, err := r.Run(ctx, "useradd", SystemAccountArgs(name)...); err != nil {
		return false, fmt.Errorf("%w: %s", err, lastLine(out))
	}
	return true, nil
}
