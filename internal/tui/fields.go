// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"grimm.is/vrrpsetup/internal/validation"
)

// Validators returns the per-field validation closures used by the form,
// keyed by validation field name. Each closure wraps the same validator
// the answers file goes through, so both paths accept the same values.
// secret points at the first secret entry for the confirmation check.
func Validators(lister validation.InterfaceLister, secret *string) map[string]func(string) error {
	return map[string]func(string) error{
		validation.FieldInterface: func(s string) error {
			_, err := validation.ValidateInterface(s, lister)
			return err
		},
		validation.FieldPriority: func(s string) error {
			_, err := validation.ParsePriority(s)
			return err
		},
		validation.FieldGroupID: func(s string) error {
			_, err := validation.ParseGroupID(s)
			return err
		},
		validation.FieldAuthSecret: validation.ValidateSecret,
		validation.FieldAuthSecret + " confirmation": func(s string) error {
			_, err := validation.ConfirmSecret(*secret, s)
			return err
		},
		validation.FieldFloatingAddress: func(s string) error {
			_, err := validation.ParseFloatingAddress(s)
			return err
		},
		validation.FieldPrefixLength: func(s string) error {
			_, err := validation.ParsePrefixLength(s)
			return err
		},
	}
}
