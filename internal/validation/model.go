// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package validation

import (
	"strconv"

	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/errors"
)

// ValidateModel re-applies the field rules to an already typed model. It
// guards models that did not come through the prompts (answers files, code).
// A nil lister skips the interface existence check.
func ValidateModel(m *cluster.Model, lister InterfaceLister) error {
	if m == nil {
		return errors.New(errors.KindInternal, "nil model")
	}
	if !m.Node.Role.Valid() {
		return errors.Invalid(FieldRole, "must be MASTER (primary) or BACKUP (secondary)")
	}
	if err := ValidateInterfaceName(m.Node.Interface); err != nil {
		return err
	}
	if _, err := ValidateInterface(m.Node.Interface, lister); err != nil {
		return err
	}
	if _, err := ParsePriority(strconv.Itoa(m.Node.Priority)); err != nil {
		return err
	}
	if _, err := ParseGroupID(strconv.Itoa(m.Shared.GroupID)); err != nil {
		return err
	}
	if err := ValidateSecret(m.Shared.AuthSecret.Reveal()); err != nil {
		return err
	}
	if _, err := ParseFloatingAddress(m.Shared.FloatingAddress); err != nil {
		return err
	}
	if _, err := ParsePrefixLength(strconv.Itoa(m.Shared.PrefixLength)); err != nil {
		return err
	}
	if err := ValidateUnitName(m.Health.Unit()); err != nil {
		return err
	}
	return nil
}
