// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"grimm.is/vrrpsetup/internal/i18n"
)

// Printer formats operator-facing output for the current locale.
var Printer = i18n.NewCLIPrinter()
