// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package validation turns raw operator input into typed values. Every
// function is pure apart from the injected interface lister, so the same
// rules back the interactive prompts, the answers file and the tests.
package validation

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/errors"
)

// Field names reported in validation errors.
const (
	FieldRole            = "role"
	FieldInterface       = "interface"
	FieldPriority        = "priority"
	FieldGroupID         = "group id"
	FieldAuthSecret      = "auth secret"
	FieldFloatingAddress = "floating address"
	FieldPrefixLength    = "prefix length"
	FieldResolverUnit    = "resolver unit"
)

var (
	// Valid interface name: alphanumeric, dash, underscore, dot (for VLANs), max 15 chars
	interfaceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,15}$`)

	unsignedRegex = regexp.MustCompile(`^[0-9]+$`)

	// systemd unit names; the value is pasted into the probe script.
	unitNameRegex = regexp.MustCompile(`^[a-zA-Z0-9@._:-]{1,255}$`)

	// Octet ranges are deliberately not checked here.
	dottedQuadRegex = regexp.MustCompile(`^[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}$`)

	// Characters that would end the auth_pass token or start a comment in
	// keepalived's config syntax.
	secretBreakers = " \t\r\n\"#!{}"
)

// InterfaceLister enumerates the host's network interfaces.
type InterfaceLister interface {
	Interfaces() ([]string, error)
}

// ListerFunc adapts a plain function to InterfaceLister.
type ListerFunc func() ([]string, error)

// Interfaces implements InterfaceLister.
func (f ListerFunc) Interfaces() ([]string, error) { return f() }

// StaticLister is an InterfaceLister over a fixed set of names.
type StaticLister []string

// Interfaces implements InterfaceLister.
func (s StaticLister) Interfaces() ([]string, error) { return s, nil }

// ParseRole accepts MASTER/PRIMARY and BACKUP/SECONDARY in any case.
func ParseRole(s string) (cluster.Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MASTER", "PRIMARY":
		return cluster.RolePrimary, nil
	case "BACKUP", "SECONDARY":
		return cluster.RoleSecondary, nil
	}
	return "", errors.Invalid(FieldRole, "must be MASTER (primary) or BACKUP (secondary)")
}

// ValidateInterfaceName checks a name against the kernel's naming rules.
func ValidateInterfaceName(name string) error {
	if name == "" {
		return errors.Invalid(FieldInterface, "cannot be empty")
	}
	if len(name) > 15 {
		return errors.Invalid(FieldInterface, "too long (max 15 characters)")
	}
	if !interfaceNameRegex.MatchString(name) {
		return errors.Invalid(FieldInterface, "must be alphanumeric with -_.")
	}
	return nil
}

// ValidateInterface checks the name and that the host currently has it.
// A nil lister skips the existence check.
func ValidateInterface(name string, lister InterfaceLister) (string, error) {
	name = strings.TrimSpace(name)
	if err := ValidateInterfaceName(name); err != nil {
		return "", err
	}
	if lister == nil {
		return name, nil
	}
	names, err := lister.Interfaces()
	if err != nil {
		return "", errors.Attr(
			errors.Invalid(FieldInterface, "cannot enumerate host interfaces"),
			"cause", err.Error())
	}
	if !slices.Contains(names, name) {
		return "", errors.Invalid(FieldInterface, "no such interface on this host (have: "+strings.Join(names, ", ")+")")
	}
	return name, nil
}

// ParsePriority accepts an unsigned integer in the daemon's 1-255 range.
func ParsePriority(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !unsignedRegex.MatchString(s) {
		return 0, errors.Invalid(FieldPriority, "must be a positive whole number")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < cluster.MinPriority || n > cluster.MaxPriority {
		return 0, errors.Invalid(FieldPriority, "must be between 1 and 255")
	}
	return n, nil
}

// ParseGroupID accepts an integer in [0,255].
func ParseGroupID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !unsignedRegex.MatchString(s) {
		return 0, errors.Invalid(FieldGroupID, "must be a whole number between 0 and 255")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < cluster.MinGroupID || n > cluster.MaxGroupID {
		return 0, errors.Invalid(FieldGroupID, "must be between 0 and 255")
	}
	return n, nil
}

// ValidateSecret checks the first entry of the shared secret. The value is
// never echoed back in the error.
func ValidateSecret(s string) error {
	if s == "" {
		return errors.Invalid(FieldAuthSecret, "cannot be empty")
	}
	if strings.ContainsAny(s, secretBreakers) {
		return errors.Invalid(FieldAuthSecret, "must not contain whitespace, quotes, braces, '#' or '!'")
	}
	return nil
}

// ConfirmSecret checks the confirmation entry against the first entry.
func ConfirmSecret(first, second string) (cluster.SecureString, error) {
	if err := ValidateSecret(first); err != nil {
		return "", err
	}
	if first != second {
		return "", errors.Invalid(FieldAuthSecret, "entries do not match")
	}
	return cluster.SecureString(first), nil
}

// ParseFloatingAddress accepts four dot-separated 1-3 digit groups.
func ParseFloatingAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !dottedQuadRegex.MatchString(s) {
		return "", errors.Invalid(FieldFloatingAddress, "must be a dotted-quad IPv4 address such as 192.168.0.5")
	}
	return s, nil
}

// ParsePrefixLength accepts an integer in [1,32]. A leading "/" is tolerated.
func ParsePrefixLength(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "/")
	if !unsignedRegex.MatchString(s) {
		return 0, errors.Invalid(FieldPrefixLength, "must be a whole number between 1 and 32")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < cluster.MinPrefixLength || n > cluster.MaxPrefixLength {
		return 0, errors.Invalid(FieldPrefixLength, "must be between 1 and 32")
	}
	return n, nil
}

// ValidateUnitName checks a systemd unit name before it is embedded in the
// probe script.
func ValidateUnitName(unit string) error {
	if !unitNameRegex.MatchString(unit) {
		return errors.Invalid(FieldResolverUnit, "must be a systemd unit name such as unbound or pihole-FTL.service")
	}
	return nil
}
