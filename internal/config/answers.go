// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config reads answers files and writes the shared-settings export.
//
// An answers file pre-fills the interactive prompts, or drives a whole run
// when no terminal is attached. It is HCL or YAML:
//
//	role      = "secondary"
//	interface = "eth0"
//	priority  = 100
//	nopreempt = true
//	time_sync = true
//	confirm   = true
//
//	shared {
//	  group_id         = 51
//	  auth_secret      = "s3cr3t"
//	  floating_address = "192.168.0.5"
//	  prefix_length    = 24
//	}
//
// The shared block is exactly what ExportShared writes, so the export of
// the first node can be pasted into the second node's answers file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/errors"
	"grimm.is/vrrpsetup/internal/validation"
)

// FieldAnswersFile is the field reported for unreadable answers files.
const FieldAnswersFile = "answers file"

// Answers holds pre-filled responses. Unset numbers are nil so that 0 can
// be told apart from "not given".
type Answers struct {
	Role         string         `hcl:"role,optional" yaml:"role"`
	Interface    string         `hcl:"interface,optional" yaml:"interface"`
	Priority     *int           `hcl:"priority,optional" yaml:"priority"`
	NoPreempt    bool           `hcl:"nopreempt,optional" yaml:"nopreempt"`
	TimeSync     bool           `hcl:"time_sync,optional" yaml:"time_sync"`
	ResolverUnit string         `hcl:"resolver_unit,optional" yaml:"resolver_unit"`
	Confirm      bool           `hcl:"confirm,optional" yaml:"confirm"`
	Shared       *SharedAnswers `hcl:"shared,block" yaml:"shared"`
}

// SharedAnswers are the settings that must match on both nodes.
type SharedAnswers struct {
	GroupID         *int   `hcl:"group_id,optional" yaml:"group_id"`
	AuthSecret      string `hcl:"auth_secret,optional" yaml:"auth_secret"`
	FloatingAddress string `hcl:"floating_address,optional" yaml:"floating_address"`
	PrefixLength    *int   `hcl:"prefix_length,optional" yaml:"prefix_length"`
}

// LoadAnswers reads an answers file. The format follows the extension;
// files without a known extension are tried as HCL, then YAML.
func LoadAnswers(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Attr(
			errors.Wrap(err, errors.KindValidation, "failed to read answers file"),
			errors.AttrField, FieldAnswersFile)
	}

	var a *Answers
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		a, err = ParseHCL(data, path)
	case ".yaml", ".yml":
		a, err = ParseYAML(data)
	default:
		var hclErr error
		a, hclErr = ParseHCL(data, path)
		if hclErr != nil {
			a, err = ParseYAML(data)
			if err != nil {
				err = hclErr
			}
		}
	}
	if err != nil {
		return nil, errors.Attr(
			errors.Wrap(err, errors.KindValidation, "failed to parse answers file"),
			errors.AttrField, FieldAnswersFile)
	}
	return a, nil
}

// ParseHCL decodes answers from HCL source.
func ParseHCL(data []byte, filename string) (*Answers, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var a Answers
	if diags := gohcl.DecodeBody(file.Body, nil, &a); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}
	return &a, nil
}

// ParseYAML decodes answers from YAML. Unknown keys are rejected so typos
// do not silently fall back to prompts.
func ParseYAML(data []byte) (*Answers, error) {
	var a Answers
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return &a, nil
}

func missing(field string) error {
	return errors.Invalid(field, "missing from answers file")
}

// Model validates every answer with the same rules as the prompts and
// builds the cluster model. The first invalid or missing answer is
// returned as a validation error. Priority falls back to the role's
// default when unset.
func (a *Answers) Model(lister validation.InterfaceLister) (*cluster.Model, error) {
	var m cluster.Model
	var err error

	if a.Role == "" {
		return nil, missing(validation.FieldRole)
	}
	if m.Node.Role, err = validation.ParseRole(a.Role); err != nil {
		return nil, err
	}

	if a.Interface == "" {
		return nil, missing(validation.FieldInterface)
	}
	if m.Node.Interface, err = validation.ValidateInterface(a.Interface, lister); err != nil {
		return nil, err
	}

	m.Node.Priority = m.Node.Role.DefaultPriority()
	if a.Priority != nil {
		if m.Node.Priority, err = validation.ParsePriority(strconv.Itoa(*a.Priority)); err != nil {
			return nil, err
		}
	}
	m.Node.NoPreempt = a.NoPreempt

	s := a.Shared
	if s == nil {
		s = &SharedAnswers{}
	}
	if s.GroupID == nil {
		return nil, missing(validation.FieldGroupID)
	}
	if m.Shared.GroupID, err = validation.ParseGroupID(strconv.Itoa(*s.GroupID)); err != nil {
		return nil, err
	}
	if m.Shared.AuthSecret, err = validation.ConfirmSecret(s.AuthSecret, s.AuthSecret); err != nil {
		return nil, err
	}
	if s.FloatingAddress == "" {
		return nil, missing(validation.FieldFloatingAddress)
	}
	if m.Shared.FloatingAddress, err = validation.ParseFloatingAddress(s.FloatingAddress); err != nil {
		return nil, err
	}
	if s.PrefixLength == nil {
		return nil, missing(validation.FieldPrefixLength)
	}
	if m.Shared.PrefixLength, err = validation.ParsePrefixLength(strconv.Itoa(*s.PrefixLength)); err != nil {
		return nil, err
	}

	m.Health = cluster.HealthCheckPolicy{
		ResolverUnit:       strings.TrimSpace(a.ResolverUnit),
		TimeSyncMonitoring: a.TimeSync,
	}
	if a.ResolverUnit != "" {
		if err := validation.ValidateUnitName(m.Health.ResolverUnit); err != nil {
			return nil, err
		}
	}

	m.Normalize()
	return &m, nil
}
