// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/vrrpsetup/internal/cluster"
	"grimm.is/vrrpsetup/internal/errors"
	"grimm.is/vrrpsetup/internal/validation"
)

const hclAnswers = `
role      = "secondary"
interface = "eth0"
nopreempt = true
time_sync = true
confirm   = true

shared {
  group_id         = 51
  auth_secret      = "s3cr3t"
  floating_address = "192.168.0.5"
  prefix_length    = 24
}
`

const yamlAnswers = `
role: MASTER
interface: eth0
priority: 150
shared:
  group_id: 0
  auth_secret: s3cr3t
  floating_address: 10.0.0.9
  prefix_length: 32
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAnswers_HCL(t *testing.T) {
	a, err := LoadAnswers(writeFile(t, "answers.hcl", hclAnswers))
	require.NoError(t, err)
	assert.True(t, a.Confirm)

	m, err := a.Model(validation.StaticLister{"lo", "eth0"})
	require.NoError(t, err)

	assert.Equal(t, cluster.RoleSecondary, m.Node.Role)
	assert.Equal(t, 100, m.Node.Priority, "priority defaults by role")
	assert.True(t, m.Node.NoPreempt)
	assert.True(t, m.Health.TimeSyncMonitoring)
	assert.Equal(t, cluster.DefaultResolverUnit, m.Health.ResolverUnit)
	assert.Equal(t, "192.168.0.5/24", m.Shared.CIDR())
	assert.Equal(t, "s3cr3t", m.Shared.AuthSecret.Reveal())
}

func TestLoadAnswers_YAML(t *testing.T) {
	for _, name := range []string{"answers.yaml", "answers.yml", "answers"} {
		t.Run(name, func(t *testing.T) {
			a, err := LoadAnswers(writeFile(t, name, yamlAnswers))
			require.NoError(t, err)

			m, err := a.Model(nil)
			require.NoError(t, err)
			assert.Equal(t, cluster.RolePrimary, m.Node.Role)
			assert.Equal(t, 150, m.Node.Priority)
			assert.Equal(t, 0, m.Shared.GroupID)
			assert.False(t, a.Confirm)
		})
	}
}

func TestLoadAnswers_Errors(t *testing.T) {
	_, err := LoadAnswers(filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
	assert.Equal(t, FieldAnswersFile, errors.Field(err))

	_, err = LoadAnswers(writeFile(t, "bad.hcl", "role = "))
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))

	_, err = LoadAnswers(writeFile(t, "typo.yaml", "rol: MASTER\n"))
	assert.Error(t, err, "unknown YAML keys are rejected")
}

func TestAnswersModel_Invalid(t *testing.T) {
	intp := func(n int) *int { return &n }
	valid := func() *Answers {
		return &Answers{
			Role:      "primary",
			Interface: "eth0",
			Shared: &SharedAnswers{
				GroupID:         intp(51),
				AuthSecret:      "s3cr3t",
				FloatingAddress: "192.168.0.5",
				PrefixLength:    intp(24),
			},
		}
	}
	_, err := valid().Model(nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(a *Answers)
		field  string
	}{
		{"no role", func(a *Answers) { a.Role = "" }, validation.FieldRole},
		{"bad role", func(a *Answers) { a.Role = "leader" }, validation.FieldRole},
		{"no interface", func(a *Answers) { a.Interface = "" }, validation.FieldInterface},
		{"priority zero", func(a *Answers) { a.Priority = intp(0) }, validation.FieldPriority},
		{"no shared block", func(a *Answers) { a.Shared = nil }, validation.FieldGroupID},
		{"group id 256", func(a *Answers) { a.Shared.GroupID = intp(256) }, validation.FieldGroupID},
		{"group id negative", func(a *Answers) { a.Shared.GroupID = intp(-1) }, validation.FieldGroupID},
		{"empty secret", func(a *Answers) { a.Shared.AuthSecret = "" }, validation.FieldAuthSecret},
		{"bad address", func(a *Answers) { a.Shared.FloatingAddress = "192.168.0" }, validation.FieldFloatingAddress},
		{"prefix 0", func(a *Answers) { a.Shared.PrefixLength = intp(0) }, validation.FieldPrefixLength},
		{"prefix 33", func(a *Answers) { a.Shared.PrefixLength = intp(33) }, validation.FieldPrefixLength},
		{"bad unit", func(a *Answers) { a.ResolverUnit = "x;y" }, validation.FieldResolverUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(a)
			_, err := a.Model(nil)
			require.Error(t, err)
			assert.Equal(t, errors.KindValidation, errors.GetKind(err))
			assert.Equal(t, tt.field, errors.Field(err))
		})
	}
}

func TestAnswersModel_PrimaryDropsNoPreempt(t *testing.T) {
	a, err := ParseHCL([]byte(`
role      = "primary"
interface = "eth0"
nopreempt = true
shared {
  group_id         = 7
  auth_secret      = "pw"
  floating_address = "10.1.1.1"
  prefix_length    = 16
}
`), "inline.hcl")
	require.NoError(t, err)

	m, err := a.Model(nil)
	require.NoError(t, err)
	assert.False(t, m.Node.NoPreempt)
	assert.False(t, m.EmitNoPreempt())
}
