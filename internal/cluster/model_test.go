// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cluster

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleDefaults(t *testing.T) {
	assert.Equal(t, "MASTER", RolePrimary.KeepalivedState())
	assert.Equal(t, "BACKUP", RoleSecondary.KeepalivedState())
	assert.Greater(t, RolePrimary.DefaultPriority(), RoleSecondary.DefaultPriority())
	assert.True(t, RolePrimary.Valid())
	assert.False(t, Role("witness").Valid())
}

func TestNormalize(t *testing.T) {
	m := Model{Node: NodeConfig{Role: RolePrimary, NoPreempt: true}}
	m.Normalize()
	assert.False(t, m.Node.NoPreempt, "primary must never carry nopreempt")
	assert.Equal(t, DefaultResolverUnit, m.Health.ResolverUnit)

	s := Model{Node: NodeConfig{Role: RoleSecondary, NoPreempt: true}, Health: HealthCheckPolicy{ResolverUnit: "named"}}
	s.Normalize()
	assert.True(t, s.Node.NoPreempt)
	assert.True(t, s.EmitNoPreempt())
	assert.Equal(t, "named", s.Health.ResolverUnit)
}

func TestEmitNoPreemptIgnoresPrimary(t *testing.T) {
	m := Model{Node: NodeConfig{Role: RolePrimary, NoPreempt: true}}
	assert.False(t, m.EmitNoPreempt())
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name         string
		node         NodeConfig
		secret       SecureString
		wantPriority bool
		wantSecret   bool
	}{
		{"conventional primary", NodeConfig{Role: RolePrimary, Priority: 101}, "s3cr3t", false, false},
		{"low primary", NodeConfig{Role: RolePrimary, Priority: 90}, "s3cr3t", true, false},
		{"high secondary", NodeConfig{Role: RoleSecondary, Priority: 150}, "s3cr3t", true, false},
		{"long secret", NodeConfig{Role: RoleSecondary, Priority: 100}, "averylongsecret", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{
				Node:   tt.node,
				Shared: SharedConfig{GroupID: 51, AuthSecret: tt.secret, FloatingAddress: "192.168.0.5", PrefixLength: 24},
			}
			joined := strings.Join(m.Warnings(), "\n")
			assert.Equal(t, tt.wantPriority, strings.Contains(joined, "priority"), joined)
			assert.Equal(t, tt.wantSecret, strings.Contains(joined, "first 8 characters"), joined)
			assert.Contains(t, joined, "192.168.0.5/24")
			assert.NotContains(t, joined, string(tt.secret))
		})
	}
}

func TestSecureStringHidden(t *testing.T) {
	s := SecureString("s3cr3t")
	assert.Equal(t, "(hidden)", s.String())
	assert.Equal(t, "(hidden)", fmt.Sprintf("%v", s))
	assert.Equal(t, "(hidden)", fmt.Sprintf("%#v", s))
	assert.Equal(t, "s3cr3t", s.Reveal())

	data, err := json.Marshal(SharedConfig{AuthSecret: s})
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "s3cr3t")
}

func TestHealthPolicyUnit(t *testing.T) {
	assert.Equal(t, DefaultResolverUnit, HealthCheckPolicy{}.Unit())
	assert.Equal(t, "pihole-FTL", HealthCheckPolicy{ResolverUnit: "pihole-FTL"}.Unit())
}
