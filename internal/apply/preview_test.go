// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package apply

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/vrrpsetup/internal/errors"
)

func TestPreview_FreshHost(t *testing.T) {
	h := newHarness(t)

	p, err := h.o.Preview(secondaryModel())
	require.NoError(t, err)

	assert.False(t, p.Config.Exists)
	assert.True(t, p.Config.Changed())
	assert.True(t, p.Script.Changed())
	assert.Equal(t, h.config, p.Artifacts.ConfigPath)
	assert.Contains(t, p.Artifacts.ConfigText, "nopreempt")
	assert.NotEmpty(t, p.Warnings)
	assert.Empty(t, h.runner.Calls(), "preview must not touch the host")
	assert.NoFileExists(t, h.config)
}

func TestPreview_AfterApply(t *testing.T) {
	h := newHarness(t)
	_, err := h.o.Apply(context.Background(), secondaryModel())
	require.NoError(t, err)

	p, err := h.o.Preview(secondaryModel())
	require.NoError(t, err)
	assert.False(t, p.Config.Changed())
	assert.False(t, p.Script.Changed())

	m := secondaryModel()
	m.Node.Priority = 90
	p, err = h.o.Preview(m)
	require.NoError(t, err)
	assert.Contains(t, p.Config.Diff, "-    priority 100")
	assert.Contains(t, p.Config.Diff, "+    priority 90")
	assert.NotContains(t, p.Config.Diff, "s3cr3t")
	assert.False(t, p.Script.Changed())
}

func TestPreview_SecretChangeIsMasked(t *testing.T) {
	h := newHarness(t)
	_, err := h.o.Apply(context.Background(), secondaryModel())
	require.NoError(t, err)

	m := secondaryModel()
	m.Shared.AuthSecret = "n3wpass"
	p, err := h.o.Preview(m)
	require.NoError(t, err)

	assert.True(t, p.Config.Changed())
	assert.NotContains(t, p.Config.Diff, "s3cr3t")
	assert.NotContains(t, p.Config.Diff, "n3wpass")
}

func TestPreview_Invalid(t *testing.T) {
	h := newHarness(t)
	m := secondaryModel()
	m.Shared.FloatingAddress = "192.168.0"

	_, err := h.o.Preview(m)
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
}

func TestMaskSecrets(t *testing.T) {
	in := "    authentication {\n        auth_type PASS\n        auth_pass s3cr3t\n    }\n"
	out := MaskSecrets(in)
	assert.NotContains(t, out, "s3cr3t")
	assert.Contains(t, out, "        auth_pass ********\n")
	assert.Contains(t, out, "auth_type PASS")
}
