// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package brand

import (
	"testing"
)

func TestGet(t *testing.T) {
	b := Get()
	if b.Name == "" {
		t.Error("Brand name should not be empty")
	}
	if Version == "" {
		t.Error("Global Version should be initialized (to dev default)")
	}
	if DaemonUnit != "keepalived" {
		t.Errorf("DaemonUnit = %q, want keepalived", DaemonUnit)
	}
	if ScriptUser == "" {
		t.Error("ScriptUser should be initialized")
	}
}

func TestGenerator(t *testing.T) {
	if got := Generator(); got != Name+" "+Version {
		t.Errorf("Generator() = %q", got)
	}
}
