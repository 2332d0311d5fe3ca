// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package apply

import (
	"os"
	"regexp"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/vrrpsetup/internal/cluster"
)

// FileChange describes what an apply would do to one file.
type FileChange struct {
	Path string
	// Exists is false when the file will be created.
	Exists bool
	// Diff is a unified diff against the current content with secrets
	// masked, or "" when the file is unchanged.
	Diff string
}

// Changed reports whether applying would modify the file.
func (c FileChange) Changed() bool {
	return !c.Exists || c.Diff != ""
}

// Preview is shown to the operator before the confirmation gate.
type Preview struct {
	Artifacts cluster.Artifacts
	Script    FileChange
	Config    FileChange
	Warnings  []string
}

var authPassRegex = regexp.MustCompile(`(?m)^([ \t]*auth_pass[ \t]+)\S+`)

// MaskSecrets hides auth_pass values in rendered configuration text.
func MaskSecrets(text string) string {
	return authPassRegex.ReplaceAllString(text, "${1}********")
}

// Preview renders m and compares the result with the files on disk.
// Nothing is written.
func (o *Orchestrator) Preview(m *cluster.Model) (*Preview, error) {
	art, err := o.Render(m)
	if err != nil {
		return nil, err
	}

	script, err := compare(art.ScriptPath, art.ScriptText)
	if err != nil {
		return nil, err
	}
	conf, err := compare(art.ConfigPath, art.ConfigText)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Artifacts: art,
		Script:    script,
		Config:    conf,
		Warnings:  m.Warnings(),
	}, nil
}

func compare(path, text string) (FileChange, error) {
	current, err := os.ReadFile(path)
	if err != nil {
		// Missing and unreadable files are both simply replaced.
		return FileChange{Path: path}, nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(MaskSecrets(string(current))),
		B:        difflib.SplitLines(MaskSecrets(text)),
		FromFile: path,
		ToFile:   path + " (new)",
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return FileChange{}, err
	}

	change := FileChange{Path: path, Exists: true, Diff: out}
	if out == "" && string(current) != text {
		// Only the masked secret differs.
		change.Diff = "auth_pass changed\n"
	}
	return change, nil
}
