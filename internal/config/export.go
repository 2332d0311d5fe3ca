// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"grimm.is/vrrpsetup/internal/brand"
	"grimm.is/vrrpsetup/internal/cluster"
)

// MarshalShared renders the cluster-wide settings as an HCL shared block.
// The output contains the secret in clear text.
func MarshalShared(s cluster.SharedConfig) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	block := body.AppendNewBlock("shared", nil)
	b := block.Body()
	b.SetAttributeValue("group_id", cty.NumberIntVal(int64(s.GroupID)))
	b.SetAttributeValue("auth_secret", cty.StringVal(s.AuthSecret.Reveal()))
	b.SetAttributeValue("floating_address", cty.StringVal(s.FloatingAddress))
	b.SetAttributeValue("prefix_length", cty.NumberIntVal(int64(s.PrefixLength)))

	header := fmt.Sprintf("# Cluster-wide settings written by %s.\n"+
		"# Copy this block into the peer node's answers file.\n", brand.Name)
	return append([]byte(header), hclwrite.Format(f.Bytes())...)
}

// ExportShared writes MarshalShared output to path with mode 0600.
func ExportShared(path string, s cluster.SharedConfig) error {
	return SecureWriteFile(path, MarshalShared(s))
}
