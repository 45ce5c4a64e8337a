// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestRootCmdFlags checks the flag defaults
func TestRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd()

	cfgFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, cfgFlag, "config flag should exist")
	assert.Equal(t, ".addonsync.yaml", cfgFlag.DefValue, "config flag default should match")

	chdirFlag := cmd.PersistentFlags().Lookup("chdir")
	require.NotNil(t, chdirFlag, "chdir flag should exist")
	assert.Equal(t, ".", chdirFlag.DefValue, "chdir flag default should match")
}

// 🧪 TestSyncCommand runs the sync command against a real tree
func TestSyncCommand(t *testing.T) {
	tmp := t.TempDir()

	pluginPath := filepath.Join(tmp, "vendor", "foo", "addons", "foo", "plugin.cfg")
	require.NoError(t, os.MkdirAll(filepath.Dir(pluginPath), 0o755))
	require.NoError(t, os.WriteFile(pluginPath, []byte("name=foo"), 0o644))

	cfgPath := filepath.Join(tmp, ".addonsync.yaml")
	cfgContent := `
project:
  path: game
addons:
  foo:
    path: vendor/foo
    include:
      - addons
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o644))

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"sync", "--config", cfgPath, "--chdir", tmp})
	require.NoError(t, cmd.ExecuteContext(context.Background()), "sync command should succeed")

	assert.FileExists(t, filepath.Join(tmp, "game", "addons", "foo", "plugin.cfg"), "synced file should exist")
}

// 🧪 TestSyncCommandMissingConfig checks the failure surface
func TestSyncCommandMissingConfig(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"sync", "--config", filepath.Join(t.TempDir(), "nope.yaml")})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err, "sync should fail without a config file")
	assert.Contains(t, err.Error(), "loading config", "error should name the failing step")
}
