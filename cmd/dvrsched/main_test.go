// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ManuGH/dvrsched/internal/config"
	"github.com/ManuGH/dvrsched/internal/dvr"
	"github.com/ManuGH/dvrsched/internal/log"

	"github.com/ManuGH/dvrsched/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"console", "serve", "version"})
	assert.NotNil(t, root.Flags().Lookup("verbose"), "root accepts console flags")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, version.String()+"\n", out.String())
}

func runConsoleArgs(t *testing.T, stdin string, args ...string) (string, string) {
	t.Helper()
	t.Setenv("DVRSCHED_CONFIG", "")
	t.Cleanup(func() { log.Configure(log.Config{}) })

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--env-file", ""))
	require.NoError(t, root.Execute())
	return out.String(), errOut.String()
}

const consoleSession = "S\n03/01/2024 9:00am-10:00am CNN\nQ\n03/01/2024 9:30am\nX\n"

func TestConsole_QuietByDefault(t *testing.T) {
	out, errOut := runConsoleArgs(t, consoleSession, "console")
	assert.Contains(t, out, "The channel(s) being recorded is / are - CNN")
	assert.NotContains(t, errOut, "configuration loaded")
	assert.NotContains(t, errOut, "recording query")
}

func TestConsole_VerboseShowsDiagnostics(t *testing.T) {
	_, errOut := runConsoleArgs(t, consoleSession, "console", "-v")
	assert.Contains(t, errOut, "recording query")
	assert.False(t, strings.HasPrefix(errOut, "{"), "diagnostics are human-readable")

	_, errOut = runConsoleArgs(t, consoleSession, "-v")
	assert.Contains(t, errOut, "recording query", "root runs the console with its flags")
}

func TestExportHook_UsesReloadedPath(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("exportPath: "+first+"\n"), 0o600))

	loader := config.NewLoader(cfgPath, "", "test")
	cfg, err := loader.Load()
	require.NoError(t, err)
	holder := config.NewHolder(cfg, loader)

	mgr, err := dvr.NewManager(1)
	require.NoError(t, err)
	hook := exportHook(holder, mgr)

	require.NoError(t, os.WriteFile(cfgPath, []byte("exportPath: "+second+"\n"), 0o600))
	require.NoError(t, holder.Reload())
	require.NoError(t, hook(context.Background()))

	assert.FileExists(t, second)
	assert.NoFileExists(t, first)

	require.NoError(t, os.WriteFile(cfgPath, []byte("tuners: 1\n"), 0o600))
	require.NoError(t, holder.Reload())
	require.NoError(t, os.Remove(second))
	require.NoError(t, hook(context.Background()))
	assert.NoFileExists(t, second, "empty export path skips the export")
}
