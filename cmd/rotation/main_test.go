package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf(`version: "test"
roster:
  players: [Ana, Ben, Cy, Dee, Eli, Flo]
store:
  driver: sqlite
  path: %s
log:
  level: error
`, filepath.Join(dir, "rotation.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte(body), 0o644))
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	root := newRootCmd(a)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--config", dir}, args...))
	err := root.Execute()
	a.close()
	return buf.String(), err
}

func TestShowSeedsConfiguredRoster(t *testing.T) {
	dir := writeConfig(t)
	out, err := run(t, dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Flo")
	assert.Contains(t, out, "Game 1, period 1")
	assert.Contains(t, out, "(curated pattern)")
}

func TestCursorPersistsAcrossRuns(t *testing.T) {
	dir := writeConfig(t)
	_, err := run(t, dir, "next")
	require.NoError(t, err)
	out, err := run(t, dir, "next")
	require.NoError(t, err)
	assert.Contains(t, out, "Game 1, period 3")

	out, err = run(t, dir, "prev")
	require.NoError(t, err)
	assert.Contains(t, out, "Game 1, period 2")
}

func TestPrevAtStartIsNoop(t *testing.T) {
	dir := writeConfig(t)
	out, err := run(t, dir, "prev")
	require.NoError(t, err)
	assert.Contains(t, out, "(no change)")
}

func TestToggleAndArgumentErrors(t *testing.T) {
	dir := writeConfig(t)
	out, err := run(t, dir, "toggle", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "warning")

	_, err = run(t, dir, "toggle", "7")
	assert.EqualError(t, err, "player must be between 1 and 6")
	_, err = run(t, dir, "toggle", "x")
	assert.EqualError(t, err, `invalid player "x"`)
	_, err = run(t, dir, "set", "1", "1", "1", "2")
	assert.EqualError(t, err, `value must be 0 or 1, got "2"`)
	_, err = run(t, dir, "set", "3", "1", "1", "1")
	assert.EqualError(t, err, "game must be between 1 and 2")
}

func TestSetWarnsOnHeadcount(t *testing.T) {
	dir := writeConfig(t)
	// Flo sits out period 1 of the curated six-player pattern.
	out, err := run(t, dir, "set", "1", "6", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "warning: game 1 period 1 now has 5 players on court")
}

func TestSetupOverridesRoster(t *testing.T) {
	dir := writeConfig(t)
	out, err := run(t, dir, "setup", "Ava", "Bo", "Cal", "Dot", "Ed", "--curated=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Ava")
	assert.NotContains(t, out, "Ana")
	assert.NotContains(t, out, "(curated pattern)")

	out, err = run(t, dir, "rename", "1", "Avery")
	require.NoError(t, err)
	assert.Contains(t, out, "Avery")
}

func TestHistoryAndClear(t *testing.T) {
	dir := writeConfig(t)
	_, err := run(t, dir, "next")
	require.NoError(t, err)

	out, err := run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "bytes")
	assert.NotContains(t, out, "no revisions")

	out, err = run(t, dir, "clear")
	require.NoError(t, err)
	assert.Equal(t, "cleared team default\n", out)
}

func TestBadStoreOverride(t *testing.T) {
	dir := writeConfig(t)
	_, err := run(t, dir, "--store", "bogus", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store driver must be one of: file, sqlite")
}

func TestSimulateUsesConfiguredRoster(t *testing.T) {
	dir := writeConfig(t)
	out, err := run(t, dir, "simulate", "--drop", "0", "--goal", "short_periods", "--trials", "3", "--seed", "1")
	require.NoError(t, err)
	assert.Equal(t, "short_periods over 3 trials: mean 0.000, stddev 0.000, p50 0.0, p90 0.0, p99 0.0\n", out)

	_, err = run(t, dir, "simulate", "--players", "3")
	assert.EqualError(t, err, "players must be at least 4, got 3")
}
