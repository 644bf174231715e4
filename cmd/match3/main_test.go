package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in an isolated home and working directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagConfig, flagDifficulty, flagLogFile = "", "", ""
		flagLogLevel = "info"
		flagPolicy, flagDump, flagQuiet = "random", false, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	for _, id := range []string{"classic", "quarry", "glass"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "8x8")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "glass", "--difficulty", "hard")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Glass")
	assert.Contains(t, out, "breakable")
	assert.Contains(t, out, "cyan", "hard adds a seventh color")

	_, err = execute(t, "config", "nope")
	assert.Error(t, err)
}

func TestSimCommand(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sim.log")
	out, err := execute(t, "sim", "classic",
		"--boards", "3", "--swaps", "4", "--seed", "7", "--policy", "greedy",
		"--quiet", "--dump", "--log-file", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Hit rate")
	assert.Contains(t, out, "board 0 seed 7")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "simulation finished")
}

func TestSimCommandErrors(t *testing.T) {
	_, err := execute(t, "sim", "--policy", "lucky", "--quiet")
	assert.ErrorContains(t, err, "unknown policy")

	_, err = execute(t, "sim", "nowhere", "--quiet")
	assert.ErrorContains(t, err, "unknown board")

	_, err = execute(t, "sim", "--log-level", "loud", "--quiet")
	assert.ErrorContains(t, err, "--log-level")
}

func TestPlayUnknownBoard(t *testing.T) {
	_, err := execute(t, "play", "nowhere")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown board"))
}
