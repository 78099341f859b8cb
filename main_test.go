package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/termlife/utils"
)

const ansiClear = "\033[H\033[2J"

func TestResolveConfigDefaults(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags(nil))

	config, err := resolveConfig(cmd)
	require.NoError(t, err)
	require.Equal(t, 20, config.Width)
	require.Equal(t, 10, config.Height)
	require.Equal(t, 100, config.MaxSteps)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 12\nheight: 6\nmax_steps: 5\n"), 0o600))

	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--height", "8", "--frame-delay", "10ms"}))

	config, err := resolveConfig(cmd)
	require.NoError(t, err)
	require.Equal(t, 12, config.Width)
	require.Equal(t, 8, config.Height)
	require.Equal(t, 5, config.MaxSteps)
	require.Equal(t, 10*time.Millisecond, config.FrameDelay.Std())
}

func TestResolveConfigRejectsInvalidValues(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"--spawn-probability", "2"}))

	_, err := resolveConfig(cmd)
	require.ErrorContains(t, err, "invalid configuration")
}

// frameRows returns the lines of out that are rendered grid rows of the given width
func frameRows(out string, width int) []string {
	row := regexp.MustCompile(fmt.Sprintf(`^( [0.] ){%d}$`, width))
	var rows []string
	for _, line := range strings.Split(out, "\n") {
		if row.MatchString(line) {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestRootCmdRunsCappedSimulation(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{
		"--width", "4", "--height", "3", "--max-steps", "2",
		"--frame-delay", "0s", "--seed", "1", "--clear", "ansi",
	})

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	require.Equal(t, 2, strings.Count(out, ansiClear), "one clear per frame")
	require.Len(t, frameRows(strings.ReplaceAll(out, ansiClear, ""), 4), 2*3, "two frames of three rows")
	require.Contains(t, out, "Generations: 2 | Living: ")
	require.NotContains(t, out, "Gen: ")
	require.Contains(t, stderr.String(), "simulation finished")
}

func TestRootCmdStatusLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{
		"--width", "5", "--height", "5", "--max-steps", "3",
		"--frame-delay", "0s", "--seed", "9", "--clear", "ansi", "--status",
	})

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	require.Contains(t, out, "Gen: 0 | Living: ")
	require.Contains(t, out, "Gen: 2 | Living: ")
	require.Equal(t, 3, strings.Count(out, "Gen: "))
	require.Len(t, frameRows(strings.ReplaceAll(out, ansiClear, ""), 5), 3*5)
}

func TestResolveConfigClearMode(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags(nil))
	config, err := resolveConfig(cmd)
	require.NoError(t, err)
	require.Equal(t, utils.ClearCommand, config.ClearMode)

	cmd = newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"--clear", "tput"}))
	_, err = resolveConfig(cmd)
	require.ErrorContains(t, err, "clear mode")
}
