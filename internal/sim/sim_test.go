package sim

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/config"
)

func preset(t *testing.T, name string) config.Match3Config {
	t.Helper()
	cfg, err := config.Parse(config.GetDefaultYAML(name))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyRandom, p)

	p, err = ParsePolicy("greedy")
	require.NoError(t, err)
	assert.Equal(t, PolicyGreedy, p)

	_, err = ParsePolicy("smart")
	assert.Error(t, err)
}

func TestRunRejectsEmptyRuns(t *testing.T) {
	_, err := Run(context.Background(), config.DefaultConfig(), Options{Boards: 0, Swaps: 5})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Run(context.Background(), config.DefaultConfig(), Options{Boards: 3, Swaps: 0})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestRunGreedyAlwaysMatches(t *testing.T) {
	rep, err := Run(context.Background(), config.DefaultConfig(), Options{
		Boards: 6, Swaps: 20, Workers: 3, Seed: 11, Policy: PolicyGreedy,
	})
	require.NoError(t, err)

	assert.Len(t, rep.Boards, 6)
	assert.Zero(t, rep.Violations)
	assert.Zero(t, rep.Reverted, "greedy swaps always match")
	assert.Equal(t, rep.Attempts, rep.Accepted)
	assert.Equal(t, 1.0, rep.HitRate)
	assert.Equal(t, 1.0, rep.HitCI.Hi)
	assert.Greater(t, rep.HitCI.Lo, 0.8)
	assert.GreaterOrEqual(t, rep.RoundsMean, 1.0)
	assert.GreaterOrEqual(t, rep.ClearedMean, 3.0)
	assert.GreaterOrEqual(t, rep.RoundsMax, 1)
	assert.Equal(t, rep.Spawned, sumCleared(rep), "every cleared piece is replaced")
}

func sumCleared(rep Report) int {
	n := 0
	for _, b := range rep.Boards {
		for _, c := range b.Cleared {
			n += c
		}
	}
	return n
}

func TestRunRandomReverts(t *testing.T) {
	rep, err := Run(context.Background(), config.DefaultConfig(), Options{
		Boards: 4, Swaps: 30, Workers: 2, Seed: 5, Policy: PolicyRandom,
	})
	require.NoError(t, err)

	assert.Zero(t, rep.Violations)
	assert.Positive(t, rep.Reverted, "most random swaps do not match")
	assert.Equal(t, rep.Attempts, rep.Accepted+rep.Reverted)
	assert.Less(t, rep.HitRate, 1.0)
	assert.LessOrEqual(t, rep.HitCI.Lo, rep.HitRate)
	assert.GreaterOrEqual(t, rep.HitCI.Hi, rep.HitRate)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	opts := Options{Boards: 5, Swaps: 15, Seed: 99, Policy: PolicyRandom}

	opts.Workers = 1
	serial, err := Run(context.Background(), config.DefaultConfig(), opts)
	require.NoError(t, err)

	opts.Workers = 5
	parallel, err := Run(context.Background(), config.DefaultConfig(), opts)
	require.NoError(t, err)

	for i := range serial.Boards {
		a, b := serial.Boards[i], parallel.Boards[i]
		assert.Equal(t, a.Seed, b.Seed)
		assert.Equal(t, a.Rounds, b.Rounds)
		assert.True(t, a.Final.Equal(b.Final), "board %d differs", i)
	}
}

func TestRunWithBreakableTiles(t *testing.T) {
	rep, err := Run(context.Background(), preset(t, "glass"), Options{
		Boards: 4, Swaps: 40, Seed: 3, Policy: PolicyGreedy,
	})
	require.NoError(t, err)
	assert.Zero(t, rep.Violations)
	assert.Positive(t, rep.TilesBroken)
}

func TestRunWithObstacles(t *testing.T) {
	rep, err := Run(context.Background(), preset(t, "quarry"), Options{
		Boards: 3, Swaps: 25, Seed: 8, Policy: PolicyRandom,
	})
	require.NoError(t, err)
	assert.Zero(t, rep.Violations)
	for _, b := range rep.Boards {
		assert.Contains(t, b.Final.String(), "#")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, config.DefaultConfig(), Options{Boards: 3, Swaps: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pieces = []string{"red", "teal", "blue"}
	_, err := Run(context.Background(), cfg, Options{Boards: 1, Swaps: 1})
	assert.Error(t, err)
}

func TestProportionCI(t *testing.T) {
	p, ci := proportionCI(0, 0, confidence)
	assert.Zero(t, p)
	assert.Equal(t, CI{0, 1}, ci)

	p, ci = proportionCI(0, 20, confidence)
	assert.Zero(t, p)
	assert.Zero(t, ci.Lo)
	assert.InDelta(t, 0.1684, ci.Hi, 1e-3)

	p, ci = proportionCI(5, 10, confidence)
	assert.Equal(t, 0.5, p)
	assert.InDelta(t, 0.1871, ci.Lo, 1e-3)
	assert.InDelta(t, 0.8129, ci.Hi, 1e-3)
}

func TestReportTable(t *testing.T) {
	rep, err := Run(context.Background(), config.DefaultConfig(), Options{
		Boards: 2, Swaps: 5, Seed: 1, Policy: PolicyGreedy,
	})
	require.NoError(t, err)

	out := rep.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "ragged line %q", l)
	}
	assert.Contains(t, out, "Classic")
	assert.Contains(t, out, "Hit rate")
	assert.Contains(t, out, "greedy")

	var buf bytes.Buffer
	require.NoError(t, rep.DumpBoards(&buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "board "))
}
