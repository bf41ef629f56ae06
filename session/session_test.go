package session

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/pattern"
	"github.com/sheikhrachel/sparse-gol/utils"
)

func testConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.ViewWidth = 6
	cfg.ViewHeight = 6
	cfg.OriginX = -3
	cfg.OriginY = -3
	cfg.FrameRate = utils.Duration(time.Millisecond)
	cfg.ClearScreen = false
	return cfg
}

func newTestSession(t *testing.T, cfg utils.Config, name string, out io.Writer) *Session {
	t.Helper()
	p, ok := pattern.Builtin(name)
	require.True(t, ok)
	s, err := New(cfg, p, out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestNewRejectsMalformedPattern(t *testing.T) {
	p := pattern.Pattern{Name: "broken", Cells: [][]int{{0, 0}, {1}}}
	_, err := New(testConfig(), p, io.Discard, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidCoordinate))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	p, ok := pattern.Builtin("block")
	require.True(t, ok)

	for name, mutate := range map[string]func(*utils.Config){
		"zero frame rate":     func(c *utils.Config) { c.FrameRate = 0 },
		"negative frame rate": func(c *utils.Config) { c.FrameRate = utils.Duration(-time.Second) },
		"empty view":          func(c *utils.Config) { c.ViewWidth = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(&cfg)
			s, err := New(cfg, p, io.Discard, nil)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), "[New] invalid config")
		})
	}
}

func TestRunStepThenQuit(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t, testConfig(), "blinker", &out)

	commands := make(chan Command, 2)
	commands <- CmdStep
	commands <- CmdQuit

	require.NoError(t, s.Run(context.Background(), commands))

	assert.Equal(t, 1, s.Life().Generation())
	assert.Equal(t, model.NewCoordSet(model.Coord{X: 1, Y: -1}, model.Coord{X: 1, Y: 0}, model.Coord{X: 1, Y: 1}), s.Life().LiveCells())
	// seeded frame plus one frame per completed turn
	assert.Equal(t, 2, strings.Count(out.String(), "living: 3"))
}

func TestRunClosedCommandsStops(t *testing.T) {
	s := newTestSession(t, testConfig(), "block", io.Discard)

	commands := make(chan Command)
	close(commands)

	require.NoError(t, s.Run(context.Background(), commands))
	assert.Equal(t, 0, s.Life().Generation())
}

func TestRunAutoAdvanceStopsAtMaxGenerations(t *testing.T) {
	cfg := testConfig()
	cfg.AutoAdvance = true
	cfg.MaxGenerations = 4
	s := newTestSession(t, cfg, "glider", io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Run(ctx, nil))
	assert.Equal(t, 4, s.Life().Generation())
	assert.Equal(t, 4, s.Stats().TotalGenerations)
	assert.Equal(t, 5, s.Life().LiveCount())
}

func TestRunPausesOnExtinction(t *testing.T) {
	cfg := testConfig()
	cfg.AutoAdvance = true

	p := pattern.Pattern{Name: "lonely", Cells: [][]int{{0, 0}}}
	s, err := New(cfg, p, io.Discard, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Run(ctx, nil))
	assert.Equal(t, 1, s.Life().Generation())
	assert.Equal(t, 0, s.Life().LiveCount())
}

func TestRunPausesOnStagnation(t *testing.T) {
	cfg := testConfig()
	cfg.AutoAdvance = true
	cfg.StagnationThreshold = 2
	s := newTestSession(t, cfg, "block", io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Run(ctx, nil))
	assert.Equal(t, 2, s.Life().Generation())
}

func TestRunToggleAuto(t *testing.T) {
	cfg := testConfig()
	cfg.MaxGenerations = 3
	s := newTestSession(t, cfg, "r-pentomino", io.Discard)

	commands := make(chan Command, 1)
	commands <- CmdToggleAuto

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Run(ctx, commands))
	assert.Equal(t, 3, s.Life().Generation())
}

func TestParseCommand(t *testing.T) {
	cases := map[string]Command{
		"":      CmdStep,
		"  ":    CmdStep,
		"p":     CmdToggleAuto,
		"SPACE": CmdToggleAuto,
		"q":     CmdQuit,
		"esc":   CmdQuit,
	}
	for line, want := range cases {
		got, ok := ParseCommand(line)
		require.True(t, ok, line)
		assert.Equal(t, want, got, line)
	}

	_, ok := ParseCommand("jump")
	assert.False(t, ok)
	assert.Equal(t, "toggle", CmdToggleAuto.String())
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "living: 5 | gen: 0", statusLine(0, 5, utils.NewStats()))

	stats := utils.NewStats()
	stats.Update(1, 4, 0)
	assert.Equal(t, "living: 4 | gen: 1 | 0.0 gen/sec | avg pop: 4.0", statusLine(1, 4, stats))
}

func TestViewport(t *testing.T) {
	box := viewport(testConfig())
	assert.Equal(t, model.Box{MinX: -3, MinY: -3, MaxX: 2, MaxY: 2}, box)
	assert.Equal(t, 36, box.Area())
}
