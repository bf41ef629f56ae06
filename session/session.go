// Package session drives one interactive game: it owns a Life, hands turns to a single worker
// goroutine and redraws when the worker reports a completed turn.
package session

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/pattern"
	"github.com/sheikhrachel/sparse-gol/utils"
)

// errStop ends the session without reporting an error to the caller
var errStop = errors.New("session stopped")

// TurnResult is posted by the worker after every completed turn
type TurnResult struct {
	Generation int
	Living     int
	Touched    int
	Bounds     model.Box
	Hash       string
	Duration   time.Duration
}

// Session exclusively owns one Life and the renderer that shows it
type Session struct {
	id       uuid.UUID
	cfg      utils.Config
	life     *model.Life
	renderer *model.TerminalRenderer
	history  *model.History
	stats    *utils.Stats
	logger   *slog.Logger
}

// New creates a session seeded with p
func New(cfg utils.Config, p pattern.Pattern, out io.Writer, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "[New] invalid config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	logger = logger.With("session", id.String())

	life := model.NewLife(model.WithLogger(logger))
	if err := life.SeedPairs(p.Cells); err != nil {
		return nil, errors.Wrapf(err, "[New] failed to seed pattern %q", p.Name)
	}

	history := model.NewHistory(0)
	history.Observe(life.Hash())

	logger.Info("session created", "pattern", p.Name, "living", life.LiveCount())

	return &Session{
		id:       id,
		cfg:      cfg,
		life:     life,
		renderer: model.NewTerminalRenderer(out),
		history:  history,
		stats:    utils.NewStats(),
		logger:   logger,
	}, nil
}

// ID returns the session identifier used in log lines
func (s *Session) ID() uuid.UUID { return s.id }

// Life returns the session's automaton. Only safe to use once Run has returned.
func (s *Session) Life() *model.Life { return s.life }

// Stats returns the session statistics. Only safe to use once Run has returned.
func (s *Session) Stats() *utils.Stats { return s.stats }

// Run draws the seeded state and processes commands until CmdQuit, a closed command channel,
// the generation limit, or ctx cancellation. A turn in flight is always allowed to finish.
func (s *Session) Run(ctx context.Context, commands <-chan Command) error {
	g, gctx := errgroup.WithContext(ctx)

	requests := make(chan struct{})
	results := make(chan TurnResult)

	g.Go(func() error {
		return s.worker(gctx, requests, results)
	})
	g.Go(func() error {
		defer close(requests)
		return s.loop(gctx, commands, requests, results)
	})

	err := g.Wait()
	s.logger.Info("session finished",
		"generations", s.stats.TotalGenerations,
		"runtime", s.stats.Runtime().Round(time.Millisecond),
		"avg_population", s.stats.AveragePopulation,
	)
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

// worker is the only goroutine that calls Advance while the session runs
func (s *Session) worker(ctx context.Context, requests <-chan struct{}, results chan<- TurnResult) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-requests:
			if !ok {
				return nil
			}
		}

		start := time.Now()
		s.life.Advance(1)
		res := TurnResult{
			Generation: s.life.Generation(),
			Living:     s.life.LiveCount(),
			Touched:    s.life.Touched(),
			Bounds:     s.life.Bounds(),
			Hash:       s.life.Hash(),
			Duration:   time.Since(start),
		}

		select {
		case results <- res:
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Session) loop(
	ctx context.Context,
	commands <-chan Command,
	requests chan<- struct{},
	results <-chan TurnResult,
) error {
	if err := s.draw(); err != nil {
		return err
	}

	var (
		auto          = s.cfg.AutoAdvance
		inFlight      = false
		quitting      = false
		stagnantCount = 0
		ticker        = time.NewTicker(time.Duration(s.cfg.FrameRate))
	)
	defer ticker.Stop()

	request := func() {
		if inFlight {
			return
		}
		select {
		case requests <- struct{}{}:
			inFlight = true
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				cmd = CmdQuit
			}
			switch cmd {
			case CmdStep:
				request()
			case CmdToggleAuto:
				auto = !auto
				s.logger.Info("auto advance toggled", "enabled", auto)
			case CmdQuit:
				if !inFlight {
					return errStop
				}
				quitting = true
			}

		case <-ticker.C:
			if auto && !quitting {
				request()
			}

		case res := <-results:
			inFlight = false
			s.stats.Update(res.Generation, res.Living, res.Duration)
			s.stats.TouchedCells = res.Touched
			s.stats.BoundingBoxSize = res.Bounds.Area()

			if s.history.Observe(res.Hash) {
				stagnantCount++
			} else {
				stagnantCount = 0
			}

			if err := s.draw(); err != nil {
				return err
			}
			if quitting {
				return errStop
			}

			if s.cfg.MaxGenerations > 0 && res.Generation >= s.cfg.MaxGenerations {
				s.logger.Info("reached maximum generations", "limit", s.cfg.MaxGenerations)
				return errStop
			}
			if res.Living == 0 && auto {
				s.logger.Info("population extinct, pausing", "generation", res.Generation)
				auto = false
			}
			if s.cfg.StagnationThreshold > 0 && stagnantCount >= s.cfg.StagnationThreshold && auto {
				s.logger.Info("stagnation detected, pausing", "generation", res.Generation)
				auto = false
			}
		}
	}
}

// draw repaints the viewport. Callers must not have a turn in flight.
func (s *Session) draw() error {
	if s.cfg.ClearScreen {
		if err := s.renderer.Clear(); err != nil {
			return errors.Wrap(err, "[draw] failed to clear screen")
		}
	}
	err := s.renderer.Display(
		statusLine(s.life.Generation(), s.life.LiveCount(), s.stats),
		viewport(s.cfg),
		s.life.LiveCells(),
		s.life.DeadTouchedCells(),
	)
	return errors.Wrap(err, "[draw] failed to render grid")
}
