package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/pattern"
)

// SimulateOptions holds flags for the simulate command
type SimulateOptions struct {
	Pattern string
	Turns   int
	Render  bool
	Width   int
	Height  int
	Format  string // "text" | "json"
}

// maxRenderCells caps the area drawn by --render
const maxRenderCells = 1 << 20

// SimulateResult is the summary printed after a headless run
type SimulateResult struct {
	Pattern    string    `json:"pattern"`
	Generation int       `json:"generation"`
	Living     int       `json:"living"`
	Touched    int       `json:"touched"`
	Bounds     model.Box `json:"bounds"`
	Hash       string    `json:"hash"`
	ElapsedMS  int64     `json:"elapsed_ms"`
}

// NewSimulateCommand creates the headless simulate command
func NewSimulateCommand(root *RootOptions) *cobra.Command {
	opts := &SimulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance a pattern without a UI and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "text" && opts.Format != "json" {
				return errors.Errorf("invalid format %q: must be text or json", opts.Format)
			}
			if opts.Turns < 0 {
				return errors.Errorf("turns must not be negative, got %d", opts.Turns)
			}
			name := root.Config.Pattern
			if cmd.Flags().Changed("pattern") {
				name = opts.Pattern
			}
			if !cmd.Flags().Changed("width") {
				opts.Width = root.Config.ViewWidth
			}
			if !cmd.Flags().Changed("height") {
				opts.Height = root.Config.ViewHeight
			}
			if opts.Render {
				if opts.Width <= 0 || opts.Height <= 0 {
					return errors.Errorf("render view must be positive, got %dx%d", opts.Width, opts.Height)
				}
				if opts.Width > maxRenderCells/opts.Height {
					return errors.Errorf("render view %dx%d exceeds %d cells", opts.Width, opts.Height, maxRenderCells)
				}
			}

			p, err := pattern.Load(name)
			if err != nil {
				return err
			}
			res, life, err := simulate(p, opts.Turns, model.WithLogger(root.Logger))
			if err != nil {
				return err
			}
			return writeSimulateResult(cmd.OutOrStdout(), res, life, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "", "built-in pattern name or pattern file")
	cmd.Flags().IntVarP(&opts.Turns, "turns", "n", 100, "number of turns to advance")
	cmd.Flags().BoolVar(&opts.Render, "render", false, "draw the final population")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "render view width in cells (default view_width from config)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "render view height in cells (default view_height from config)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	return cmd
}

func simulate(p pattern.Pattern, turns int, opts ...model.Option) (SimulateResult, *model.Life, error) {
	life := model.NewLife(opts...)
	if err := life.SeedPairs(p.Cells); err != nil {
		return SimulateResult{}, nil, errors.Wrapf(err, "[simulate] failed to seed pattern %q", p.Name)
	}

	start := time.Now()
	life.Advance(turns)

	return SimulateResult{
		Pattern:    p.Name,
		Generation: life.Generation(),
		Living:     life.LiveCount(),
		Touched:    life.Touched(),
		Bounds:     life.Bounds(),
		Hash:       life.Hash(),
		ElapsedMS:  time.Since(start).Milliseconds(),
	}, life, nil
}

func writeSimulateResult(w io.Writer, res SimulateResult, life *model.Life, opts *SimulateOptions) error {
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(res), "[writeSimulateResult] failed to encode result")
	}

	fmt.Fprintf(w, "pattern: %s\n", res.Pattern)
	fmt.Fprintf(w, "generation: %d\n", res.Generation)
	fmt.Fprintf(w, "living: %d\n", res.Living)
	fmt.Fprintf(w, "touched: %d\n", res.Touched)
	fmt.Fprintf(w, "bounds: (%d, %d) - (%d, %d)\n", res.Bounds.MinX, res.Bounds.MinY, res.Bounds.MaxX, res.Bounds.MaxY)

	if opts.Render && res.Living > 0 {
		r := model.NewTerminalRenderer(w)
		return r.Display("", renderView(res.Bounds, opts.Width, opts.Height), life.LiveCells(), life.DeadTouchedCells())
	}
	return nil
}

// renderView returns bounds when it fits in width x height, otherwise a window of that size
// centred on bounds
func renderView(bounds model.Box, width, height int) model.Box {
	if uint(bounds.MaxX)-uint(bounds.MinX) < uint(width) && uint(bounds.MaxY)-uint(bounds.MinY) < uint(height) {
		return bounds
	}
	return model.BoxAround(bounds.Center(), width, height)
}
