// Package game drives a simulation: it renders the current generation,
// advances the grid and paces the output.
package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/termlife/model"
	"github.com/sheikhrachel/termlife/utils"
)

// Renderer draws frames; model.TerminalRenderer is the console implementation
type Renderer interface {
	Clear() error
	Display(g *model.Grid) error
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Driver owns the current grid and runs the render/advance loop
type Driver struct {
	grid       *model.Grid
	renderer   Renderer
	maxSteps   int
	frameDelay time.Duration
	sleep      Sleeper
	logger     *slog.Logger
	stats      *utils.Stats
	generation int
	history    history
	stagnantAt int
	status     io.Writer
}

type Option func(*Driver)

// WithMaxSteps caps the run at n generations; 0 runs until the context ends
func WithMaxSteps(n int) Option {
	return func(d *Driver) { d.maxSteps = n }
}

// WithFrameDelay sets the pause after each generation
func WithFrameDelay(delay time.Duration) Option {
	return func(d *Driver) { d.frameDelay = delay }
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// WithStatus prints a status line to w under every frame
func WithStatus(w io.Writer) Option {
	return func(d *Driver) { d.status = w }
}

func WithSleeper(sleep Sleeper) Option {
	return func(d *Driver) { d.sleep = sleep }
}

// NewDriver creates a driver with the given starting generation
func NewDriver(grid *model.Grid, renderer Renderer, opts ...Option) *Driver {
	d := &Driver{
		grid:       grid,
		renderer:   renderer,
		maxSteps:   utils.DefaultMaxSteps,
		frameDelay: utils.DefaultFrameDelay,
		sleep:      sleepContext,
		logger:     slog.Default(),
		stats:      utils.NewStats(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Grid returns the current generation
func (d *Driver) Grid() *model.Grid {
	return d.grid
}

// Generation returns the number of completed advances
func (d *Driver) Generation() int {
	return d.generation
}

// Stagnant reports whether the grid has settled into a still life or a
// period-2 oscillation, and the generation where that was first seen
func (d *Driver) Stagnant() (bool, int) {
	return d.stagnantAt > 0, d.stagnantAt
}

// Stats returns the run statistics
func (d *Driver) Stats() *utils.Stats {
	return d.stats
}

// Run renders and advances until the step cap is reached or ctx is cancelled.
// Cancellation is a clean stop and returns nil.
func (d *Driver) Run(ctx context.Context) error {
	d.stats.StartTime = time.Now()
	d.logger.Info("simulation started",
		"width", d.grid.Width(),
		"height", d.grid.Height(),
		"living", d.grid.CountLivingCells(),
		"max_steps", d.maxSteps,
		"frame_delay", d.frameDelay,
	)

	d.history.record(d.grid)
	lastFrameTime := time.Now()
	for d.maxSteps == 0 || d.generation < d.maxSteps {
		if ctx.Err() != nil {
			break
		}

		if err := d.renderFrame(); err != nil {
			return err
		}
		if err := d.displayStatus(); err != nil {
			return err
		}

		d.Advance()

		frameStart := time.Now()
		d.stats.Update(d.generation, d.grid.CountLivingCells(), frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart
		d.logger.Debug("generation advanced",
			"generation", d.generation,
			"living", d.stats.Population,
			"avg_population", d.stats.AveragePopulation,
		)
		if d.history.record(d.grid) && d.stagnantAt == 0 {
			d.stagnantAt = d.generation
			d.logger.Info("grid stagnant", "generation", d.generation, "living", d.stats.Population)
		}

		if err := d.sleep(ctx, d.frameDelay); err != nil {
			break
		}
	}

	d.logger.Info("simulation finished",
		"generations", d.generation,
		"runtime", d.stats.Runtime().Round(time.Millisecond),
		"interrupted", ctx.Err() != nil,
	)
	return nil
}

// Advance replaces the current grid with the next generation
func (d *Driver) Advance() {
	d.grid = d.grid.Step()
	d.generation++
}

func (d *Driver) renderFrame() error {
	if err := d.renderer.Clear(); err != nil {
		return errors.Wrapf(err, "[Run] failed to clear frame at generation %d", d.generation)
	}
	if err := d.renderer.Display(d.grid); err != nil {
		return errors.Wrapf(err, "[Run] failed to display generation %d", d.generation)
	}
	return nil
}

// displayStatus shows the generation currently on screen
func (d *Driver) displayStatus() error {
	if d.status == nil {
		return nil
	}

	living := d.grid.CountLivingCells()
	density := float64(living) / float64(d.grid.Width()*d.grid.Height()) * 100
	status := "Active"
	if d.stagnantAt > 0 {
		status = fmt.Sprintf("Stagnant since %d", d.stagnantAt)
	}
	if living == 0 {
		status = "Extinct"
	}

	if _, err := fmt.Fprintf(d.status, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		d.generation, living, density, status); err != nil {
		return errors.Wrapf(err, "[Run] failed to display status at generation %d", d.generation)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
