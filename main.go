package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/termlife/game"
	"github.com/sheikhrachel/termlife/model"
	"github.com/sheikhrachel/termlife/utils"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termlife",
		Short: "Conway's Game of Life in the terminal",
		Long: `termlife seeds a bounded grid at random and prints one generation
per frame until the generation cap is reached or it is interrupted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), config, stdout, stderr)
		},
	}

	defaults := utils.DefaultConfig()
	flags := cmd.Flags()
	flags.String("config", "", "Path to a JSON or YAML config file")
	flags.Int("width", defaults.Width, "Grid width in cells")
	flags.Int("height", defaults.Height, "Grid height in cells")
	flags.Float64("spawn-probability", defaults.SpawnProbability, "Probability that a cell starts alive")
	flags.Int("max-steps", defaults.MaxSteps, "Number of generations to run (0 runs until interrupted)")
	flags.Duration("frame-delay", defaults.FrameDelay.Std(), "Pause between generations")
	flags.Uint64("seed", defaults.Seed, "Seed for the initial grid (0 seeds from the clock)")
	flags.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	flags.String("clear", defaults.ClearMode, "How to clear frames: command or ansi")
	flags.Bool("status", defaults.ShowStatus, "Print a status line under every frame")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file over the defaults
func resolveConfig(cmd *cobra.Command) (utils.Config, error) {
	flags := cmd.Flags()

	config := utils.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := utils.LoadConfig(path)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if flags.Changed("width") {
		config.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		config.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("spawn-probability") {
		config.SpawnProbability, _ = flags.GetFloat64("spawn-probability")
	}
	if flags.Changed("max-steps") {
		config.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("frame-delay") {
		delay, _ := flags.GetDuration("frame-delay")
		config.FrameDelay = utils.Duration(delay)
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-level") {
		config.LogLevel, _ = flags.GetString("log-level")
	}

	if flags.Changed("clear") {
		config.ClearMode, _ = flags.GetString("clear")
	}
	if flags.Changed("status") {
		config.ShowStatus, _ = flags.GetBool("status")
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[resolveConfig] invalid configuration")
	}
	return config, nil
}

// run plays the simulation until it finishes or SIGINT/SIGTERM arrives
func run(ctx context.Context, config utils.Config, stdout, stderr io.Writer) error {
	logger := utils.NewLogger(config.LogLevel, stderr)

	renderer := model.NewTerminalRenderer(stdout)
	if config.ClearMode == utils.ClearANSI {
		renderer.ClearScreen = model.ClearANSI
	}

	opts := []game.Option{
		game.WithMaxSteps(config.MaxSteps),
		game.WithFrameDelay(config.FrameDelay.Std()),
		game.WithLogger(logger),
	}
	if config.ShowStatus {
		opts = append(opts, game.WithStatus(stdout))
	}

	grid := model.New(config.Width, config.Height, config.SpawnProbability, model.NewRand(config.Seed))
	driver := game.NewDriver(grid, renderer, opts...)
	if config.Unbounded() {
		logger.Info("running until interrupted, press Ctrl+C to exit")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return driver.Run(ctx)
	})
	eg.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	stats := driver.Stats()
	fmt.Fprintf(stdout, "Generations: %d | Living: %d | Avg Pop: %.1f | Runtime: %.1fs\n",
		driver.Generation(), driver.Grid().CountLivingCells(), stats.AveragePopulation,
		stats.Runtime().Round(time.Millisecond).Seconds())
	return nil
}
