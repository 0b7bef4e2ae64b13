package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/beka-birhanu/mazebot/board"
	"github.com/beka-birhanu/mazebot/config"
	dmn "github.com/beka-birhanu/mazebot/domain"
	logger "github.com/beka-birhanu/mazebot/infrastruture/log"
	"github.com/beka-birhanu/mazebot/navigation"
	"github.com/beka-birhanu/mazebot/robot"
	"github.com/beka-birhanu/mazebot/simulation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ErrNoBoard      = errors.New("a board file or --random is required")
	ErrRandomFormat = errors.New("--random must look like WIDTHxHEIGHT")
)

type runFlags struct {
	budget   int
	rotation string
	engine   string
	output   string
	watch    bool
	random   string
	seed     int64
	braid    int
	save     string
}

var runOpts runFlags

var runCmd = &cobra.Command{
	Use:   "run [FILE]",
	Short: "Run a decider on a board file or a generated maze",
	Example: `  mazebot run maze.txt
  mazebot run maze.txt --rotation turn --output yaml
  mazebot run --random 12x8 --seed 7 --braid 10 --save maze.txt
  mazebot run maze.txt --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runOpts.budget, "budget", 0, "step budget; defaults to STEP_BUDGET")
	f.StringVar(&runOpts.rotation, "rotation", "", "rotation mode (fixed, turn); defaults to ROTATION_MODE")
	f.StringVar(&runOpts.engine, "engine", string(dmn.EngineTremaux), "decider to run (tremaux, wallfollower)")
	f.StringVarP(&runOpts.output, "output", "o", formatText, "output format (text, json, yaml)")
	f.BoolVarP(&runOpts.watch, "watch", "w", false, "rerun whenever FILE changes")
	f.StringVar(&runOpts.random, "random", "", "generate a WIDTHxHEIGHT maze instead of reading FILE")
	f.Int64Var(&runOpts.seed, "seed", 0, "seed for --random; 0 picks one from the clock")
	f.IntVar(&runOpts.braid, "braid", 0, "walls to knock out of a --random maze to add loops")
	f.StringVar(&runOpts.save, "save", "", "write the --random maze to this file")
}

// runSettings is everything a single run needs once flags and config are merged.
type runSettings struct {
	engine   dmn.Engine
	rotation robot.RotationMode
	budget   int
	format   string
	logger   *zap.Logger
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings, err := newRunSettings(cfg, runOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if runOpts.random != "" {
		b, seed, err := randomBoard(runOpts.random, runOpts.seed, runOpts.braid)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "seed %d\n", seed)
		if runOpts.save != "" {
			if err := b.Save(runOpts.save); err != nil {
				return err
			}
		}
		return exitFor(runBoard(out, b, settings))
	}

	if len(args) == 0 {
		return ErrNoBoard
	}
	path := args[0]

	if runOpts.watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, path, func() {
			if err := runFile(out, path, settings); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		})
	}
	return exitFor(runFileResult(out, path, settings))
}

func newRunSettings(cfg config.Config, flags runFlags) (runSettings, error) {
	s := runSettings{
		engine:   dmn.Engine(flags.engine),
		rotation: cfg.Rotation,
		budget:   cfg.StepBudget,
		format:   flags.output,
	}
	if !s.engine.Valid() {
		return runSettings{}, fmt.Errorf("unknown engine %q", flags.engine)
	}
	if flags.rotation != "" {
		r, err := robot.ParseRotationMode(flags.rotation)
		if err != nil {
			return runSettings{}, err
		}
		s.rotation = r
	}
	if flags.budget != 0 {
		s.budget = flags.budget
	}
	if s.budget <= 0 {
		return runSettings{}, fmt.Errorf("step budget must be positive, got %d", s.budget)
	}
	if !validFormat(s.format) {
		return runSettings{}, fmt.Errorf("%w %q", ErrUnknownFormat, s.format)
	}

	l, err := logger.New("ENGINE", config.ColorCyan, os.Stderr, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return runSettings{}, err
	}
	s.logger = l
	return s, nil
}

func runFile(w io.Writer, path string, s runSettings) error {
	_, err := runFileResult(w, path, s)
	return err
}

func runFileResult(w io.Writer, path string, s runSettings) (simulation.Result, error) {
	b, err := board.Load(path)
	if err != nil {
		return simulation.Result{}, err
	}
	return runBoard(w, b, s)
}

// runBoard runs the configured decider on b and writes the result.
func runBoard(w io.Writer, b *board.Board, s runSettings) (simulation.Result, error) {
	b.SetRotation(s.rotation)

	log := s.logger
	if log == nil {
		log = zap.NewNop()
	}

	var d robot.Decider
	switch s.engine {
	case dmn.EngineWallFollower:
		d = navigation.NewWallFollower(s.rotation)
	default:
		d = navigation.New(navigation.Config{Rotation: s.rotation, Logger: log}).NewAttempt()
	}

	res := simulation.Run(b, d, simulation.Options{StepBudget: s.budget, Logger: log})
	if err := writeResult(w, s.format, b, res); err != nil {
		return res, err
	}
	return res, nil
}

func exitFor(res simulation.Result, err error) error {
	if err != nil {
		return err
	}
	if res.Outcome != simulation.OutcomeReached {
		return &exitError{code: ExitNoExit, msg: string(res.Outcome)}
	}
	return nil
}

// randomBoard generates a Wilson maze from a "WxH" size.
func randomBoard(size string, seed int64, braid int) (*board.Board, int64, error) {
	w, h, err := parseSize(size)
	if err != nil {
		return nil, 0, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	b, err := board.Generate(w, h, rng)
	if err != nil {
		return nil, 0, err
	}
	if braid > 0 {
		b.Braid(braid, rng)
	}
	return b, seed, nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, ErrRandomFormat
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrRandomFormat
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrRandomFormat
	}
	return w, h, nil
}

// watch calls fn once and again after every change to path until ctx is done.
func watch(ctx context.Context, path string, fn func()) error {
	fn()
	return watchFile(ctx, path, fn)
}
