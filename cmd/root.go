package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/faiface/pixel/pixelgl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/sweeper/director/constraint"
	"github.com/they4kman/sweeper/director/random"
	"github.com/they4kman/sweeper/game"
	"github.com/they4kman/sweeper/render/gui"
	"github.com/they4kman/sweeper/render/term"
	"github.com/they4kman/sweeper/tui"
)

var log = logrus.New()

var gameConfig = game.NewGameConfig()

var (
	configPath   string
	snapshotPath string
	directorName string
	useGUI       bool
	headless     bool
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Play manual or computer-driven Minesweeper",
	Long: `sweeper is a Minesweeper game for the terminal or a window, which
supports human- or computer-driven playing.

Run with no arguments to play in the terminal
	sweeper

Open a window instead
	sweeper --gui

Let the computer play for you, printing only the final board
	sweeper --director constraint --headless
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		game.SetLogger(log)
		constraint.SetLogger(log)
		gui.SetLogger(log)

		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		director, err := newDirector(directorName)
		if err != nil {
			return err
		}

		switch {
		case headless:
			if director == nil {
				return fmt.Errorf("--headless needs a --director to play")
			}
			return runHeadless(config, director)
		case useGUI:
			var runErr error
			pixelgl.Run(func() {
				runErr = gui.Run(config, director)
			})
			return runErr
		default:
			return runTUI(config, director)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildConfig starts from the config file, if any, and lays the flags the
// user actually passed over it
func buildConfig(cmd *cobra.Command) (game.GameConfig, error) {
	config := gameConfig
	if configPath != "" {
		loaded, err := game.LoadGameConfig(configPath)
		if err != nil {
			return config, err
		}

		flags := cmd.Flags()
		if flags.Changed("width") {
			loaded.Width = gameConfig.Width
		}
		if flags.Changed("height") {
			loaded.Height = gameConfig.Height
		}
		if flags.Changed("mine-rate") {
			loaded.MineRate = gameConfig.MineRate
		}
		if flags.Changed("easy-tiles") {
			loaded.EasyTiles = gameConfig.EasyTiles
		}
		if flags.Changed("seed") {
			loaded.Seed = gameConfig.Seed
		}
		if flags.Changed("scoring") {
			loaded.Scoring = gameConfig.Scoring
		}
		if flags.Changed("render-budget") {
			loaded.RenderBudget = gameConfig.RenderBudget
		}
		if flags.Changed("snapshots-dir") {
			loaded.SavedSnapshotsDir = gameConfig.SavedSnapshotsDir
		}
		config = loaded
	}

	if snapshotPath != "" {
		in, err := os.ReadFile(snapshotPath)
		if err != nil {
			return config, fmt.Errorf("reading snapshot: %w", err)
		}
		snapshot, err := game.LoadSnapshot(string(in))
		if err != nil {
			return config, fmt.Errorf("parsing snapshot %s: %w", snapshotPath, err)
		}
		config.Snapshot = snapshot
	}

	return config, config.Validate()
}

func newDirector(name string) (game.Director, error) {
	switch name {
	case "":
		return nil, nil
	case "random":
		return &random.Director{}, nil
	case "constraint":
		return &constraint.Director{}, nil
	default:
		return nil, fmt.Errorf("unknown director %q", name)
	}
}

func runTUI(config game.GameConfig, director game.Director) error {
	model, err := tui.NewModel(config, director)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return err
	}
	return model.Err()
}

func runHeadless(config game.GameConfig, director game.Director) error {
	session, err := game.NewSession(config, nil)
	if err != nil {
		return err
	}

	director.Init(session)
	defer director.End()

	for session.Status() == game.InProgress {
		before := session.Board().RevealedFree() + session.FlagsPlaced()
		director.Act()
		if session.Board().RevealedFree()+session.FlagsPlaced() == before && session.Status() == game.InProgress {
			log.Warn("director stalled")
			break
		}
	}

	printer := term.NewPrinter(os.Stdout)
	printer.RenderHeader(session.Header())
	printer.RenderBoard(session.Tiles())
	return nil
}

type scoringValue game.ScoringMode

func newScoringValue(val game.ScoringMode, p *game.ScoringMode) *scoringValue {
	*p = val
	return (*scoringValue)(p)
}

func (scoringVal *scoringValue) String() string {
	return game.ScoringMode(*scoringVal).String()
}

func (scoringVal *scoringValue) Set(value string) error {
	mode, err := game.ParseScoringMode(value)
	if err != nil {
		return err
	}
	*scoringVal = scoringValue(mode)
	return nil
}

func (scoringVal *scoringValue) Type() string {
	return "game.ScoringMode"
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().IntVarP(&gameConfig.Width, "width", "w", gameConfig.Width, "Width of game board, in tiles")
	rootCmd.Flags().IntVarP(&gameConfig.Height, "height", "h", gameConfig.Height, "Height of game board, in tiles")
	rootCmd.Flags().Float64VarP(&gameConfig.MineRate, "mine-rate", "m", gameConfig.MineRate, "Chance of each tile being a mine, in [0, 1)")
	rootCmd.Flags().IntVar(&gameConfig.EasyTiles, "easy-tiles", gameConfig.EasyTiles, "Number of empty tiles to mark as easy starting points")
	rootCmd.Flags().Int64Var(&gameConfig.Seed, "seed", 0, "Seed for board generation (0 = random)")
	rootCmd.Flags().Var(newScoringValue(game.AdjacencyScoring, &gameConfig.Scoring), "scoring", `Scoring rule for revealed tiles.
adjacency: each tile is worth its number of adjacent mines
flat: each tile is worth 1`)
	rootCmd.Flags().DurationVar(&gameConfig.RenderBudget, "render-budget", gameConfig.RenderBudget, "Minimum time between redraws while a reveal spreads")
	rootCmd.Flags().StringVar(&gameConfig.SavedSnapshotsDir, "snapshots-dir", "", "Directory to save a snapshot of every finished board to")

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with game settings")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Board snapshot to replay")
	rootCmd.Flags().StringVarP(&directorName, "director", "d", "", "Make the computer play (random, constraint)")
	rootCmd.Flags().BoolVar(&useGUI, "gui", false, "Play in a window instead of the terminal")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Let the director play without any UI and print the final board")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")
}
