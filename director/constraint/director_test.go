package constraint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweeper/game"
)

func newSession(t *testing.T, rows ...string) *game.Session {
	t.Helper()
	board, err := game.ParseLayout(rows, false)
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	config := game.NewGameConfig()
	config.Seed = 1
	return game.NewSessionWithBoard(config, board, nil)
}

func TestObservations(t *testing.T) {
	session := newSession(t,
		"O.",
		"..",
		"##",
	)

	observations := Observations(session.Board())
	if len(observations) != 3 {
		t.Fatalf("Expected 3 observations, got %d", len(observations))
	}

	first := observations[0]
	if first.Origin != (game.Point{X: 1, Y: 0}) {
		t.Errorf("Expected the first observation at (1, 0), got %v", first.Origin)
	}
	if first.NumMines != 1 || len(first.Cells) != 1 || first.Cells[0] != (game.Point{X: 0, Y: 0}) {
		t.Errorf("Unexpected observation %+v", first)
	}

	session.ToggleFlag(0, 0)
	for _, observation := range Observations(session.Board()) {
		if observation.NumMines != 0 {
			t.Errorf("%v: flag should account for the only mine, got %d", observation.Origin, observation.NumMines)
		}
	}
}

func TestDirector_FlagsThenChords(t *testing.T) {
	session := newSession(t,
		"O.",
		"..",
		"##",
	)

	director := &Director{}
	director.Init(session)
	defer director.End()

	director.Act()
	if !session.Board().TileAt(0, 0).IsFlagged() {
		t.Fatal("First act should flag the certain mine")
	}
	if session.FlagsPlaced() != 1 {
		t.Errorf("Expected 1 flag, got %d", session.FlagsPlaced())
	}

	director.Act()
	if session.Status() != game.Won {
		t.Errorf("Second act should chord the rest of the board, got %v", session.Status())
	}
}

func TestDirector_FallsBackToRandom(t *testing.T) {
	config := game.NewGameConfig()
	config.Width, config.Height, config.MineRate, config.Seed = 3, 3, 0, 1
	session, err := game.NewSession(config, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	director := &Director{}
	director.Init(session)
	director.Act()

	if session.Status() != game.Won {
		t.Errorf("With nothing revealed the director should guess, got %v", session.Status())
	}
}

func TestSetLogger(t *testing.T) {
	previous := log
	defer SetLogger(previous)

	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)

	session := newSession(t,
		"O.",
		"..",
		"##",
	)
	director := &Director{}
	director.Init(session)
	director.Act()

	if !strings.Contains(out.String(), "flagged certain mines") {
		t.Errorf("Expected the director's reasoning in the configured logger, got %q", out.String())
	}
}
