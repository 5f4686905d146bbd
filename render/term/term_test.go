package term

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/they4kman/sweeper/game"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestGlyph(t *testing.T) {
	cases := map[string]struct {
		tile     game.TileView
		expected string
	}{
		"hidden":  {game.TileView{}, "#"},
		"easy":    {game.TileView{Easy: true}, "+"},
		"flagged": {game.TileView{Flagged: true, Kind: game.Mine}, "F"},
		"empty":   {game.TileView{Revealed: true}, "."},
		"number":  {game.TileView{Revealed: true, AdjacentMines: 3}, "3"},
		"mine":    {game.TileView{Revealed: true, Kind: game.Mine}, "*"},
		"losing":  {game.TileView{Revealed: true, Kind: game.Mine, Losing: true}, "X"},
	}

	for name, c := range cases {
		if got := Glyph(c.tile); got != c.expected {
			t.Errorf("%s: expected %q, got %q", name, c.expected, got)
		}
	}
}

func TestBoard(t *testing.T) {
	board, err := game.ParseLayout([]string{"O.#", "..#"}, false)
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	tiles := board.Tiles()
	styles := DefaultStyles()

	if Width(tiles) != 3 {
		t.Fatalf("Expected width 3, got %d", Width(tiles))
	}

	got := stripANSI(styles.Board(tiles, Width(tiles), nil))
	expected := "# 1 #\n1 1 #"
	if got != expected {
		t.Errorf("Expected\n%s\ngot\n%s", expected, got)
	}

	withCursor := stripANSI(styles.Board(tiles, Width(tiles), &game.Point{X: 2, Y: 1}))
	if withCursor != expected {
		t.Errorf("Cursor should only change styling, got\n%s", withCursor)
	}

	if styles.Board(nil, 0, nil) != "" {
		t.Error("An empty board should render nothing")
	}
}

func TestHeader(t *testing.T) {
	styles := DefaultStyles()

	cases := map[game.Status]string{
		game.InProgress: "Score: 12  Flags: 1 / 4",
		game.Won:        "Score: 12  Flags: 1 / 4  WIN!",
		game.Lost:       "Score: 12  Flags: 1 / 4  LOSE :(",
	}
	for status, expected := range cases {
		header := game.Header{Score: 12, FlagsPlaced: 1, MineCount: 4, Status: status}
		if got := stripANSI(styles.Header(header)); got != expected {
			t.Errorf("%v: expected %q, got %q", status, expected, got)
		}
	}
}

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	printer := NewPrinter(&out)

	config := game.NewGameConfig()
	config.Width, config.Height, config.MineRate, config.Seed = 2, 2, 0, 1
	session, err := game.NewSession(config, printer)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	session.Reveal(0, 0)

	printed := stripANSI(out.String())
	if !strings.HasPrefix(printed, "# #\n# #\nScore: 0  Flags: 0 / 0\n") {
		t.Errorf("Unexpected initial output:\n%s", printed)
	}
	if !strings.Contains(printed, ". .\n. .\n") {
		t.Errorf("Expected the cleared board to be printed:\n%s", printed)
	}
	if !strings.HasSuffix(printed, "WIN!\n") {
		t.Errorf("Expected the output to end with the win:\n%s", printed)
	}
}
