package game

import (
	"math/rand"
	"testing"
)

func mustLayout(t *testing.T, fresh bool, rows ...string) *Board {
	t.Helper()
	board, err := ParseLayout(rows, fresh)
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	return board
}

func TestGenerate_AdjacencyCounts(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		board := Generate(9, 7, 0.3, rand.New(rand.NewSource(seed)))

		mines := 0
		for y := 0; y < board.Height(); y++ {
			for x := 0; x < board.Width(); x++ {
				tile := board.TileAt(x, y)
				if tile.IsMine() {
					mines++
					continue
				}

				expected := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						neighbor := board.TileAt(x+dx, y+dy)
						if neighbor != nil && neighbor.IsMine() {
							expected++
						}
					}
				}
				if tile.AdjacentMines() != expected {
					t.Errorf("seed %d: tile (%d, %d) has %d adjacent mines, expected %d",
						seed, x, y, tile.AdjacentMines(), expected)
				}
			}
		}

		if board.MineCount() != mines {
			t.Errorf("seed %d: MineCount() = %d, counted %d", seed, board.MineCount(), mines)
		}
	}
}

func TestGenerate_NoMines(t *testing.T) {
	board := Generate(1, 1, 0, rand.New(rand.NewSource(1)))

	if board.NumCells() != 1 {
		t.Fatalf("Expected 1 cell, got %d", board.NumCells())
	}
	tile := board.TileAt(0, 0)
	if tile.IsMine() {
		t.Error("Tile should be free with a mine rate of 0")
	}
	if tile.AdjacentMines() != 0 {
		t.Errorf("Expected 0 adjacent mines, got %d", tile.AdjacentMines())
	}
	if board.MineCount() != 0 {
		t.Errorf("Expected 0 mines, got %d", board.MineCount())
	}
}

func TestGenerate_SameSeedSameBoard(t *testing.T) {
	a := Generate(10, 10, 0.2, rand.New(rand.NewSource(42)))
	b := Generate(10, 10, 0.2, rand.New(rand.NewSource(42)))

	layoutA, layoutB := a.Layout(), b.Layout()
	for y := range layoutA {
		if layoutA[y] != layoutB[y] {
			t.Fatalf("Row %d differs: %q vs %q", y, layoutA[y], layoutB[y])
		}
	}
}

func TestBoard_SingleCenterMine(t *testing.T) {
	board := mustLayout(t, true,
		"###",
		"#O#",
		"###",
	)

	if board.MineCount() != 1 {
		t.Fatalf("Expected 1 mine, got %d", board.MineCount())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			if n := board.TileAt(x, y).AdjacentMines(); n != 1 {
				t.Errorf("Tile (%d, %d): expected 1 adjacent mine, got %d", x, y, n)
			}
		}
	}
}

func TestBoard_TileAtOutOfBounds(t *testing.T) {
	board := mustLayout(t, true, "##", "##")

	for _, pt := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}} {
		if board.TileAt(pt.X, pt.Y) != nil {
			t.Errorf("TileAt(%d, %d) should be nil", pt.X, pt.Y)
		}
	}
	if board.TileAt(1, 1) == nil {
		t.Error("TileAt(1, 1) should exist")
	}
}

func TestBoard_NeighborOrder(t *testing.T) {
	board := mustLayout(t, true, "###", "###", "###")

	t.Run("center", func(t *testing.T) {
		expected := []Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
		var got []Point
		for neighbor := range board.Neighbors(1, 1) {
			got = append(got, Point{neighbor.X, neighbor.Y})
		}
		if len(got) != len(expected) {
			t.Fatalf("Expected %d neighbors, got %d", len(expected), len(got))
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("Neighbor %d: expected %v, got %v", i, expected[i], got[i])
			}
		}
	})

	t.Run("corner", func(t *testing.T) {
		expected := []Point{{1, 0}, {0, 1}, {1, 1}}
		var got []Point
		for neighbor := range board.Neighbors(0, 0) {
			got = append(got, Point{neighbor.X, neighbor.Y})
		}
		if len(got) != len(expected) {
			t.Fatalf("Expected %d neighbors, got %d", len(expected), len(got))
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("Neighbor %d: expected %v, got %v", i, expected[i], got[i])
			}
		}
	})

	t.Run("early stop", func(t *testing.T) {
		count := 0
		for range board.Neighbors(1, 1) {
			count++
			if count == 2 {
				break
			}
		}
		if count != 2 {
			t.Errorf("Expected to stop after 2 neighbors, got %d", count)
		}
	})
}

func TestBoard_SeedEasyStart(t *testing.T) {
	t.Run("marks only empty free tiles", func(t *testing.T) {
		board := Generate(12, 12, 0.1, rand.New(rand.NewSource(7)))
		marked := board.SeedEasyStart(5, rand.New(rand.NewSource(7)))

		if marked > 5 {
			t.Errorf("Marked %d tiles, wanted at most 5", marked)
		}
		found := 0
		for _, view := range board.Tiles() {
			if !view.Easy {
				continue
			}
			found++
			if view.Kind == Mine || view.AdjacentMines != 0 {
				t.Errorf("Easy tile at (%d, %d) is not an empty free tile", view.X, view.Y)
			}
		}
		if found != marked {
			t.Errorf("SeedEasyStart reported %d, found %d marked", marked, found)
		}
	})

	t.Run("no candidates is not an error", func(t *testing.T) {
		board := mustLayout(t, true, "O#O", "#O#")
		if marked := board.SeedEasyStart(3, rand.New(rand.NewSource(1))); marked != 0 {
			t.Errorf("Expected 0 easy tiles, got %d", marked)
		}
	})

	t.Run("zero requested", func(t *testing.T) {
		board := mustLayout(t, true, "###")
		if marked := board.SeedEasyStart(0, rand.New(rand.NewSource(1))); marked != 0 {
			t.Errorf("Expected 0 easy tiles, got %d", marked)
		}
	})
}

func TestParseLayout_Errors(t *testing.T) {
	cases := map[string][]string{
		"empty":   {},
		"ragged":  {"###", "##"},
		"unknown": {"#?#"},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseLayout(rows, true); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParseLayout_KeepsState(t *testing.T) {
	board := mustLayout(t, false,
		"F.#",
		"f#O",
	)

	if !board.TileAt(0, 0).IsFlagged() || !board.TileAt(0, 0).IsMine() {
		t.Error("(0, 0) should be a flagged mine")
	}
	if !board.TileAt(1, 0).IsRevealed() {
		t.Error("(1, 0) should be revealed")
	}
	if !board.TileAt(0, 1).IsFlagged() || board.TileAt(0, 1).IsMine() {
		t.Error("(0, 1) should be a flagged free tile")
	}
	if board.RevealedFree() != 1 {
		t.Errorf("Expected 1 revealed free tile, got %d", board.RevealedFree())
	}
	if board.countFlags() != 2 {
		t.Errorf("Expected 2 flags, got %d", board.countFlags())
	}

	layout := board.Layout()
	if layout[0] != "F.#" || layout[1] != "f#O" {
		t.Errorf("Layout did not round-trip: %v", layout)
	}
}
