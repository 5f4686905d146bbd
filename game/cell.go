package game

import "fmt"

// Tile is the state of a single grid cell. Kind and the adjacency count are
// fixed once the board is generated; only the revealed and flagged bits move.
type Tile struct {
	kind          Kind
	adjacentMines int

	isRevealed, isFlagged bool
	isEasy                bool
	isLosingMine          bool
}

func (tile *Tile) Kind() Kind {
	return tile.kind
}

func (tile *Tile) IsMine() bool {
	return tile.kind == Mine
}

// AdjacentMines is only meaningful for Free tiles
func (tile *Tile) AdjacentMines() int {
	return tile.adjacentMines
}

func (tile *Tile) IsRevealed() bool {
	return tile.isRevealed
}

func (tile *Tile) IsFlagged() bool {
	return tile.isFlagged
}

func (tile *Tile) IsEasy() bool {
	return tile.isEasy
}

func (tile *Tile) IsLosingMine() bool {
	return tile.isLosingMine
}

func (tile *Tile) String() string {
	return fmt.Sprintf("Tile(%v, adjacent=%d, revealed=%v, flagged=%v)",
		tile.kind, tile.adjacentMines, tile.isRevealed, tile.isFlagged)
}

// toggleFlagged flips the flag on a hidden tile, returning the change in
// placed flags (+1, -1, or 0 when the tile is already revealed)
func (tile *Tile) toggleFlagged() int {
	if tile.isRevealed {
		return 0
	}
	tile.isFlagged = !tile.isFlagged
	if tile.isFlagged {
		return 1
	}
	return -1
}

func (tile *Tile) markRevealed() {
	tile.isRevealed = true
	tile.isFlagged = false
}

func (tile *Tile) serialize() string {
	switch {
	case tile.IsMine():
		switch {
		case tile.isLosingMine:
			return "*"
		case tile.isFlagged:
			return "F"
		default:
			return "O"
		}
	case tile.isFlagged:
		return "f"
	case tile.isRevealed:
		return "."
	default:
		return "#"
	}
}

func (tile *Tile) deserialize(c rune, fresh bool) error {
	switch c {
	case '*', 'F', 'O':
		tile.kind = Mine

		if fresh {
			return nil
		}
		switch c {
		case '*':
			tile.isLosingMine = true
			tile.isRevealed = true
		case 'F':
			tile.isFlagged = true
		}
	case 'f':
		tile.kind = Free
		tile.isFlagged = !fresh
	case '.':
		tile.kind = Free
		tile.isRevealed = !fresh
	case '#':
		tile.kind = Free
	default:
		return fmt.Errorf("unknown tile symbol %q", c)
	}

	return nil
}
