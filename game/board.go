package game

import (
	"iter"
	"math/rand"

	"github.com/sirupsen/logrus"
)

type Board struct {
	width, height int // in number of tiles
	mineCount     int
	cells         []Tile

	revealedFree int
}

// Point addresses a tile by its grid coordinates
type Point struct {
	X, Y int
}

type Neighbor struct {
	X, Y int
	Tile *Tile
}

func newBoard(width, height int) *Board {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Tile, width*height),
	}
}

// Generate places mines independently with probability mineRate, then
// computes adjacency counts once the whole placement is fixed.
func Generate(width, height int, mineRate float64, rng *rand.Rand) *Board {
	board := newBoard(width, height)

	for idx := range board.cells {
		if rng.Float64() < mineRate {
			board.cells[idx].kind = Mine
		}
	}
	board.fillAdjacency()

	log.WithFields(logrus.Fields{
		"width":  board.width,
		"height": board.height,
		"mines":  board.mineCount,
	}).Debug("generated board")

	return board
}

// fillAdjacency recounts mines and every Free tile's adjacency from the
// current mine placement
func (board *Board) fillAdjacency() {
	board.mineCount = 0
	for idx := range board.cells {
		if board.cells[idx].IsMine() {
			board.mineCount++
		}
	}

	for y := 0; y < board.height; y++ {
		for x := 0; x < board.width; x++ {
			tile := board.TileAt(x, y)
			if tile.IsMine() {
				continue
			}

			tile.adjacentMines = 0
			for neighbor := range board.Neighbors(x, y) {
				if neighbor.Tile.IsMine() {
					tile.adjacentMines++
				}
			}
		}
	}
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCells() int {
	return len(board.cells)
}

func (board *Board) MineCount() int {
	return board.mineCount
}

func (board *Board) NumFree() int {
	return len(board.cells) - board.mineCount
}

func (board *Board) RevealedFree() int {
	return board.revealedFree
}

// Cleared reports whether every Free tile has been revealed
func (board *Board) Cleared() bool {
	return board.revealedFree == board.NumFree()
}

func (board *Board) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < board.width && y < board.height
}

func (board *Board) index(x, y int) int {
	return y*board.width + x
}

// TileAt returns nil for coordinates outside the board
func (board *Board) TileAt(x, y int) *Tile {
	if board.inBounds(x, y) {
		return &board.cells[board.index(x, y)]
	}
	return nil
}

func (board *Board) Neighbors(x, y int) iter.Seq[Neighbor] {
	return func(yield func(Neighbor) bool) {
		for _, offset := range neighborOffsets {
			nx, ny := x+offset[0], y+offset[1]
			tile := board.TileAt(nx, ny)
			if tile == nil {
				continue
			}
			if !yield(Neighbor{X: nx, Y: ny, Tile: tile}) {
				return
			}
		}
	}
}

func (board *Board) countFlaggedNeighbors(x, y int) int {
	numFlagged := 0
	for neighbor := range board.Neighbors(x, y) {
		if neighbor.Tile.isFlagged {
			numFlagged++
		}
	}
	return numFlagged
}

func (board *Board) countFlags() int {
	numFlags := 0
	for idx := range board.cells {
		if board.cells[idx].isFlagged {
			numFlags++
		}
	}
	return numFlags
}

func (board *Board) hasRevealedMine() bool {
	for idx := range board.cells {
		tile := &board.cells[idx]
		if tile.IsMine() && tile.isRevealed {
			return true
		}
	}
	return false
}

// reveal marks a hidden, unflagged tile revealed. It returns false when the
// tile was left untouched.
func (board *Board) reveal(tile *Tile) bool {
	if tile == nil || tile.isRevealed || tile.isFlagged {
		return false
	}

	tile.markRevealed()
	if tile.IsMine() {
		tile.isLosingMine = true
	} else {
		board.revealedFree++
	}
	return true
}

// revealMines shows every unflagged mine for the end-of-game display. Flood
// fill and scoring are not involved; flagged mines keep their flag.
func (board *Board) revealMines() {
	for idx := range board.cells {
		tile := &board.cells[idx]
		if tile.IsMine() && !tile.isFlagged {
			tile.markRevealed()
		}
	}
}

// SeedEasyStart marks up to numTiles Free, zero-adjacency tiles as easy
// starting points, sampling at random over a fixed number of passes. It
// returns how many were marked.
func (board *Board) SeedEasyStart(numTiles int, rng *rand.Rand) int {
	if numTiles <= 0 || len(board.cells) == 0 {
		return 0
	}

	marked := 0
	for pass := 0; pass < easyStartPasses && marked < numTiles; pass++ {
		for i := 0; i < numTiles && marked < numTiles; i++ {
			tile := &board.cells[rng.Intn(len(board.cells))]
			if tile.IsMine() || tile.adjacentMines != 0 || tile.isEasy {
				continue
			}
			tile.isEasy = true
			marked++
		}
	}

	if marked < numTiles {
		log.WithFields(logrus.Fields{
			"wanted": numTiles,
			"marked": marked,
		}).Debug("could not place every easy-start tile")
	}

	return marked
}

// Tiles returns a snapshot of every tile in row-major order
func (board *Board) Tiles() []TileView {
	views := make([]TileView, 0, len(board.cells))
	for y := 0; y < board.height; y++ {
		for x := 0; x < board.width; x++ {
			views = append(views, newTileView(x, y, board.TileAt(x, y)))
		}
	}
	return views
}
