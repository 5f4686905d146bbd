package random

import (
	"math/rand"

	"github.com/they4kman/sweeper/game"
)

// Director reveals hidden, unflagged tiles in a shuffled order
type Director struct {
	session *game.Session
	order   []game.Point
	next    int
}

func (director *Director) Init(session *game.Session) {
	director.session = session
	director.next = 0

	board := session.Board()
	director.order = make([]game.Point, 0, board.NumCells())
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			director.order = append(director.order, game.Point{X: x, Y: y})
		}
	}

	rng := rand.New(rand.NewSource(session.Seed()))
	rng.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() {
	director.Pick()
}

// Pick reveals the next untouched tile in the shuffled order, reporting
// whether one was found. Nothing is consumed while the session takes no input.
func (director *Director) Pick() bool {
	if director.session == nil || !director.session.InputEnabled() {
		return false
	}

	board := director.session.Board()
	for director.next < len(director.order) {
		pt := director.order[director.next]
		director.next++

		tile := board.TileAt(pt.X, pt.Y)
		if !tile.IsRevealed() && !tile.IsFlagged() {
			return director.session.Reveal(pt.X, pt.Y)
		}
	}
	return false
}

func (director *Director) End() {
	director.session = nil
	director.order = nil
}
