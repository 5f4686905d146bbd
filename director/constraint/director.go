package constraint

import (
	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweeper/director/random"
	"github.com/they4kman/sweeper/game"
)

var log = logrus.New()

// SetLogger replaces the logger used for the director's reasoning
func SetLogger(logger *logrus.Logger) {
	log = logger
}

// Director plays the moves that follow directly from a single revealed
// number, and falls back to a random reveal when there are none.
type Director struct {
	session  *game.Session
	fallback random.Director
}

// Observation is what one revealed numbered tile says about its hidden
// neighbors: exactly numMines of cells are mines.
type Observation struct {
	Origin   game.Point
	NumMines int
	Cells    []game.Point
}

func (director *Director) Init(session *game.Session) {
	director.session = session
	director.fallback.Init(session)
}

func (director *Director) Act() {
	if director.session == nil || !director.session.InputEnabled() {
		return
	}

	actors := []func() bool{
		director.actDeliberate,
		director.fallback.Pick,
	}
	for _, actor := range actors {
		if actor() {
			return
		}
	}
}

func (director *Director) End() {
	director.session = nil
	director.fallback.End()
}

// Observations lists, for every revealed numbered tile with hidden neighbors
// left, how many mines remain among them
func Observations(board *game.Board) []Observation {
	var observations []Observation

	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			tile := board.TileAt(x, y)
			if !tile.IsRevealed() || tile.IsMine() || tile.AdjacentMines() == 0 {
				continue
			}

			observation := Observation{
				Origin:   game.Point{X: x, Y: y},
				NumMines: tile.AdjacentMines(),
			}
			for neighbor := range board.Neighbors(x, y) {
				switch {
				case neighbor.Tile.IsFlagged():
					observation.NumMines--
				case !neighbor.Tile.IsRevealed():
					observation.Cells = append(observation.Cells, game.Point{X: neighbor.X, Y: neighbor.Y})
				}
			}

			if len(observation.Cells) > 0 {
				observations = append(observations, observation)
			}
		}
	}

	return observations
}

func (director *Director) actDeliberate() bool {
	session := director.session

	for _, observation := range Observations(session.Board()) {
		switch {
		case observation.NumMines == len(observation.Cells):
			for _, cell := range observation.Cells {
				session.ToggleFlag(cell.X, cell.Y)
			}
			log.WithFields(logrus.Fields{
				"origin": observation.Origin,
				"flags":  len(observation.Cells),
			}).Debug("flagged certain mines")
			return true

		case observation.NumMines == 0:
			log.WithField("origin", observation.Origin).Debug("chording safe neighbors")
			return session.Chord(observation.Origin.X, observation.Origin.Y)
		}
	}

	return false
}
