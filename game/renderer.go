package game

// TileView is an immutable copy of one tile handed to renderers
type TileView struct {
	X, Y          int
	Revealed      bool
	Flagged       bool
	Kind          Kind
	AdjacentMines int

	// Easy marks an easy-start tile
	Easy bool
	// Losing marks the mine that ended the game
	Losing bool
}

func newTileView(x, y int, tile *Tile) TileView {
	return TileView{
		X:             x,
		Y:             y,
		Revealed:      tile.isRevealed,
		Flagged:       tile.isFlagged,
		Kind:          tile.kind,
		AdjacentMines: tile.adjacentMines,
		Easy:          tile.isEasy,
		Losing:        tile.isLosingMine,
	}
}

type Header struct {
	Score       int
	FlagsPlaced int
	MineCount   int
	Status      Status
}

// Renderer receives state snapshots from a Session. The engine never holds
// anything of the renderer's beyond this interface.
type Renderer interface {
	RenderBoard(tiles []TileView)
	RenderHeader(header Header)
}

type NopRenderer struct{}

func (NopRenderer) RenderBoard([]TileView) {}
func (NopRenderer) RenderHeader(Header)    {}
