package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	Status          string `yaml:"status,omitempty"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// CreateBoard rebuilds the snapshotted board. With fresh set, every tile is
// left hidden and unflagged so the layout can be replayed.
func (snapshot *BoardSnapshot) CreateBoard(fresh bool) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(snapshot.SerializedBoard), "\n")
	return ParseLayout(rows, fresh)
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ParseLayout builds a board from rows of tile symbols:
//
//	*  mine that ended the game
//	F  flagged mine
//	O  mine
//	f  flagged free tile
//	.  revealed free tile
//	#  hidden free tile
func ParseLayout(rows []string, fresh bool) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty board layout")
	}

	width := len(rows[0])
	board := newBoard(width, len(rows))

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", y, len(row), width)
		}
		for x, c := range row {
			if err := board.TileAt(x, y).deserialize(c, fresh); err != nil {
				return nil, fmt.Errorf("tile (%d, %d): %w", x, y, err)
			}
		}
	}

	board.fillAdjacency()
	for idx := range board.cells {
		tile := &board.cells[idx]
		if !tile.IsMine() && tile.isRevealed {
			board.revealedFree++
		}
	}

	return board, nil
}

func (board *Board) Layout() []string {
	rows := make([]string, board.height)
	for y := 0; y < board.height; y++ {
		var row strings.Builder
		for x := 0; x < board.width; x++ {
			row.WriteString(board.TileAt(x, y).serialize())
		}
		rows[y] = row.String()
	}
	return rows
}

func (board *Board) snapshot(seed int64, status Status) *BoardSnapshot {
	return &BoardSnapshot{
		Seed:            seed,
		Status:          status.String(),
		SerializedBoard: strings.Join(board.Layout(), "\n"),
	}
}
