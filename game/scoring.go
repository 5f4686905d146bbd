package game

import "fmt"

// ScoringPolicy decides what a single revealed Free tile is worth
type ScoringPolicy interface {
	TileScore(tile *Tile) int
}

type ScoringMode int

const (
	// AdjacencyScoring awards a tile's adjacency count, so empty tiles are
	// worth nothing and numbered tiles their number
	AdjacencyScoring ScoringMode = iota
	// FlatScoring awards 1 for every revealed tile
	FlatScoring
)

var ScoringModes = map[string]ScoringMode{
	"adjacency": AdjacencyScoring,
	"flat":      FlatScoring,
}

func (mode ScoringMode) TileScore(tile *Tile) int {
	if tile.IsMine() {
		return 0
	}
	if mode == FlatScoring {
		return 1
	}
	return tile.adjacentMines
}

func (mode ScoringMode) String() string {
	for name, m := range ScoringModes {
		if m == mode {
			return name
		}
	}
	return fmt.Sprint(int(mode))
}

func ParseScoringMode(name string) (ScoringMode, error) {
	if mode, isValid := ScoringModes[name]; isValid {
		return mode, nil
	}
	return AdjacencyScoring, fmt.Errorf("invalid scoring mode %q", name)
}

func (mode ScoringMode) MarshalYAML() (interface{}, error) {
	return mode.String(), nil
}

func (mode *ScoringMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	parsed, err := ParseScoringMode(name)
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}
