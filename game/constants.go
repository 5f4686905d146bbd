package game

import "time"

type Kind int
type Status int

const (
	Free Kind = iota
	Mine
)

func (kind Kind) String() string {
	if kind == Mine {
		return "mine"
	}
	return "free"
}

const (
	InProgress Status = iota
	Won
	Lost
)

func (status Status) String() string {
	switch status {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in progress"
	}
}

const (
	DefaultMaxDepth     = 40
	DefaultRenderBudget = 40 * time.Millisecond
	DefaultWinBonus     = 1000

	// Sampling rounds spent looking for easy-start tiles
	easyStartPasses = 20
)

// Offsets of the 8 neighbors, row-major from the top-left
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
