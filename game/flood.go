package game

import (
	"time"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweeper/util/collections"
)

// RevealEngine reveals tiles and floods outward from zero-adjacency tiles.
type RevealEngine struct {
	// Tiles queued at this depth are revealed but not expanded
	MaxDepth int
	// Minimum wall-clock time between two renders while a cascade runs
	RenderBudget time.Duration
	// Animate defers each ring of the flood to the next Step
	Animate bool
	Scoring ScoringPolicy

	Clock func() time.Time
}

func NewRevealEngine(config GameConfig) *RevealEngine {
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}
	return &RevealEngine{
		MaxDepth:     config.MaxDepth,
		RenderBudget: config.RenderBudget,
		Animate:      config.Animate,
		Scoring:      config.Scoring,
		Clock:        clock,
	}
}

type RevealResult struct {
	ScoreDelta int
	HitMine    bool
	// Number of tiles revealed, the hit mine included
	Revealed int
}

type pendingTile struct {
	x, y  int
	depth int
}

// Cascade is one flood fill in progress. It is driven by Step and never
// cancelled; it ends when the worklist drains or a mine is hit.
type Cascade struct {
	engine *RevealEngine
	board  *Board
	render func()

	queue  deque.Deque[pendingTile]
	queued collections.Set[int]

	lastRender time.Time
	result     RevealResult
	done       bool
}

// Reveal runs a whole cascade from (x, y) before returning
func (engine *RevealEngine) Reveal(board *Board, x, y int, render func()) RevealResult {
	cascade := engine.Start(board, render, Point{X: x, Y: y})
	cascade.Run()
	return cascade.Result()
}

// Start queues the seeds at depth 0 without revealing anything yet. Seeds
// that are out of bounds, revealed or flagged are dropped.
func (engine *RevealEngine) Start(board *Board, render func(), seeds ...Point) *Cascade {
	cascade := &Cascade{
		engine:     engine,
		board:      board,
		render:     render,
		queued:     collections.NewSet[int](len(seeds)),
		lastRender: engine.Clock(),
	}

	for _, seed := range seeds {
		cascade.enqueue(seed.X, seed.Y, 0)
	}

	return cascade
}

func (cascade *Cascade) enqueue(x, y, depth int) {
	tile := cascade.board.TileAt(x, y)
	if tile == nil || tile.isRevealed || tile.isFlagged {
		return
	}
	if !cascade.queued.Add(cascade.board.index(x, y)) {
		return
	}
	cascade.queue.PushBack(pendingTile{x: x, y: y, depth: depth})
}

// Step processes queued tiles until the render budget runs out, the current
// ring is finished when animating, or the worklist is empty. It returns true
// once the cascade is complete.
func (cascade *Cascade) Step() bool {
	if cascade.done {
		return true
	}

	layer := -1
	for cascade.queue.Len() > 0 {
		next := cascade.queue.Front()
		if cascade.engine.Animate && layer >= 0 && next.depth > layer {
			cascade.renderIfDue()
			return false
		}

		cascade.queue.PopFront()
		layer = next.depth
		cascade.visit(next)

		if cascade.result.HitMine {
			cascade.queue.Clear()
			break
		}

		if cascade.renderIfDue() && cascade.queue.Len() > 0 {
			return false
		}
	}

	cascade.finish()
	return true
}

// Run steps the cascade to completion
func (cascade *Cascade) Run() {
	for !cascade.Step() {
	}
}

func (cascade *Cascade) Done() bool {
	return cascade.done
}

func (cascade *Cascade) Result() RevealResult {
	return cascade.result
}

func (cascade *Cascade) visit(pending pendingTile) {
	board := cascade.board
	tile := board.TileAt(pending.x, pending.y)
	if !board.reveal(tile) {
		return
	}
	cascade.result.Revealed++

	if tile.IsMine() {
		cascade.result.HitMine = true
		log.WithFields(logrus.Fields{
			"x": pending.x,
			"y": pending.y,
		}).Debug("cascade hit a mine")
		return
	}

	cascade.result.ScoreDelta += cascade.engine.Scoring.TileScore(tile)

	if tile.adjacentMines == 0 && pending.depth < cascade.engine.MaxDepth {
		for neighbor := range board.Neighbors(pending.x, pending.y) {
			cascade.enqueue(neighbor.X, neighbor.Y, pending.depth+1)
		}
	}
}

func (cascade *Cascade) renderIfDue() bool {
	now := cascade.engine.Clock()
	if now.Sub(cascade.lastRender) < cascade.engine.RenderBudget {
		return false
	}
	cascade.lastRender = now
	if cascade.render != nil {
		cascade.render()
	}
	return true
}

// finish renders the final state, except after a mine hit, where the loss
// display is left to the session
func (cascade *Cascade) finish() {
	cascade.done = true
	if cascade.render != nil && !cascade.result.HitMine {
		cascade.render()
	}

	log.WithFields(logrus.Fields{
		"revealed": cascade.result.Revealed,
		"score":    cascade.result.ScoreDelta,
		"hitMine":  cascade.result.HitMine,
	}).Debug("cascade finished")
}
