package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

const (
	statePlaying   = "playing"
	stateRevealing = "revealing"
	stateWon       = "won"
	stateLost      = "lost"

	eventReveal = "reveal"
	eventSettle = "settle"
	eventWin    = "win"
	eventLose   = "lose"
)

// Session is a single game on a single board. It is driven from one
// goroutine; a restart builds a new Session instead of resetting this one.
type Session struct {
	config   GameConfig
	seed     int64
	rand     *rand.Rand
	board    *Board
	engine   *RevealEngine
	renderer Renderer
	fsm      *fsm.FSM

	score       int
	flagsPlaced int

	// In-flight cascade; at most one per session
	cascade *Cascade
}

// NewSession validates the config and builds a fresh board for it, or
// rebuilds the configured snapshot.
func NewSession(config GameConfig, renderer Renderer) (*Session, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if config.Snapshot != nil {
		board, err := config.Snapshot.CreateBoard(config.LoadSnapshotFresh)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}
		config.Width, config.Height = board.Width(), board.Height()
		if err := config.Validate(); err != nil {
			return nil, err
		}
		return newSession(config, board, config.Snapshot.Seed, rng, renderer), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	board := Generate(config.Width, config.Height, config.MineRate, rng)
	board.SeedEasyStart(config.EasyTiles, rng)

	return newSession(config, board, seed, rng, renderer), nil
}

// NewSessionWithBoard plays on an existing board. Only the engine settings
// of config are used.
func NewSessionWithBoard(config GameConfig, board *Board, renderer Renderer) *Session {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	config.Width, config.Height = board.Width(), board.Height()
	return newSession(config, board, seed, rand.New(rand.NewSource(seed)), renderer)
}

func newSession(config GameConfig, board *Board, seed int64, rng *rand.Rand, renderer Renderer) *Session {
	if renderer == nil {
		renderer = NopRenderer{}
	}

	session := &Session{
		config:      config,
		seed:        seed,
		rand:        rng,
		board:       board,
		engine:      NewRevealEngine(config),
		renderer:    renderer,
		flagsPlaced: board.countFlags(),
	}

	// A board that was already finished keeps its result. One without any
	// Free tiles is won on arrival, through the usual win transition.
	initial := statePlaying
	switch {
	case board.hasRevealedMine():
		initial = stateLost
	case board.Cleared() && board.NumFree() > 0:
		initial = stateWon
	}

	session.fsm = fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: eventReveal, Src: []string{statePlaying}, Dst: stateRevealing},
			{Name: eventSettle, Src: []string{stateRevealing}, Dst: statePlaying},
			{Name: eventWin, Src: []string{statePlaying, stateRevealing}, Dst: stateWon},
			{Name: eventLose, Src: []string{stateRevealing}, Dst: stateLost},
		},
		fsm.Callbacks{
			"enter_" + stateWon: func(_ context.Context, e *fsm.Event) {
				session.endGame(true)
			},
			"enter_" + stateLost: func(_ context.Context, e *fsm.Event) {
				session.endGame(false)
			},
		},
	)

	log.WithFields(logrus.Fields{
		"seed":   seed,
		"width":  board.Width(),
		"height": board.Height(),
		"mines":  board.MineCount(),
	}).Debug("started session")

	session.renderBoard()
	session.renderHeader()

	if initial == statePlaying && board.Cleared() {
		session.event(eventWin)
	}

	return session
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) Config() GameConfig {
	return session.config
}

func (session *Session) Seed() int64 {
	return session.seed
}

func (session *Session) Score() int {
	return session.score
}

func (session *Session) FlagsPlaced() int {
	return session.flagsPlaced
}

func (session *Session) MineCount() int {
	return session.board.MineCount()
}

func (session *Session) Status() Status {
	switch session.fsm.Current() {
	case stateWon:
		return Won
	case stateLost:
		return Lost
	default:
		return InProgress
	}
}

// InputEnabled is false while a cascade is pending and after the game ends
func (session *Session) InputEnabled() bool {
	return session.fsm.Is(statePlaying)
}

// Pending reports whether a cascade is waiting on Advance
func (session *Session) Pending() bool {
	return session.cascade != nil
}

func (session *Session) Tiles() []TileView {
	return session.board.Tiles()
}

func (session *Session) Header() Header {
	return Header{
		Score:       session.score,
		FlagsPlaced: session.flagsPlaced,
		MineCount:   session.board.MineCount(),
		Status:      session.Status(),
	}
}

func (session *Session) Snapshot() *BoardSnapshot {
	return session.board.snapshot(session.seed, session.Status())
}

// Reveal handles a primary action on (x, y). It returns whether a cascade
// was started; the action is ignored while input is disabled or when the
// tile is missing, revealed or flagged.
func (session *Session) Reveal(x, y int) bool {
	if !session.InputEnabled() {
		return false
	}

	tile := session.board.TileAt(x, y)
	if tile == nil || tile.isRevealed || tile.isFlagged {
		return false
	}

	return session.startCascade(Point{X: x, Y: y})
}

// Chord reveals every hidden, unflagged neighbor of a revealed tile whose
// flagged neighbors already account for its adjacent mines.
func (session *Session) Chord(x, y int) bool {
	if !session.InputEnabled() {
		return false
	}

	board := session.board
	tile := board.TileAt(x, y)
	if tile == nil || !tile.isRevealed || tile.IsMine() {
		return false
	}
	if board.countFlaggedNeighbors(x, y) != tile.adjacentMines {
		return false
	}

	var seeds []Point
	for neighbor := range board.Neighbors(x, y) {
		if !neighbor.Tile.isRevealed && !neighbor.Tile.isFlagged {
			seeds = append(seeds, Point{X: neighbor.X, Y: neighbor.Y})
		}
	}
	if len(seeds) == 0 {
		return false
	}

	return session.startCascade(seeds...)
}

// ToggleFlag handles a secondary action on (x, y)
func (session *Session) ToggleFlag(x, y int) bool {
	if !session.InputEnabled() {
		return false
	}

	tile := session.board.TileAt(x, y)
	if tile == nil || tile.isRevealed {
		return false
	}

	session.flagsPlaced += tile.toggleFlagged()

	session.renderBoard()
	session.renderHeader()
	return true
}

// Advance drives a pending cascade by one step. It returns true while the
// cascade still has work left.
func (session *Session) Advance() bool {
	if session.cascade == nil {
		return false
	}
	if !session.cascade.Step() {
		return true
	}

	session.settle()
	return false
}

// Restart discards this session and starts another with the same config
func (session *Session) Restart() (*Session, error) {
	config := session.config
	config.Seed = session.rand.Int63()
	return NewSession(config, session.renderer)
}

func (session *Session) startCascade(seeds ...Point) bool {
	if err := session.fsm.Event(context.Background(), eventReveal); err != nil {
		log.WithError(err).Warn("cannot start reveal")
		return false
	}

	session.cascade = session.engine.Start(session.board, session.renderBoard, seeds...)
	if !session.config.Animate {
		session.cascade.Run()
		session.settle()
	}

	return true
}

func (session *Session) settle() {
	result := session.cascade.Result()
	session.cascade = nil

	if result.HitMine {
		session.event(eventLose)
		return
	}

	session.score += result.ScoreDelta
	if session.board.Cleared() {
		session.event(eventWin)
		return
	}

	session.event(eventSettle)
	session.renderHeader()
}

func (session *Session) event(name string) {
	if err := session.fsm.Event(context.Background(), name); err != nil {
		log.WithError(err).WithField("event", name).Warn("unexpected session transition")
	}
}

func (session *Session) endGame(won bool) {
	if won {
		session.score += session.config.WinBonus
	} else {
		session.board.revealMines()
		session.renderBoard()
	}
	session.renderHeader()

	log.WithFields(logrus.Fields{
		"status": session.Status(),
		"score":  session.score,
		"flags":  session.flagsPlaced,
	}).Info("game over")

	session.config.onGameEnd(session)
}

func (session *Session) renderBoard() {
	session.renderer.RenderBoard(session.board.Tiles())
}

func (session *Session) renderHeader() {
	session.renderer.RenderHeader(session.Header())
}
