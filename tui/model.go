package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/they4kman/sweeper/game"
	"github.com/they4kman/sweeper/render/term"
)

// How often a director gets to make a move
const directorInterval = 250 * time.Millisecond

type tickMsg time.Time

// Model runs a session in the terminal. It is also the session's renderer,
// holding the latest snapshots it was handed.
type Model struct {
	session  *game.Session
	director game.Director
	keys     KeyMap
	styles   term.Styles
	interval time.Duration

	cursor    game.Point
	tiles     []game.TileView
	header    game.Header
	lastActed time.Time
	err       error
}

// NewModel starts an animated session for config, with an optional
// director playing it
func NewModel(config game.GameConfig, director game.Director) (*Model, error) {
	config.Animate = true

	model := &Model{
		director: director,
		keys:     DefaultKeyMap(),
		styles:   term.DefaultStyles(),
		interval: config.RenderBudget,
	}
	if model.interval <= 0 {
		model.interval = game.DefaultRenderBudget
	}

	session, err := game.NewSession(config, model)
	if err != nil {
		return nil, err
	}
	model.setSession(session)

	return model, nil
}

func (model *Model) setSession(session *game.Session) {
	if model.director != nil {
		if model.session != nil {
			model.director.End()
		}
		model.director.Init(session)
	}
	model.session = session
	model.cursor = game.Point{}
}

func (model *Model) Session() *game.Session {
	return model.session
}

func (model *Model) RenderBoard(tiles []game.TileView) {
	model.tiles = tiles
}

func (model *Model) RenderHeader(header game.Header) {
	model.header = header
}

func (model *Model) tick() tea.Cmd {
	return tea.Tick(model.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (model *Model) Init() tea.Cmd {
	return model.tick()
}

func (model *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		model.session.Advance()

		now := time.Time(msg)
		if model.director != nil && model.session.InputEnabled() && now.Sub(model.lastActed) >= directorInterval {
			model.director.Act()
			model.lastActed = now
		}
		return model, model.tick()

	case tea.KeyMsg:
		return model.handleKey(msg)
	}

	return model, nil
}

func (model *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	board := model.session.Board()

	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Up):
		model.moveCursor(0, -1, board)
	case key.Matches(msg, model.keys.Down):
		model.moveCursor(0, 1, board)
	case key.Matches(msg, model.keys.Left):
		model.moveCursor(-1, 0, board)
	case key.Matches(msg, model.keys.Right):
		model.moveCursor(1, 0, board)
	case key.Matches(msg, model.keys.Reveal):
		model.session.Reveal(model.cursor.X, model.cursor.Y)
	case key.Matches(msg, model.keys.Flag):
		model.session.ToggleFlag(model.cursor.X, model.cursor.Y)
	case key.Matches(msg, model.keys.Chord):
		model.session.Chord(model.cursor.X, model.cursor.Y)
	case key.Matches(msg, model.keys.Restart):
		session, err := model.session.Restart()
		if err != nil {
			model.err = err
			return model, tea.Quit
		}
		model.setSession(session)
	}

	return model, nil
}

func (model *Model) moveCursor(dx, dy int, board *game.Board) {
	x, y := model.cursor.X+dx, model.cursor.Y+dy
	if board.TileAt(x, y) != nil {
		model.cursor = game.Point{X: x, Y: y}
	}
}

// Err is the error that stopped the program, if any
func (model *Model) Err() error {
	return model.err
}

func (model *Model) View() string {
	var b strings.Builder

	b.WriteString(model.styles.Header(model.header))
	b.WriteString("\n\n")

	cursor := &model.cursor
	if model.header.Status != game.InProgress {
		cursor = nil
	}
	b.WriteString(model.styles.Board(model.tiles, model.session.Board().Width(), cursor))
	b.WriteString("\n\n")

	help := make([]string, 0, len(model.keys.bindings()))
	for _, binding := range model.keys.bindings() {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(strings.Join(help, " • "))
	b.WriteString("\n")

	return b.String()
}
