package gui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/they4kman/sweeper/game"
)

const (
	cellWidth     = 16
	headerHeight  = 50
	minWindowWith = 200

	// How often a director gets to make a move
	directorInterval = 250 * time.Millisecond
)

var log = logrus.New()

func SetLogger(logger *logrus.Logger) {
	log = logger
}

var numberColors = [9]color.Color{
	colornames.Black,
	colornames.Blue,
	colornames.Green,
	colornames.Red,
	colornames.Navy,
	colornames.Maroon,
	colornames.Teal,
	colornames.Black,
	colornames.Dimgray,
}

// Frontend is the session's renderer; the frame loop draws whatever it was
// handed last
type Frontend struct {
	tiles  []game.TileView
	header game.Header
}

func (frontend *Frontend) RenderBoard(tiles []game.TileView) {
	frontend.tiles = tiles
}

func (frontend *Frontend) RenderHeader(header game.Header) {
	frontend.header = header
}

func gridBounds(width, height int) pixel.Rect {
	return pixel.R(
		0, 0,
		math.Max(float64(width*cellWidth), minWindowWith),
		float64(height*cellWidth+headerHeight),
	)
}

func screenToGridCoords(pos pixel.Vec, height int) (int, int) {
	x := int(math.Floor(pos.X / cellWidth))
	y := height - int(math.Floor(pos.Y/cellWidth)) - 1
	return x, y
}

// Run opens a window and plays sessions of config until it is closed. It
// must be called from within pixelgl.Run.
func Run(config game.GameConfig, director game.Director) error {
	config.Animate = true

	frontend := &Frontend{}
	session, err := game.NewSession(config, frontend)
	if err != nil {
		return err
	}
	if director != nil {
		director.Init(session)
	}

	cfg := pixelgl.WindowConfig{
		Title:  "sweeper",
		Bounds: gridBounds(session.Board().Width(), session.Board().Height()),
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	basicAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	topLeft := win.Bounds().Vertices()[1]
	topRight := win.Bounds().Max

	scoreText := text.New(topLeft.Add(pixel.V(20, -30)), basicAtlas)
	cellPosText := text.New(topRight.Add(pixel.V(-60, -30)), basicAtlas)
	cellPosText.Color = colornames.Darkcyan
	numberText := text.New(pixel.ZV, basicAtlas)

	var (
		frames    = 0
		second    = time.Tick(time.Second)
		lastActed time.Time
	)

	restart := func() {
		next, err := session.Restart()
		if err != nil {
			log.WithError(err).Error("cannot restart game")
			return
		}
		if director != nil {
			director.End()
			director.Init(next)
		}
		session = next
	}

	bgColor := colornames.Gainsboro
	for !win.Closed() {
		win.Update()
		win.Clear(bgColor)

		frames++
		select {
		case <-second:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
			frames = 0
		default:
		}

		session.Advance()
		if director != nil && session.InputEnabled() && time.Since(lastActed) >= directorInterval {
			director.Act()
			lastActed = time.Now()
		}

		header := frontend.header
		scoreText.Clear()
		scoreText.Color = colornames.Black
		fmt.Fprintf(scoreText, "%03d  score %d", header.MineCount-header.FlagsPlaced, header.Score)
		switch header.Status {
		case game.Won:
			scoreText.Color = colornames.Green
			fmt.Fprint(scoreText, "   WIN!")
		case game.Lost:
			scoreText.Color = colornames.Red
			fmt.Fprint(scoreText, "   LOSE :(")
		}
		scoreText.Draw(win, pixel.IM)

		boardHeight := session.Board().Height()
		hoveredX, hoveredY := -1, -1
		if win.MouseInsideWindow() {
			hoveredX, hoveredY = screenToGridCoords(win.MousePosition(), boardHeight)
		}
		hovered := session.Board().TileAt(hoveredX, hoveredY) != nil

		cellPosText.Clear()
		if hovered {
			fmt.Fprintf(cellPosText, "(%d, %d)", hoveredX, hoveredY)
			cellPosText.Draw(win, pixel.IM)
		}

		drawTiles(win, numberText, frontend.tiles, boardHeight)

		if session.Status() != game.InProgress {
			// Start a new game with Enter
			if win.JustPressed(pixelgl.KeyEnter) {
				restart()
			}
			continue
		}

		if hovered {
			if win.JustPressed(pixelgl.MouseButtonLeft) {
				session.Reveal(hoveredX, hoveredY)
			}
			if win.JustPressed(pixelgl.MouseButtonRight) {
				session.ToggleFlag(hoveredX, hoveredY)
			}
			if win.JustPressed(pixelgl.MouseButtonMiddle) {
				session.Chord(hoveredX, hoveredY)
			}
		}
	}

	if director != nil {
		director.End()
	}
	return nil
}

func drawTiles(win *pixelgl.Window, numberText *text.Text, tiles []game.TileView, height int) {
	imd := imdraw.New(nil)
	numberText.Clear()

	for _, tile := range tiles {
		start := pixel.V(float64(tile.X*cellWidth), float64((height-tile.Y-1)*cellWidth))
		end := start.Add(pixel.V(cellWidth-1, cellWidth-1))

		imd.Color = tileColor(tile)
		imd.Push(start, end)
		imd.Rectangle(0) // 0 = filled

		if tile.Revealed && tile.Kind == game.Free && tile.AdjacentMines > 0 {
			numberText.Color = numberColors[tile.AdjacentMines]
			numberText.Dot = start.Add(pixel.V(5, 4))
			fmt.Fprint(numberText, tile.AdjacentMines)
		}
	}

	imd.Draw(win)
	numberText.Draw(win, pixel.IM)
}

func tileColor(tile game.TileView) color.Color {
	switch {
	case tile.Flagged:
		return colornames.Orange
	case !tile.Revealed:
		if tile.Easy {
			return colornames.Darkseagreen
		}
		return colornames.Darkgray
	case tile.Kind == game.Mine:
		if tile.Losing {
			return colornames.Red
		}
		return colornames.Black
	default:
		return colornames.Whitesmoke
	}
}
