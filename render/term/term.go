// Package term draws boards and headers as styled text.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/they4kman/sweeper/game"
)

type Styles struct {
	Hidden  lipgloss.Style
	Easy    lipgloss.Style
	Flag    lipgloss.Style
	Mine    lipgloss.Style
	Losing  lipgloss.Style
	Empty   lipgloss.Style
	Numbers [9]lipgloss.Style
	Cursor  lipgloss.Style

	Score lipgloss.Style
	Won   lipgloss.Style
	Lost  lipgloss.Style
}

func DefaultStyles() Styles {
	styles := Styles{
		Hidden: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Easy:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Mine:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Losing: lipgloss.NewStyle().Background(lipgloss.Color("9")).Bold(true),
		Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Cursor: lipgloss.NewStyle().Reverse(true),
		Score:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Won:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Lost:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}

	numberColors := []string{"7", "12", "2", "9", "4", "1", "6", "0", "8"}
	for i, color := range numberColors {
		styles.Numbers[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return styles
}

// Glyph is the unstyled character for a tile
func Glyph(tile game.TileView) string {
	switch {
	case tile.Flagged:
		return "F"
	case !tile.Revealed:
		if tile.Easy {
			return "+"
		}
		return "#"
	case tile.Kind == game.Mine:
		if tile.Losing {
			return "X"
		}
		return "*"
	case tile.AdjacentMines == 0:
		return "."
	default:
		return fmt.Sprint(tile.AdjacentMines)
	}
}

func (styles Styles) tileStyle(tile game.TileView) lipgloss.Style {
	switch {
	case tile.Flagged:
		return styles.Flag
	case !tile.Revealed:
		if tile.Easy {
			return styles.Easy
		}
		return styles.Hidden
	case tile.Kind == game.Mine:
		if tile.Losing {
			return styles.Losing
		}
		return styles.Mine
	case tile.AdjacentMines == 0:
		return styles.Empty
	default:
		return styles.Numbers[tile.AdjacentMines]
	}
}

// Width recovers the board width from a row-major tile snapshot
func Width(tiles []game.TileView) int {
	if len(tiles) == 0 {
		return 0
	}
	return tiles[len(tiles)-1].X + 1
}

// Board lays tiles out in rows of width. The tile at cursor, if any, is
// drawn with the cursor style.
func (styles Styles) Board(tiles []game.TileView, width int, cursor *game.Point) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	for i, tile := range tiles {
		if i > 0 {
			if i%width == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}

		style := styles.tileStyle(tile)
		if cursor != nil && cursor.X == tile.X && cursor.Y == tile.Y {
			style = styles.Cursor.Inherit(style)
		}
		b.WriteString(style.Render(Glyph(tile)))
	}
	return b.String()
}

func (styles Styles) Header(header game.Header) string {
	line := styles.Score.Render(fmt.Sprintf("Score: %d", header.Score)) +
		fmt.Sprintf("  Flags: %d / %d", header.FlagsPlaced, header.MineCount)

	switch header.Status {
	case game.Won:
		line += "  " + styles.Won.Render("WIN!")
	case game.Lost:
		line += "  " + styles.Lost.Render("LOSE :(")
	}
	return line
}

// Printer is a game.Renderer that writes every header and board it is
// handed to Out
type Printer struct {
	Out    io.Writer
	Styles Styles
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		Out:    out,
		Styles: DefaultStyles(),
	}
}

func (printer *Printer) RenderBoard(tiles []game.TileView) {
	fmt.Fprintln(printer.Out, printer.Styles.Board(tiles, Width(tiles), nil))
}

func (printer *Printer) RenderHeader(header game.Header) {
	fmt.Fprintln(printer.Out, printer.Styles.Header(header))
}
