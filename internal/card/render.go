package card

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"termfolio/internal/content"
)

// Card face size in cells.
const (
	FaceCols = 24
	FaceRows = 9
)

// FaceSize is the card size in virtual pixels.
var FaceSize = CellSize(FaceCols, FaceRows)

// Braille dots per cell and the virtual pixels each dot covers.
const (
	dotCols = 2
	dotRows = 4
	dotW    = CellWidth / dotCols
	dotH    = CellHeight / dotRows
)

var brailleBits = [dotRows][dotCols]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type cellKind int

const (
	kindEmpty cellKind = iota
	kindLanyard
	kindAnchor
	kindBorder
	kindClip
	kindTitle
	kindName
	kindText
	kindMuted
	kindShadow
)

// Theme styles each part of the widget.
type Theme struct {
	Lanyard lipgloss.Style
	Anchor  lipgloss.Style
	Border  lipgloss.Style
	Active  lipgloss.Style
	Clip    lipgloss.Style
	Title   lipgloss.Style
	Name    lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Shadow  lipgloss.Style
}

// DefaultTheme matches the terminal's green-on-dark palette.
func DefaultTheme() Theme {
	return Theme{
		Lanyard: lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		Anchor:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Border:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Active:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true),
		Clip:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f9fafb")).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Shadow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	}
}

type canvasCell struct {
	r    rune
	kind cellKind
	dots rune
}

type canvas struct {
	cols, rows int
	cells      [][]canvasCell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]canvasCell, rows)}
	for i := range c.cells {
		c.cells[i] = make([]canvasCell, cols)
	}
	return c
}

func (c *canvas) set(col, row int, r rune, kind cellKind) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] = canvasCell{r: r, kind: kind}
}

// dot sets one braille dot at a virtual pixel.
func (c *canvas) dot(p Vec2) {
	dx := int(math.Floor(p.X / dotW))
	dy := int(math.Floor(p.Y / dotH))
	col, row := dx/dotCols, dy/dotRows
	if dx < 0 || dy < 0 || col >= c.cols || row >= c.rows {
		return
	}
	cell := &c.cells[row][col]
	if cell.kind != kindEmpty && cell.kind != kindLanyard {
		return
	}
	cell.kind = kindLanyard
	cell.dots |= brailleBits[dy%dotRows][dx%dotCols]
	cell.r = 0x2800 + cell.dots
}

// strokeCurve samples the curve densely enough that neighbouring samples are
// never more than one dot apart.
func (c *canvas) strokeCurve(curve Curve) {
	length := curve.Anchor.Sub(curve.Control).Len() + curve.Control.Sub(curve.Attach).Len()
	steps := int(length/math.Min(dotW, dotH)) + 1
	for i := 0; i <= steps; i++ {
		c.dot(curve.Point(float64(i) / float64(steps)))
	}
}

// View draws the widget into its container, one string per row. The face
// shows the badge; dragging highlights the border and hover tilt casts a
// shadow away from the pointer.
func (w *Widget) View(badge content.Badge, theme Theme) string {
	if !w.laidOut {
		return ""
	}
	cols := int(w.container.W / CellWidth)
	rows := int(w.container.H / CellHeight)
	if cols <= 0 || rows <= 0 {
		return ""
	}
	cv := newCanvas(cols, rows)

	col, row, faceCols, faceRows := w.faceCells()

	cv.drawShadow(col, row, faceCols, faceRows, w.tilt)
	cv.drawFace(col, row, faceCols, faceRows, badge, w.state == Dragging)
	cv.strokeCurve(w.Lanyard())
	cv.set(int(w.container.W/2)/CellWidth, 0, '◉', kindAnchor)

	return cv.render(theme, w.state == Dragging)
}

func (c *canvas) drawShadow(col, row, faceCols, faceRows int, t Tilt) {
	dx, dy := shadowOffset(t)
	if dx == 0 && dy == 0 {
		return
	}
	for r := 0; r < faceRows; r++ {
		for cc := 0; cc < faceCols; cc++ {
			c.set(col+cc+dx, row+r+dy, '░', kindShadow)
		}
	}
}

// shadowOffset turns hover tilt into a one-cell shadow offset.
func shadowOffset(t Tilt) (int, int) {
	const threshold = MaxTilt / 3
	dx, dy := 0, 0
	if t.Y > threshold {
		dx = -1
	} else if t.Y < -threshold {
		dx = 1
	}
	if t.X < -threshold {
		dy = -1
	} else if t.X > threshold {
		dy = 1
	}
	return dx, dy
}

func (c *canvas) drawFace(col, row, faceCols, faceRows int, badge content.Badge, active bool) {
	if faceCols < 2 || faceRows < 2 {
		return
	}
	b := lipgloss.RoundedBorder()
	if active {
		b = lipgloss.ThickBorder()
	}
	last := faceCols - 1
	for cc := 0; cc < faceCols; cc++ {
		top, bottom := firstRune(b.Top), firstRune(b.Bottom)
		switch cc {
		case 0:
			top, bottom = firstRune(b.TopLeft), firstRune(b.BottomLeft)
		case last:
			top, bottom = firstRune(b.TopRight), firstRune(b.BottomRight)
		}
		c.set(col+cc, row, top, kindBorder)
		c.set(col+cc, row+faceRows-1, bottom, kindBorder)
	}
	for r := 1; r < faceRows-1; r++ {
		c.set(col, row+r, firstRune(b.Left), kindBorder)
		c.set(col+last, row+r, firstRune(b.Right), kindBorder)
		for cc := 1; cc < last; cc++ {
			c.set(col+cc, row+r, ' ', kindText)
		}
	}
	c.set(col+faceCols/2, row, '┴', kindClip)

	inner := faceCols - 4
	lines := []struct {
		text string
		kind cellKind
	}{
		{badge.Organization, kindTitle},
		{strings.Repeat("─", inner), kindMuted},
		{"", kindText},
		{badge.Name, kindName},
		{badge.Role, kindText},
		{badge.Handle, kindMuted},
	}
	for i, l := range lines {
		r := row + 1 + i
		if r >= row+faceRows-1 {
			break
		}
		c.writeCentered(col+2, r, inner, l.text, l.kind)
	}
}

func (c *canvas) writeCentered(col, row, width int, text string, kind cellKind) {
	text = runewidth.Truncate(text, width, "…")
	pad := (width - runewidth.StringWidth(text)) / 2
	x := col + pad
	for _, r := range text {
		c.set(x, row, r, kind)
		rw := runewidth.RuneWidth(r)
		for i := 1; i < rw; i++ {
			// wide runes occupy the next cell too
			c.set(x+i, row, 0, kind)
		}
		x += rw
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

func (t Theme) style(kind cellKind, active bool) lipgloss.Style {
	switch kind {
	case kindLanyard:
		return t.Lanyard
	case kindAnchor:
		return t.Anchor
	case kindBorder:
		if active {
			return t.Active
		}
		return t.Border
	case kindClip:
		return t.Clip
	case kindTitle:
		return t.Title
	case kindName:
		return t.Name
	case kindMuted:
		return t.Muted
	case kindShadow:
		return t.Shadow
	case kindText:
		return t.Text
	}
	return lipgloss.NewStyle()
}

func (c *canvas) render(theme Theme, active bool) string {
	out := make([]string, 0, c.rows)
	for _, cells := range c.cells {
		var line strings.Builder
		var run strings.Builder
		kind := kindEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if kind == kindEmpty {
				line.WriteString(run.String())
			} else {
				line.WriteString(theme.style(kind, active).Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range cells {
			if cell.r == 0 && cell.kind != kindEmpty {
				// continuation of a wide rune
				continue
			}
			if cell.kind != kind {
				flush()
				kind = cell.kind
			}
			if cell.kind == kindEmpty {
				run.WriteByte(' ')
			} else {
				run.WriteRune(cell.r)
			}
		}
		flush()
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}
