// Package card implements the draggable ID card that hangs from a lanyard
// beside the terminal.
//
// The widget works in virtual pixels so the spring constants behave the same
// at any terminal size. One terminal cell is CellWidth × CellHeight pixels.
package card

import "math"

const (
	CellWidth  = 8
	CellHeight = 16

	SpringConstant = 0.035
	Damping        = 0.8
	SettleEpsilon  = 0.1

	AnchorY   = 10.0
	SagFactor = 0.3
	SagBase   = 20.0
	MaxTilt   = 15.0

	// restTop is how far below the container top the card hangs at rest.
	restTop = 3 * CellHeight
)

// Vec2 is a point or velocity in virtual pixels.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

// Size is a width and height in virtual pixels.
type Size struct {
	W, H float64
}

// CellSize converts a size in terminal cells to virtual pixels.
func CellSize(cols, rows int) Size {
	return Size{W: float64(cols * CellWidth), H: float64(rows * CellHeight)}
}

// CellCenter returns the virtual pixel at the centre of a terminal cell.
func CellCenter(col, row int) Vec2 {
	return Vec2{
		X: float64(col*CellWidth) + CellWidth/2,
		Y: float64(row*CellHeight) + CellHeight/2,
	}
}

// State is the interaction state of the widget.
type State int

const (
	Idle State = iota
	Dragging
	Springing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Springing:
		return "springing"
	default:
		return "idle"
	}
}

// Tilt is the hover rotation in degrees.
type Tilt struct {
	X, Y float64
}

// Curve is the quadratic Bézier of the lanyard.
type Curve struct {
	Anchor, Control, Attach Vec2
}

// Point evaluates the curve at t in [0, 1].
func (c Curve) Point(t float64) Vec2 {
	u := 1 - t
	return c.Anchor.Scale(u * u).
		Add(c.Control.Scale(2 * u * t)).
		Add(c.Attach.Scale(t * t))
}

// Widget holds the card's position, velocity and drag state. All methods are
// no-ops until the first Layout.
type Widget struct {
	container Size
	card      Size
	laidOut   bool

	rest Vec2
	pos  Vec2
	vel  Vec2
	grab Vec2

	state State
	tilt  Tilt
	// frame changes whenever scheduled spring frames become stale.
	frame uint64
}

// New returns a widget waiting for its first layout.
func New() *Widget {
	return &Widget{}
}

// Layout sets the container and card sizes. The first call fixes the resting
// position; later calls keep it unless the container no longer holds it.
func (w *Widget) Layout(container, card Size) {
	w.container = container
	w.card = card
	if !w.laidOut {
		w.laidOut = true
		w.rest = w.home()
		w.pos = w.rest
		return
	}
	if w.rest != w.clamp(w.rest) {
		w.rest = w.home()
	}
	if w.state != Springing {
		w.pos = w.clamp(w.pos)
	}
}

func (w *Widget) home() Vec2 {
	x := (w.container.W - w.card.W) / 2
	y := float64(restTop)
	if w.container.H-w.card.H < y {
		y = w.container.H - w.card.H
	}
	return w.clamp(Vec2{X: math.Max(0, x), Y: math.Max(0, y)})
}

func (w *Widget) clamp(p Vec2) Vec2 {
	maxX := math.Max(0, w.container.W-w.card.W)
	maxY := math.Max(0, w.container.H-w.card.H)
	return Vec2{
		X: math.Max(0, math.Min(p.X, maxX)),
		Y: math.Max(0, math.Min(p.Y, maxY)),
	}
}

// Ready reports whether the widget has been laid out.
func (w *Widget) Ready() bool { return w.laidOut }

func (w *Widget) State() State { return w.state }
func (w *Widget) Position() Vec2 { return w.pos }
func (w *Widget) Velocity() Vec2 { return w.vel }
func (w *Widget) Rest() Vec2 { return w.rest }
func (w *Widget) Tilt() Tilt { return w.tilt }
func (w *Widget) Frame() uint64 { return w.frame }
func (w *Widget) Container() Size { return w.container }
func (w *Widget) CardSize() Size { return w.card }

// faceCells returns the cell rectangle the face is drawn in.
func (w *Widget) faceCells() (col, row, cols, rows int) {
	col = int(math.Round(w.pos.X / CellWidth))
	row = int(math.Round(w.pos.Y / CellHeight))
	return col, row, int(w.card.W / CellWidth), int(w.card.H / CellHeight)
}

// Contains reports whether p lies on the cells where the face is drawn.
func (w *Widget) Contains(p Vec2) bool {
	col, row, cols, rows := w.faceCells()
	return p.X >= float64(col*CellWidth) && p.X < float64((col+cols)*CellWidth) &&
		p.Y >= float64(row*CellHeight) && p.Y < float64((row+rows)*CellHeight)
}

// InContainer reports whether p lies inside the container.
func (w *Widget) InContainer(p Vec2) bool {
	return p.X >= 0 && p.X < w.container.W && p.Y >= 0 && p.Y < w.container.H
}

// PointerDown starts a drag when p is on the card. Any running spring is
// cancelled.
func (w *Widget) PointerDown(p Vec2) bool {
	if !w.laidOut || !w.Contains(p) {
		return false
	}
	w.frame++
	w.state = Dragging
	w.grab = p.Sub(w.pos)
	w.vel = Vec2{}
	w.tilt = Tilt{}
	return true
}

// PointerMove drags the card, or tilts it when hovering. It reports whether
// anything visible changed.
func (w *Widget) PointerMove(p Vec2) bool {
	if !w.laidOut {
		return false
	}
	if w.state == Dragging {
		next := w.clamp(p.Sub(w.grab))
		w.vel = next.Sub(w.pos)
		w.pos = next
		return true
	}
	if !w.InContainer(p) {
		return w.PointerLeave()
	}
	cx, cy := w.container.W/2, w.container.H/2
	if cx == 0 || cy == 0 {
		return false
	}
	t := Tilt{
		X: (p.Y - cy) / cy * -MaxTilt,
		Y: (p.X - cx) / cx * MaxTilt,
	}
	changed := t != w.tilt
	w.tilt = t
	return changed
}

// PointerUp releases a drag and starts the spring. It reports whether spring
// frames should be scheduled.
func (w *Widget) PointerUp() bool {
	if w.state != Dragging {
		return false
	}
	w.state = Springing
	w.tilt = Tilt{}
	w.frame++
	return true
}

// PointerLeave resets the hover tilt.
func (w *Widget) PointerLeave() bool {
	if w.state == Dragging || w.tilt == (Tilt{}) {
		return false
	}
	w.tilt = Tilt{}
	return true
}

// Step advances the spring by one frame and reports whether another frame is
// needed. Once settled the card sits exactly at rest.
func (w *Widget) Step() bool {
	if w.state != Springing {
		return false
	}
	d := w.rest.Sub(w.pos)
	force := d.Scale(SpringConstant)
	w.vel = w.vel.Add(force).Scale(Damping)
	w.pos = w.pos.Add(w.vel)

	if w.vel.Len() < SettleEpsilon && d.Len() < SettleEpsilon {
		w.pos = w.rest
		w.vel = Vec2{}
		w.state = Idle
		return false
	}
	return true
}

// Settle runs the spring until it stops or limit frames have run, and returns
// the number of Step calls made, including the one that lands on rest.
func (w *Widget) Settle(limit int) int {
	n := 0
	for n < limit && w.state == Springing {
		w.Step()
		n++
	}
	return n
}

// Lanyard returns the curve from the anchor to the top centre of the card.
func (w *Widget) Lanyard() Curve {
	anchor := Vec2{X: w.container.W / 2, Y: AnchorY}
	attach := Vec2{X: w.pos.X + w.card.W/2, Y: w.pos.Y}
	mid := anchor.Add(attach).Scale(0.5)
	sag := math.Abs(anchor.X-attach.X)*SagFactor + SagBase
	return Curve{
		Anchor:  anchor,
		Control: Vec2{X: mid.X, Y: mid.Y + sag},
		Attach:  attach,
	}
}
