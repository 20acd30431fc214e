// Package trackball accumulates a model transform from mouse drags: arcball
// rotation about a focus point, pan, zoom and dolly.
package trackball

import (
	gomath "math"

	"github.com/Faultbox/sketch3d/pkg/math"
)

// State is a bitmask of mouse buttons and modifier keys.
type State uint32

// Button and modifier bits.
const (
	Silent      State = 0x000
	LButtonDown State = 0x001
	MButtonDown State = 0x002
	RButtonDown State = 0x004
	ButtonDown  State = 0x007
	LButtonUp   State = 0x010
	MButtonUp   State = 0x020
	RButtonUp   State = 0x040
	ButtonUp    State = 0x070
	AltDown     State = 0x100
	CtrlDown    State = 0x200
	ShiftDown   State = 0x400
	KeyDown     State = 0x700
)

// Behavior is a bitmask of the interactions the trackball allows.
type Behavior uint32

// Behaviors.
const (
	Pan    Behavior = 0x1
	Dolly  Behavior = 0x2
	Rotate Behavior = 0x4
	Zoom   Behavior = 0x8
	All    Behavior = 0xF
)

// Action is the interaction selected at mouse-down.
type Action int

// Actions.
const (
	ActionNone Action = iota
	ActionPan
	ActionZoom
	ActionDolly
	ActionRotate
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionPan:
		return "pan"
	case ActionZoom:
		return "zoom"
	case ActionDolly:
		return "dolly"
	case ActionRotate:
		return "rotate"
	default:
		return "none"
	}
}

// minZoom keeps the zoom factor positive.
const minZoom = 0.0001

// Scales converts mouse travel into transform amounts.
type Scales struct {
	Rotate float32 `yaml:"rotate"` // degrees per pixel
	Zoom   float32 `yaml:"zoom"`   // scale change per pixel
	Pan    float32 `yaml:"pan"`    // units per pixel
	Dolly  float32 `yaml:"dolly"`  // units per pixel
}

// DefaultScales returns the stock sensitivities.
func DefaultScales() Scales {
	return Scales{
		Rotate: 0.2,
		Zoom:   0.002,
		Pan:    0.1,
		Dolly:  0.5,
	}
}

// Trackball is a virtual trackball. The zero value is not usable; call New.
type Trackball struct {
	behavior Behavior
	action   Action

	eye         math.Vec3
	focus       math.Vec3
	mouseMat    math.Mat4
	world2focus math.Mat4
	focus2world math.Mat4

	start          math.Vec3 // arcball point at the last drag position
	startX, startY int

	scales Scales

	windowWidth  int
	windowHeight int

	actionTable [5]State
}

// New creates a trackball with all behaviors enabled and the default
// bindings: rotate = left, pan = shift+left, zoom = ctrl+left, dolly = right.
func New() *Trackball {
	tb := &Trackball{
		behavior:     All,
		mouseMat:     math.Identity(),
		world2focus:  math.Identity(),
		focus2world:  math.Identity(),
		scales:       DefaultScales(),
		windowWidth:  800,
		windowHeight: 500,
	}
	tb.Attach(Pan, LButtonDown|ShiftDown)
	tb.Attach(Zoom, LButtonDown|CtrlDown)
	tb.Attach(Dolly, RButtonDown)
	tb.Attach(Rotate, LButtonDown)
	return tb
}

// Attach binds a single behavior to a button/modifier state.
func (tb *Trackball) Attach(b Behavior, s State) {
	switch b {
	case Pan:
		tb.actionTable[ActionPan] = s
	case Dolly:
		tb.actionTable[ActionDolly] = s
	case Rotate:
		tb.actionTable[ActionRotate] = s
	case Zoom:
		tb.actionTable[ActionZoom] = s
	}
}

// Reset restores the identity transform and cancels any drag.
func (tb *Trackball) Reset() {
	tb.mouseMat = math.Identity()
	tb.action = ActionNone
}

// MouseDown starts a drag. The action is the first enabled behavior, in the
// order rotate, pan, dolly, zoom, whose binding equals s exactly.
func (tb *Trackball) MouseDown(s State, x, y int) {
	tb.startX, tb.startY = x, y
	tb.start = tb.mapToSphere(x, y)

	switch {
	case tb.behavior&Rotate != 0 && tb.actionTable[ActionRotate] == s:
		tb.action = ActionRotate
	case tb.behavior&Pan != 0 && tb.actionTable[ActionPan] == s:
		tb.action = ActionPan
	case tb.behavior&Dolly != 0 && tb.actionTable[ActionDolly] == s:
		tb.action = ActionDolly
	case tb.behavior&Zoom != 0 && tb.actionTable[ActionZoom] == s:
		tb.action = ActionZoom
	default:
		tb.action = ActionNone
	}
}

// MouseUp ends the drag when s carries any button-up bit.
func (tb *Trackball) MouseUp(s State) {
	if s&ButtonUp != 0 {
		tb.action = ActionNone
	}
}

// MouseMotion applies the active action for a drag to (x, y).
func (tb *Trackball) MouseMotion(x, y int) {
	switch tb.action {
	case ActionRotate:
		// Rotate about the axis perpendicular to the great circle through the
		// two arcball points, projected on the screen plane.
		end := tb.mapToSphere(x, y)
		axis := tb.start.Cross(end)
		axis.Z = 0

		dx := float64(x - tb.startX)
		dy := float64(y - tb.startY)
		span := float32(gomath.Sqrt(dx*dx + dy*dy))
		rot := math.RotateAxisDegrees(axis, span*tb.scales.Rotate)

		tb.mouseMat = tb.focus2world.Mul(rot).Mul(tb.world2focus).Mul(tb.mouseMat)
		tb.start = end

	case ActionZoom:
		zoom := 1 + float32(tb.startY-y)*tb.scales.Zoom
		if zoom < minZoom {
			zoom = minZoom
		}
		tb.mouseMat = tb.focus2world.Mul(math.Scale(zoom, zoom, zoom)).Mul(tb.world2focus).Mul(tb.mouseMat)

	case ActionPan:
		panX := float32(x-tb.startX) * tb.scales.Pan
		panY := float32(tb.startY-y) * tb.scales.Pan
		tb.mouseMat = math.Translate(panX, panY, 0).Mul(tb.mouseMat)

		tb.world2focus[12] -= panX
		tb.world2focus[13] -= panY
		tb.focus2world[12] += panX
		tb.focus2world[13] += panY

	case ActionDolly:
		dollyZ := float32(tb.startY-y) * tb.scales.Dolly
		tb.mouseMat = math.Translate(0, 0, dollyZ).Mul(tb.mouseMat)

		tb.world2focus[14] -= dollyZ
		tb.focus2world[14] += dollyZ
	}

	tb.startX, tb.startY = x, y
}

// mapToSphere projects window coordinates onto the unit hemisphere facing the
// viewer. The 1.01 radius lets points just outside the unit disc still map
// without a seam.
func (tb *Trackball) mapToSphere(x, y int) math.Vec3 {
	w := float32(tb.windowWidth)
	h := float32(tb.windowHeight)
	v := math.Vec3{
		X: (2*float32(x) - w) / w,
		Y: (h - 2*float32(y)) / h,
	}
	d := v.Length()
	if d > 1 {
		d = 1
	}
	v.Z = float32(gomath.Sqrt(float64(1.01 - d*d)))
	return v.Normalize()
}

// SetEye records the eye position used by the viewer.
func (tb *Trackball) SetEye(e math.Vec3) { tb.eye = e }

// Eye returns the eye position.
func (tb *Trackball) Eye() math.Vec3 { return tb.eye }

// SetFocus moves the rotation and zoom center.
func (tb *Trackball) SetFocus(f math.Vec3) {
	tb.focus = f
	tb.world2focus = math.Translate(-f.X, -f.Y, -f.Z)
	tb.focus2world = math.Translate(f.X, f.Y, f.Z)
}

// Focus returns the rotation center as last set; pan and dolly move the
// focus matrices but not this value.
func (tb *Trackball) Focus() math.Vec3 { return tb.focus }

// Matrix returns the accumulated transform.
func (tb *Trackball) Matrix() math.Mat4 { return tb.mouseMat }

// SetMatrix replaces the accumulated transform.
func (tb *Trackball) SetMatrix(m math.Mat4) { tb.mouseMat = m }

// SetWindowSize sets the window dimensions used by the arcball mapping.
func (tb *Trackball) SetWindowSize(w, h int) {
	if w > 0 && h > 0 {
		tb.windowWidth, tb.windowHeight = w, h
	}
}

// SetScales replaces the drag sensitivities.
func (tb *Trackball) SetScales(s Scales) { tb.scales = s }

// SetBehavior enables exactly the behaviors in b.
func (tb *Trackball) SetBehavior(b Behavior) { tb.behavior = b }

// Behavior returns the enabled behaviors.
func (tb *Trackball) Behavior() Behavior { return tb.behavior }

// Action returns the active action.
func (tb *Trackball) Action() Action { return tb.action }
