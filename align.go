package sheetfab

// RevealX is the horizontal direction the sheet expands towards.
type RevealX int

const (
	RevealLeft RevealX = iota
	RevealRight
)

// RevealY is the vertical direction the sheet expands towards.
type RevealY int

const (
	RevealUp RevealY = iota
	RevealDown
)

// RevealDirection describes the corner the sheet visually grows from.
type RevealDirection struct {
	X RevealX
	Y RevealY
}

// Pivot returns the scale pivot matching the direction, relative to the sheet size.
// A sheet revealed towards the left grows out of its right edge and so on.
func (d RevealDirection) Pivot() (x, y float32) {
	x, y = 1, 1
	if d.X == RevealRight {
		x = 0
	}
	if d.Y == RevealDown {
		y = 0
	}
	return x, y
}

func (d RevealDirection) String() string {
	h, v := "left", "up"
	if d.X == RevealRight {
		h = "right"
	}
	if d.Y == RevealDown {
		v = "down"
	}
	return v + "-" + h
}

// AlignWithControl moves the sheet so that one of its edges on each axis coincides
// with the matching edge of the control and updates the reveal direction.
//
// The right (bottom) edges are preferred. When aligning them would push the sheet off
// the screen the left (top) edges are aligned instead. The differences are computed from
// on-screen locations, since the control and the sheet may not share the same parent.
// An axis with no difference is left untouched: re-applying the same coordinate makes
// the sheet drift by a fraction of a pixel.
func (a *SheetAnimator) AlignWithControl(control Frame) {
	sheet := a.sheet.Frame()

	leftDiff := sheet.ScreenX - control.ScreenX
	rightDiff := (sheet.ScreenX + sheet.Width) - (control.ScreenX + control.Width)
	topDiff := sheet.ScreenY - control.ScreenY
	bottomDiff := (sheet.ScreenY + sheet.Height) - (control.ScreenY + control.Height)

	// Margins are preserved so that users can shift the sheet away from the control.
	margins := sheet.Margins

	if rightDiff != 0 {
		x := sheet.X
		if float32(rightDiff) <= x {
			a.sheet.SetX(x - float32(rightDiff) - float32(margins.Right))
			a.direction.X = RevealLeft
		} else if leftDiff != 0 && float32(leftDiff) <= x {
			a.sheet.SetX(x - float32(leftDiff) + float32(margins.Left))
			a.direction.X = RevealRight
		}
	}

	if bottomDiff != 0 {
		y := sheet.Y
		if float32(bottomDiff) <= y {
			a.sheet.SetY(y - float32(bottomDiff) - float32(margins.Bottom))
			a.direction.Y = RevealUp
		} else if topDiff != 0 && float32(topDiff) <= y {
			a.sheet.SetY(y - float32(topDiff) + float32(margins.Top))
			a.direction.Y = RevealDown
		}
	}
}
