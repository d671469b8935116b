package sheetfab

import "image/color"

// Visibility mirrors the three visibility states a host element can be in.
type Visibility int

const (
	// Visible elements are drawn and receive input.
	Visible Visibility = iota
	// Invisible elements are not drawn but still occupy layout space.
	Invisible
	// Gone elements are neither drawn nor occupy layout space.
	Gone
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Invisible:
		return "invisible"
	case Gone:
		return "gone"
	}
	return "unknown"
}

// Insets holds the layout margins of an element.
type Insets struct {
	Left, Top, Right, Bottom int
}

// Frame is a geometry snapshot of an element.
// X and Y are relative to the element's parent and include the translation,
// ScreenX and ScreenY are the absolute on-screen location.
type Frame struct {
	X, Y          float32
	Width, Height int

	TranslationX float32
	TranslationY float32

	ScreenX, ScreenY int

	Margins Insets
}

// Transform is the visual transformation applied by the host while an animation plays.
// The pivot is expressed relative to the element's own size: (1, 1) is the bottom right corner.
type Transform struct {
	Alpha          float32
	ScaleX, ScaleY float32
	PivotX, PivotY float32
}

// Identity is the transformation of an element at rest.
var Identity = Transform{Alpha: 1, ScaleX: 1, ScaleY: 1}

// Element is a visual handle owned by the host.
// All methods are called from the loop goroutine only.
type Element interface {
	Frame() Frame
	SetX(x float32)
	SetY(y float32)
	Visibility() Visibility
	SetVisibility(v Visibility)
	SetTransform(t Transform)
}

// Control is the floating element which morphs into the sheet.
type Control interface {
	Element
	// Show brings the control back at the given translation.
	Show(translationX, translationY float32)
	// SetTranslation moves the control without changing its visibility.
	SetTranslation(translationX, translationY float32)
	// Hide removes the control from the screen.
	Hide()
}

// Sheet is the surface the control expands into.
type Sheet interface {
	Element
	SetBackgroundColor(c color.NRGBA)
}

// TintableSurface is implemented by card-like sheets which own a dedicated background
// and must not have it replaced by the generic setter.
// A returned error means the capability is not available at runtime and is ignored.
type TintableSurface interface {
	SetCardBackgroundColor(c color.NRGBA) error
}
