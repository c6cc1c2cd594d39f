package site

// Viewport is the layout class applied to the page body.
type Viewport string

const (
	ViewMobile  Viewport = "mobile-view"
	ViewTablet  Viewport = "tablet-view"
	ViewDesktop Viewport = "desktop-view"
	ViewLarge   Viewport = "large-view"
)

// Breakpoints are inclusive upper widths in CSS pixels. Anything wider
// than Desktop is large, so no upper bound is kept for it.
type Breakpoints struct {
	Mobile  int
	Tablet  int
	Desktop int
}

func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Mobile: 480, Tablet: 768, Desktop: 1024}
}

// Classify maps a viewport width to its layout class.
func (b Breakpoints) Classify(width int) Viewport {
	switch {
	case width <= b.Mobile:
		return ViewMobile
	case width <= b.Tablet:
		return ViewTablet
	case width <= b.Desktop:
		return ViewDesktop
	default:
		return ViewLarge
	}
}
