package tiling

import (
	"github.com/BurntSushi/xgb/xproto"
)

// DefaultGap is the outer and inner gap in pixels.
const DefaultGap = 8

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Geometry is the placement computed for one window.
type Geometry struct {
	Window      xproto.Window
	Rect        Rect
	BorderWidth int
}

// MasterStack places the first window in a master column on the left and
// stacks the remaining windows top-to-bottom in a column on the right.
type MasterStack struct {
	Gap int
}

// Tile computes geometry for windows on a screenWidth x screenHeight screen
// using the default gap.
func Tile(screenWidth, screenHeight int, windows []xproto.Window, ratio float64, borderWidth int) []Geometry {
	return MasterStack{Gap: DefaultGap}.Tile(screenWidth, screenHeight, windows, ratio, borderWidth)
}

// Tile computes one Geometry per window, in order. It returns nil when there
// are no windows or when the gaps leave no usable area. No emitted width or
// height is ever below 1.
func (l MasterStack) Tile(screenWidth, screenHeight int, windows []xproto.Window, ratio float64, borderWidth int) []Geometry {
	if len(windows) == 0 {
		return nil
	}

	gap := l.Gap
	if gap < 0 {
		gap = 0
	}

	usableWidth := screenWidth - 2*gap
	usableHeight := screenHeight - 2*gap
	if usableWidth <= 0 || usableHeight <= 0 {
		return nil
	}

	if len(windows) == 1 {
		return []Geometry{{
			Window:      windows[0],
			Rect:        Rect{X: gap, Y: gap, Width: usableWidth, Height: usableHeight},
			BorderWidth: borderWidth,
		}}
	}

	// One inner gap separates the master column from the stack column.
	available := usableWidth - gap
	masterWidth := atLeastOne(int(float64(available) * ratio))
	stackWidth := atLeastOne(available - masterWidth)
	stackX := gap + masterWidth + gap

	stackCount := len(windows) - 1
	stackHeight := atLeastOne((usableHeight - (stackCount-1)*gap) / stackCount)

	geoms := make([]Geometry, 0, len(windows))
	geoms = append(geoms, Geometry{
		Window:      windows[0],
		Rect:        Rect{X: gap, Y: gap, Width: masterWidth, Height: usableHeight},
		BorderWidth: borderWidth,
	})

	for i, w := range windows[1:] {
		y := gap + i*(stackHeight+gap)
		height := stackHeight
		if i == stackCount-1 {
			// The last slot absorbs the division remainder.
			if rest := usableHeight - (stackCount-1)*(stackHeight+gap); rest > height {
				height = rest
			}
		}
		geoms = append(geoms, Geometry{
			Window:      w,
			Rect:        Rect{X: stackX, Y: y, Width: stackWidth, Height: height},
			BorderWidth: borderWidth,
		})
	}

	return geoms
}

// Fullscreen returns the placement for a window that covers the whole screen.
// Fullscreen windows never carry a border.
func Fullscreen(win xproto.Window, screenWidth, screenHeight int) Geometry {
	return Geometry{
		Window: win,
		Rect: Rect{
			X:      0,
			Y:      0,
			Width:  atLeastOne(screenWidth),
			Height: atLeastOne(screenHeight),
		},
		BorderWidth: 0,
	}
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
