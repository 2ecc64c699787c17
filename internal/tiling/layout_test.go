package tiling

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func windowsN(n int) []xproto.Window {
	wins := make([]xproto.Window, n)
	for i := range wins {
		wins[i] = xproto.Window(0x400000 + i)
	}
	return wins
}

func TestTile_EmptyReturnsNil(t *testing.T) {
	if got := Tile(1920, 1080, nil, 0.6, 2); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTile_SingleWindowFillsUsableArea(t *testing.T) {
	got := Tile(1920, 1080, windowsN(1), 0.6, 2)
	if len(got) != 1 {
		t.Fatalf("expected 1 geometry, got %d", len(got))
	}
	want := Rect{X: 8, Y: 8, Width: 1904, Height: 1064}
	if got[0].Rect != want {
		t.Fatalf("rect = %+v, want %+v", got[0].Rect, want)
	}
	if got[0].BorderWidth != 2 {
		t.Fatalf("border = %d, want 2", got[0].BorderWidth)
	}
}

func TestTile_TwoWindowsSplitByRatio(t *testing.T) {
	wins := windowsN(2)
	got := Tile(1920, 1080, wins, 0.6, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 geometries, got %d", len(got))
	}

	// usable 1904x1064, minus one inner gap = 1896; master = int(1896*0.6) = 1137.
	master, stack := got[0], got[1]
	if master.Window != wins[0] || stack.Window != wins[1] {
		t.Fatalf("window order not preserved: %v", got)
	}
	if master.Rect != (Rect{X: 8, Y: 8, Width: 1137, Height: 1064}) {
		t.Fatalf("master rect = %+v", master.Rect)
	}
	if stack.Rect != (Rect{X: 1153, Y: 8, Width: 759, Height: 1064}) {
		t.Fatalf("stack rect = %+v", stack.Rect)
	}
	if stack.Rect.X+stack.Rect.Width != 1920-8 {
		t.Fatalf("stack right edge = %d, want %d", stack.Rect.X+stack.Rect.Width, 1920-8)
	}
}

func TestTile_StackSplitsHeightEvenly(t *testing.T) {
	got := Tile(1920, 1080, windowsN(3), 0.6, 2)
	if len(got) != 3 {
		t.Fatalf("expected 3 geometries, got %d", len(got))
	}
	// (1064 - 8) / 2 = 528
	if got[1].Rect.Y != 8 || got[1].Rect.Height != 528 {
		t.Fatalf("first stack rect = %+v", got[1].Rect)
	}
	if got[2].Rect.Y != 8+528+8 || got[2].Rect.Height != 528 {
		t.Fatalf("second stack rect = %+v", got[2].Rect)
	}
}

func TestTile_LastStackSlotAbsorbsRemainder(t *testing.T) {
	got := Tile(1920, 1080, windowsN(4), 0.6, 2)
	// (1064 - 16) / 3 = 349 rem 1
	last := got[3].Rect
	if last.Y+last.Height != 1080-8 {
		t.Fatalf("last stack bottom = %d, want %d", last.Y+last.Height, 1080-8)
	}
}

func TestTile_Invariants(t *testing.T) {
	screens := []struct{ w, h int }{
		{1920, 1080}, {1280, 720}, {800, 600}, {3840, 2160}, {100, 100},
	}
	for _, s := range screens {
		usableW, usableH := s.w-2*DefaultGap, s.h-2*DefaultGap
		for n := 2; n <= 8; n++ {
			got := Tile(s.w, s.h, windowsN(n), 0.6, 2)
			if len(got) != n {
				t.Fatalf("%dx%d n=%d: got %d geometries", s.w, s.h, n, len(got))
			}
			master, first := got[0].Rect, got[1].Rect
			if master.Width+DefaultGap+first.Width > usableW {
				t.Errorf("%dx%d n=%d: master %d + gap + stack %d > usable %d",
					s.w, s.h, n, master.Width, first.Width, usableW)
			}
			sum := 0
			for _, g := range got[1:] {
				sum += g.Rect.Height
			}
			sum += (n - 2) * DefaultGap
			if sum > usableH {
				t.Errorf("%dx%d n=%d: stack heights + gaps = %d > usable %d", s.w, s.h, n, sum, usableH)
			}
			for i, g := range got {
				if g.Rect.Width <= 0 || g.Rect.Height <= 0 {
					t.Errorf("%dx%d n=%d: geometry %d has non-positive size %+v", s.w, s.h, n, i, g.Rect)
				}
				if g.BorderWidth != 2 {
					t.Errorf("%dx%d n=%d: geometry %d border %d", s.w, s.h, n, i, g.BorderWidth)
				}
			}
		}
	}
}

func TestTile_TinyScreenEmitsNothing(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"narrow", 2 * DefaultGap, 1080},
		{"short", 1920, 2 * DefaultGap},
		{"smaller than gaps", 10, 10},
		{"zero", 0, 0},
		{"negative", -5, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 1; n <= 3; n++ {
				if got := Tile(tt.w, tt.h, windowsN(n), 0.6, 2); got != nil {
					t.Fatalf("n=%d: expected nil, got %v", n, got)
				}
			}
		})
	}
}

func TestTile_ManyWindowsClampHeightToOne(t *testing.T) {
	got := Tile(1920, 200, windowsN(100), 0.6, 1)
	if len(got) != 100 {
		t.Fatalf("expected 100 geometries, got %d", len(got))
	}
	for i, g := range got {
		if g.Rect.Height < 1 || g.Rect.Width < 1 {
			t.Fatalf("geometry %d has size %dx%d", i, g.Rect.Width, g.Rect.Height)
		}
	}
	if got[1].Rect.Height != 1 {
		t.Fatalf("stack height = %d, want clamp to 1", got[1].Rect.Height)
	}
}

func TestTile_ExtremeRatioClampsWidths(t *testing.T) {
	for _, ratio := range []float64{0.0001, 0.9999} {
		got := Tile(100, 100, windowsN(2), ratio, 0)
		for i, g := range got {
			if g.Rect.Width < 1 {
				t.Fatalf("ratio %v: geometry %d width %d", ratio, i, g.Rect.Width)
			}
		}
	}
}

func TestMasterStack_CustomGap(t *testing.T) {
	got := MasterStack{Gap: 0}.Tile(100, 50, windowsN(1), 0.5, 3)
	if got[0].Rect != (Rect{X: 0, Y: 0, Width: 100, Height: 50}) {
		t.Fatalf("rect = %+v", got[0].Rect)
	}
}

func TestFullscreen_CoversScreenWithoutBorder(t *testing.T) {
	g := Fullscreen(42, 1920, 1080)
	if g.Window != 42 {
		t.Fatalf("window = %d, want 42", g.Window)
	}
	if g.Rect != (Rect{X: 0, Y: 0, Width: 1920, Height: 1080}) {
		t.Fatalf("rect = %+v", g.Rect)
	}
	if g.BorderWidth != 0 {
		t.Fatalf("border = %d, want 0", g.BorderWidth)
	}
}
