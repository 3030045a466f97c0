package paint

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testStops() []GradientStop {
	return []GradientStop{
		{Offset: 0, Color: Red},
		{Offset: 0.5, Color: Green},
		{Offset: 1, Color: Blue},
	}
}

func TestGradientStopCollection_Stops(t *testing.T) {
	f := NewFactory()
	src := testStops()

	c, err := f.CreateGradientStopCollection(src, Gamma22, ExtendClamp)
	if err != nil {
		t.Fatalf("CreateGradientStopCollection: %v", err)
	}
	defer c.Release()

	// The caller's slice is copied, not retained.
	src[0].Color = White

	if got := c.StopCount(); got != 3 {
		t.Fatalf("StopCount() = %d, want 3", got)
	}

	tests := []struct {
		name  string
		size  int
		wantN int
		want  []GradientStop
	}{
		{
			name:  "exact",
			size:  3,
			wantN: 3,
			want:  testStops(),
		},
		{
			name:  "undersized",
			size:  2,
			wantN: 2,
			want:  testStops()[:2],
		},
		{
			name:  "oversized",
			size:  5,
			wantN: 3,
			want:  append(testStops(), GradientStop{}, GradientStop{}),
		},
		{
			name:  "empty",
			size:  0,
			wantN: 0,
			want:  []GradientStop{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]GradientStop, tt.size)
			// Pre-fill so zero-filling is observable.
			for i := range dst {
				dst[i] = GradientStop{Offset: 42, Color: White}
			}

			n := c.Stops(dst)
			if n != tt.wantN {
				t.Errorf("Stops() = %d, want %d", n, tt.wantN)
			}
			if diff := cmp.Diff(tt.want, dst); diff != "" {
				t.Errorf("stops mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGradientStopCollection_FixedAccessors(t *testing.T) {
	f := NewFactory()
	c, err := f.CreateGradientStopCollection(testStops(), Gamma22, ExtendMirror)
	if err != nil {
		t.Fatalf("CreateGradientStopCollection: %v", err)
	}
	defer c.Release()

	if got := c.ColorInterpolationGamma(); got != Gamma10 {
		t.Errorf("ColorInterpolationGamma() = %v, want Gamma10", got)
	}
	if got := c.ExtendMode(); got != ExtendClamp {
		t.Errorf("ExtendMode() = %v, want Clamp", got)
	}
}

func TestGradientStopCollection_Limit(t *testing.T) {
	f := NewFactory(WithMaxGradientStops(2))

	_, err := f.CreateGradientStopCollection(testStops(), Gamma22, ExtendClamp)
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("err = %v, want ErrOutOfMemory", err)
	}
	if got := f.LiveObjects(); got != 0 {
		t.Errorf("LiveObjects() = %d after failed creation, want 0", got)
	}
}

func TestGradientStopCollection_Lifecycle(t *testing.T) {
	f := NewFactory()
	c, err := f.CreateGradientStopCollection(testStops(), Gamma22, ExtendClamp)
	if err != nil {
		t.Fatalf("CreateGradientStopCollection: %v", err)
	}

	if got := f.LiveObjects(); got != 1 {
		t.Errorf("LiveObjects() = %d, want 1", got)
	}
	if got := c.AddRef(); got != 2 {
		t.Errorf("AddRef() = %d, want 2", got)
	}
	if got := c.Release(); got != 1 {
		t.Errorf("Release() = %d, want 1", got)
	}
	if got := c.Release(); got != 0 {
		t.Errorf("Release() = %d, want 0", got)
	}
	if got := f.LiveObjects(); got != 0 {
		t.Errorf("LiveObjects() = %d after release, want 0", got)
	}
}

func TestGradientStopCollection_ColorAt(t *testing.T) {
	f := NewFactory()

	// Stops given out of order are evaluated by offset.
	c, err := f.CreateGradientStopCollection([]GradientStop{
		{Offset: 1, Color: White},
		{Offset: 0, Color: Black},
	}, Gamma22, ExtendClamp)
	if err != nil {
		t.Fatalf("CreateGradientStopCollection: %v", err)
	}
	defer c.Release()

	tests := []struct {
		t    float64
		want RGBA
	}{
		{-1, Black},
		{0, Black},
		{0.25, RGB(0.25, 0.25, 0.25)},
		{0.5, RGB(0.5, 0.5, 0.5)},
		{1, White},
		{2, White},
	}
	for _, tt := range tests {
		got := c.ColorAt(tt.t)
		if diff := cmp.Diff(tt.want, got, cmpApprox32); diff != "" {
			t.Errorf("ColorAt(%v) mismatch (-want +got):\n%s", tt.t, diff)
		}
	}

	empty, err := f.CreateGradientStopCollection(nil, Gamma22, ExtendClamp)
	if err != nil {
		t.Fatalf("CreateGradientStopCollection(nil): %v", err)
	}
	defer empty.Release()
	if got := empty.ColorAt(0.5); got != Transparent {
		t.Errorf("empty ColorAt = %v, want Transparent", got)
	}
}

func TestGradientStopCollection_ColorAtLinearGamma(t *testing.T) {
	f := NewFactory()
	c, err := f.CreateGradientStopCollection([]GradientStop{
		{Offset: 0, Color: Black},
		{Offset: 1, Color: White},
	}, Gamma10, ExtendClamp)
	if err != nil {
		t.Fatalf("CreateGradientStopCollection: %v", err)
	}
	defer c.Release()

	// Linear-light interpolation is brighter than sRGB midway.
	if got := c.ColorAt(0.5); got.R <= 0.7 {
		t.Errorf("ColorAt(0.5).R = %v, want > 0.7 for linear interpolation", got.R)
	}
}
