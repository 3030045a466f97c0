package paint

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/paint/recording"
)

// expectInvalidUsage runs fn and checks that it panics with ErrInvalidUsage.
func expectInvalidUsage(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidUsage) {
			t.Fatalf("panic value = %v, want ErrInvalidUsage", r)
		}
	}()
	fn()
}

func TestBrushDefaults(t *testing.T) {
	f := NewFactory()
	b := f.CreateSolidColorBrush(Red, nil)
	defer b.Release()

	if got := b.Type(); got != BrushTypeSolid {
		t.Errorf("Type() = %v, want Solid", got)
	}
	if got := b.Opacity(); got != 1 {
		t.Errorf("Opacity() = %v, want 1", got)
	}
	if got := b.Transform(); !got.IsIdentity() {
		t.Errorf("Transform() = %+v, want identity", got)
	}
}

func TestBrushPropertiesStoredRaw(t *testing.T) {
	f := NewFactory()
	b := f.CreateSolidColorBrush(Red, &BrushProperties{Opacity: 0.5, Transform: Translate(3, 4)})
	defer b.Release()

	if got := b.Opacity(); got != 0.5 {
		t.Errorf("Opacity() = %v, want 0.5", got)
	}

	// No range validation.
	b.SetOpacity(7)
	if got := b.Opacity(); got != 7 {
		t.Errorf("Opacity() = %v after SetOpacity(7)", got)
	}

	m := Matrix{A: 0, B: 0, C: 1, D: 0, E: 0, F: 1}
	b.SetTransform(m)
	if got := b.Transform(); got != m {
		t.Errorf("Transform() = %+v, want %+v", got, m)
	}

	c := RGBA2(2, -1, 0.5, 3)
	b.SetColor(c)
	if got := b.Color(); got != c {
		t.Errorf("Color() = %+v, want %+v (no clamping)", got, c)
	}
}

func TestBrushRefCount(t *testing.T) {
	f := NewFactory()
	b := f.CreateSolidColorBrush(Blue, nil)

	if got := f.LiveObjects(); got != 1 {
		t.Fatalf("LiveObjects() = %d, want 1", got)
	}
	if got := b.AddRef(); got != 2 {
		t.Errorf("AddRef() = %d, want 2", got)
	}
	if got := b.AddRef(); got != 3 {
		t.Errorf("AddRef() = %d, want 3", got)
	}
	for want := int32(2); want >= 0; want-- {
		if got := b.Release(); got != want {
			t.Errorf("Release() = %d, want %d", got, want)
		}
	}
	if got := f.LiveObjects(); got != 0 {
		t.Errorf("LiveObjects() = %d after final release, want 0", got)
	}

	expectInvalidUsage(t, func() { b.Release() })
}

func TestBrushFactoryReference(t *testing.T) {
	f := NewFactory()
	b := f.CreateSolidColorBrush(Blue, nil)

	// The brush holds one factory reference; Factory() adds another.
	got := b.Factory()
	if got != f {
		t.Fatal("Factory() returned a different factory")
	}
	if n := f.Release(); n != 2 {
		t.Errorf("factory refs after releasing Factory() result = %d, want 2", n)
	}

	b.Release()
	if n := f.Release(); n != 0 {
		t.Errorf("factory refs after brush destruction = %d, want 0", n)
	}
}

type wrappedBrush struct {
	*SolidColorBrush
}

func TestNarrowing(t *testing.T) {
	f := NewFactory()
	dev := recording.NewDevice()

	solid := f.CreateSolidColorBrush(Red, nil)
	defer solid.Release()
	linear := f.CreateLinearGradientBrush(LinearGradientBrushProperties{}, nil, nil)
	defer linear.Release()
	bm := newTestBitmap(t, f, dev, 4, 4)
	defer bm.Release()
	bitmap := f.CreateBitmapBrush(bm, nil, nil)
	defer bitmap.Release()

	tests := []struct {
		name       string
		b          Brush
		wantSolid  *SolidColorBrush
		wantLinear *LinearGradientBrush
		wantBitmap *BitmapBrush
	}{
		{"solid", solid, solid, nil, nil},
		{"linear", linear, nil, linear, nil},
		{"bitmap", bitmap, nil, nil, bitmap},
		{"nil", nil, nil, nil, nil},
		{"typed nil", (*SolidColorBrush)(nil), nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AsSolidColorBrush(tt.b); got != tt.wantSolid {
				t.Errorf("AsSolidColorBrush = %p, want %p", got, tt.wantSolid)
			}
			if got := AsLinearGradientBrush(tt.b); got != tt.wantLinear {
				t.Errorf("AsLinearGradientBrush = %p, want %p", got, tt.wantLinear)
			}
			if got := AsBitmapBrush(tt.b); got != tt.wantBitmap {
				t.Errorf("AsBitmapBrush = %p, want %p", got, tt.wantBitmap)
			}
		})
	}
}

func TestNarrowingContractViolation(t *testing.T) {
	f := NewFactory()
	solid := f.CreateSolidColorBrush(Red, nil)
	defer solid.Release()

	t.Run("foreign implementation", func(t *testing.T) {
		expectInvalidUsage(t, func() { AsSolidColorBrush(wrappedBrush{solid}) })
	})
	t.Run("not created by factory", func(t *testing.T) {
		expectInvalidUsage(t, func() { AsBitmapBrush(&BitmapBrush{}) })
	})
}

func TestLinearGradientBrush(t *testing.T) {
	f := NewFactory()
	stops, err := f.CreateGradientStopCollection([]GradientStop{
		{Offset: 0, Color: Black},
		{Offset: 1, Color: White},
	}, Gamma22, ExtendClamp)
	if err != nil {
		t.Fatalf("CreateGradientStopCollection: %v", err)
	}

	b := f.CreateLinearGradientBrush(LinearGradientBrushProperties{
		StartPoint: Pt(0, 0),
		EndPoint:   Pt(100, 0),
	}, &BrushProperties{Opacity: 0.5, Transform: Identity()}, stops)

	// The brush keeps the collection alive after the caller lets go.
	stops.Release()
	if got := f.LiveObjects(); got != 2 {
		t.Fatalf("LiveObjects() = %d, want 2", got)
	}

	if got := b.Opacity(); got != 0.5 {
		t.Errorf("Opacity() = %v, want 0.5", got)
	}
	if got := b.StartPoint(); got != Pt(0, 0) {
		t.Errorf("StartPoint() = %v", got)
	}
	if got := b.EndPoint(); got != Pt(100, 0) {
		t.Errorf("EndPoint() = %v", got)
	}

	got := b.GradientStopCollection()
	if got != stops {
		t.Fatal("GradientStopCollection() returned a different collection")
	}
	if n := got.Release(); n != 1 {
		t.Errorf("collection refs = %d, want 1 held by the brush", n)
	}

	if diff := cmp.Diff(RGBA2(0.5, 0.5, 0.5, 0.5), b.ColorAt(50, 7), cmpApprox32); diff != "" {
		t.Errorf("ColorAt(50, 7) mismatch (-want +got):\n%s", diff)
	}

	b.SetStartPoint(Pt(100, 0))
	b.SetEndPoint(Pt(0, 0))
	if diff := cmp.Diff(RGBA2(1, 1, 1, 0.5), b.ColorAt(0, 0), cmpApprox32); diff != "" {
		t.Errorf("ColorAt after swapping points mismatch (-want +got):\n%s", diff)
	}

	// A transform moves the gradient in user space.
	b.SetTransform(Translate(100, 0))
	if diff := cmp.Diff(RGBA2(1, 1, 1, 0.5), b.ColorAt(100, 0), cmpApprox32); diff != "" {
		t.Errorf("ColorAt with transform mismatch (-want +got):\n%s", diff)
	}

	b.SetTransform(Matrix{})
	if got := b.ColorAt(0, 0); got != Transparent {
		t.Errorf("ColorAt with degenerate transform = %v, want Transparent", got)
	}

	b.Release()
	if got := f.LiveObjects(); got != 0 {
		t.Errorf("LiveObjects() = %d after release, want 0", got)
	}
}

func TestLinearGradientBrushWithoutStops(t *testing.T) {
	f := NewFactory()
	b := f.CreateLinearGradientBrush(LinearGradientBrushProperties{EndPoint: Pt(1, 0)}, nil, nil)
	defer b.Release()

	if got := b.GradientStopCollection(); got != nil {
		t.Errorf("GradientStopCollection() = %v, want nil", got)
	}
	if got := b.ColorAt(0.5, 0); got != Transparent {
		t.Errorf("ColorAt() = %v, want Transparent", got)
	}
}

func TestBrushTypeString(t *testing.T) {
	tests := []struct {
		typ  BrushType
		want string
	}{
		{BrushTypeSolid, "Solid"},
		{BrushTypeLinearGradient, "LinearGradient"},
		{BrushTypeBitmap, "Bitmap"},
		{BrushType(0), "BrushType(0)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("BrushType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
