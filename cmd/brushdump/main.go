// Command brushdump binds a brush on a render target and prints the
// constant buffer and device state it produces.
//
// Usage:
//
//	brushdump -brush bitmap -image photo.png -extend-x wrap -dpi 144
//	brushdump -brush solid -color '#ff8000' -opacity 0.5 -backend recording
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/backend"
	"github.com/gogpu/paint/backend/native"
	"github.com/gogpu/paint/gpucore"
	"github.com/gogpu/paint/recording"
)

type options struct {
	backend   string
	brush     string
	color     string
	image     string
	opacity   float64
	dpi       float64
	extendX   string
	extendY   string
	filter    string
	shape     string
	transform string
	verbose   bool
}

func main() {
	var o options
	flag.StringVar(&o.backend, "backend", "", "device backend (native, recording); empty picks the best available")
	flag.StringVar(&o.brush, "brush", "bitmap", "brush type: solid, linear or bitmap")
	flag.StringVar(&o.color, "color", "#3366cc", "solid brush color")
	flag.StringVar(&o.image, "image", "", "bitmap brush image (png, jpeg, bmp, webp); empty uses a checkerboard")
	flag.Float64Var(&o.opacity, "opacity", 1, "brush opacity")
	flag.Float64Var(&o.dpi, "dpi", paint.DefaultDPI, "render target DPI")
	flag.StringVar(&o.extendX, "extend-x", "clamp", "bitmap extend mode along x: clamp, wrap or mirror")
	flag.StringVar(&o.extendY, "extend-y", "clamp", "bitmap extend mode along y: clamp, wrap or mirror")
	flag.StringVar(&o.filter, "filter", "linear", "bitmap interpolation: linear or nearest")
	flag.StringVar(&o.shape, "shape", "triangle", "geometry kind: triangle or bezier")
	flag.StringVar(&o.transform, "transform", "1,0,0,1,0,0", "brush transform as a,b,c,d,e,f")
	flag.BoolVar(&o.verbose, "v", false, "log debug output to stderr")
	flag.Parse()

	if o.verbose {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(os.Stdout, o); err != nil {
		log.Fatalf("brushdump: %v", err)
	}
}

func run(w io.Writer, o options) error {
	shape, err := parseShape(o.shape)
	if err != nil {
		return err
	}
	xform, err := parseMatrix(o.transform)
	if err != nil {
		return err
	}

	b, err := openBackend(o.backend)
	if err != nil {
		return err
	}
	defer b.Close()
	dev := b.Device()
	fmt.Fprintf(w, "backend: %s\n", b.Name())

	shaders, err := native.LoadPixelShaders(dev)
	if err != nil {
		log.Printf("pixel shaders unavailable: %v", err)
		shaders = paint.PixelShaderTable{}
	}
	defer native.ReleasePixelShaders(dev, shaders)

	rt, err := paint.NewTarget(dev, paint.WithDPI(o.dpi, o.dpi), paint.WithPixelShaders(shaders))
	if err != nil {
		return err
	}

	f := paint.NewFactory()
	defer f.Release()

	props := &paint.BrushProperties{Opacity: o.opacity, Transform: xform}
	brush, err := makeBrush(f, dev, o, props)
	if err != nil {
		return err
	}
	defer brush.Release()

	fmt.Fprintf(w, "brush: %s opacity=%g\n", brush.Type(), brush.Opacity())
	if lg := paint.AsLinearGradientBrush(brush); lg != nil {
		dumpRamp(w, lg)
	}

	buf, err := paint.Bind(brush, rt, shape)
	if errors.Is(err, paint.ErrNotImplemented) {
		fmt.Fprintf(w, "bind: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	defer dev.DestroyBuffer(buf)

	cb, err := paint.PixelConstants(brush, rt)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "constants (%d bytes): % x\n", len(cb), cb)

	if bb := paint.AsBitmapBrush(brush); bb != nil {
		dumpSampler(w, bb)
	}

	switch d := dev.(type) {
	case *recording.Device:
		for i, c := range d.Commands() {
			fmt.Fprintf(w, "%3d %s\n", i, c)
		}
		fmt.Fprintln(w, d.Live())
	case *native.Device:
		s := d.PixelState()
		fmt.Fprintf(w, "bound: shader=%t textures=%d samplers=%d constant buffers=%d\n",
			s.Shader != nil, len(s.Textures), len(s.Samplers), len(s.ConstantBuffers))
	}
	return nil
}

func openBackend(name string) (backend.DeviceBackend, error) {
	if name == "" {
		return backend.InitDefault()
	}
	b := backend.Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q (have %v)", backend.ErrBackendNotAvailable, name, backend.Available())
	}
	if err := b.Init(); err != nil {
		b.Close()
		return nil, fmt.Errorf("init %s backend: %w", name, err)
	}
	return b, nil
}

func makeBrush(f *paint.Factory, dev gpucore.Device, o options, props *paint.BrushProperties) (paint.Brush, error) {
	switch o.brush {
	case "solid":
		return f.CreateSolidColorBrush(paint.Hex(o.color), props), nil

	case "linear":
		stops, err := f.CreateGradientStopCollection([]paint.GradientStop{
			{Offset: 0, Color: paint.Hex(o.color)},
			{Offset: 1, Color: paint.Transparent},
		}, paint.Gamma22, paint.ExtendClamp)
		if err != nil {
			return nil, err
		}
		defer stops.Release()
		return f.CreateLinearGradientBrush(paint.LinearGradientBrushProperties{
			StartPoint: paint.Pt(0, 0),
			EndPoint:   paint.Pt(100, 0),
		}, props, stops), nil

	case "bitmap":
		bp, err := bitmapProperties(o)
		if err != nil {
			return nil, err
		}
		img, err := loadImage(o.image)
		if err != nil {
			return nil, err
		}
		bm, err := f.CreateBitmapFromImage(dev, img, paint.BitmapProperties{})
		if err != nil {
			return nil, err
		}
		defer bm.Release()
		return f.CreateBitmapBrush(bm, &bp, props), nil

	default:
		return nil, fmt.Errorf("unknown brush type %q", o.brush)
	}
}

func loadImage(path string) (image.Image, error) {
	if path == "" {
		return checkerboard(8, 8), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	img, format, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Printf("loaded %s image %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

func dumpRamp(w io.Writer, b *paint.LinearGradientBrush) {
	start, end := b.StartPoint(), b.EndPoint()
	for i := 0; i <= 4; i++ {
		t := float64(i) / 4
		x := start.X + (end.X-start.X)*t
		y := start.Y + (end.Y-start.Y)*t
		c := b.ColorAt(x, y)
		fmt.Fprintf(w, "ramp t=%.2f: r=%.3f g=%.3f b=%.3f a=%.3f\n", t, c.R, c.G, c.B, c.A)
	}
}

func dumpSampler(w io.Writer, b *paint.BitmapBrush) {
	fmt.Fprintf(w, "sampler: extend=%s/%s interpolation=%s\n",
		b.ExtendModeX(), b.ExtendModeY(), b.InterpolationMode())
	if bm := b.Bitmap(); bm != nil {
		pw, ph := bm.PixelSize()
		dx, dy := bm.DPI()
		fmt.Fprintf(w, "bitmap: %dx%d px at %gx%g dpi\n", pw, ph, dx, dy)
		bm.Release()
	}
}
