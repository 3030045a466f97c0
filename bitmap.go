package paint

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/paint/gpucore"
)

// DefaultDPI is the DPI at which one device-independent pixel equals one
// physical pixel.
const DefaultDPI = 96.0

// AlphaMode describes how a bitmap's alpha channel is interpreted.
type AlphaMode uint8

const (
	// AlphaModeUnknown lets the format decide. RGBA8 bitmaps treat it as
	// premultiplied.
	AlphaModeUnknown AlphaMode = iota
	// AlphaModePremultiplied means color channels are premultiplied by alpha.
	AlphaModePremultiplied
	// AlphaModeStraight means color channels are not premultiplied.
	AlphaModeStraight
	// AlphaModeIgnore means the alpha channel is ignored and treated as opaque.
	AlphaModeIgnore
)

// String returns the alpha mode name.
func (m AlphaMode) String() string {
	switch m {
	case AlphaModeUnknown:
		return "Unknown"
	case AlphaModePremultiplied:
		return "Premultiplied"
	case AlphaModeStraight:
		return "Straight"
	case AlphaModeIgnore:
		return "Ignore"
	default:
		return fmt.Sprintf("AlphaMode(%d)", uint8(m))
	}
}

// PixelFormat pairs a texture format with its alpha interpretation.
type PixelFormat struct {
	Format    gputypes.TextureFormat
	AlphaMode AlphaMode
}

// BitmapProperties describes a bitmap's pixel format and DPI.
// Zero DPI values default to [DefaultDPI]. A zero format defaults to
// RGBA8Unorm.
type BitmapProperties struct {
	PixelFormat PixelFormat
	DPIX, DPIY  float64
}

// Bitmap is a reference-counted device texture with a pixel size and DPI.
//
// A bitmap belongs to the device it was created on. The texture and its
// view are destroyed when the last reference is released.
type Bitmap struct {
	refs    refCount
	factory *Factory
	device  gpucore.Device

	width, height int
	dpiX, dpiY    float64
	format        PixelFormat

	texture gpucore.TextureID
	view    gpucore.TextureViewID
}

// CreateBitmap uploads width×height tightly packed 4-byte pixels to dev
// and wraps them in a bitmap. pixels may be nil for an uninitialized
// texture.
func (f *Factory) CreateBitmap(dev gpucore.Device, width, height int, pixels []byte, props BitmapProperties) (*Bitmap, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if width <= 0 || height <= 0 || props.DPIX < 0 || props.DPIY < 0 {
		return nil, fmt.Errorf("%w: %dx%d at %gx%g DPI", ErrInvalidDimensions, width, height, props.DPIX, props.DPIY)
	}
	if pixels != nil && len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes of pixels for %dx%d", ErrInvalidDimensions, len(pixels), width, height)
	}

	if props.PixelFormat.Format == gputypes.TextureFormatUndefined {
		props.PixelFormat.Format = gputypes.TextureFormatRGBA8Unorm
	}
	if props.DPIX == 0 {
		props.DPIX = DefaultDPI
	}
	if props.DPIY == 0 {
		props.DPIY = DefaultDPI
	}

	desc := &gpucore.TextureDescriptor{
		Label:  "paint_bitmap",
		Width:  uint32(width),  //nolint:gosec // validated positive above
		Height: uint32(height), //nolint:gosec // validated positive above
		Format: props.PixelFormat.Format,
		Usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
	tex, err := dev.CreateTexture(desc, pixels)
	if err != nil {
		f.logger().Error("paint: failed to create bitmap texture", "width", width, "height", height, "err", err)
		return nil, fmt.Errorf("paint: create bitmap texture: %w", err)
	}
	view, err := dev.CreateTextureView(tex)
	if err != nil {
		dev.DestroyTexture(tex)
		f.logger().Error("paint: failed to create bitmap view", "err", err)
		return nil, fmt.Errorf("paint: create bitmap view: %w", err)
	}

	bm := &Bitmap{
		factory: f,
		device:  dev,
		width:   width,
		height:  height,
		dpiX:    props.DPIX,
		dpiY:    props.DPIY,
		format:  props.PixelFormat,
		texture: tex,
		view:    view,
	}
	bm.refs.init()
	f.acquire()
	f.logger().Debug("paint: created bitmap", "width", width, "height", height,
		"dpi_x", props.DPIX, "dpi_y", props.DPIY, "alpha", props.PixelFormat.AlphaMode)
	return bm, nil
}

// CreateBitmapFromImage converts img to premultiplied RGBA8 and uploads it
// with CreateBitmap. The pixel format in props is overridden with
// RGBA8Unorm; its alpha mode is kept, defaulting to premultiplied.
func (f *Factory) CreateBitmapFromImage(dev gpucore.Device, img image.Image, props BitmapProperties) (*Bitmap, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	b := img.Bounds()

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	}

	props.PixelFormat.Format = gputypes.TextureFormatRGBA8Unorm
	if props.PixelFormat.AlphaMode == AlphaModeUnknown {
		props.PixelFormat.AlphaMode = AlphaModePremultiplied
	}
	return f.CreateBitmap(dev, b.Dx(), b.Dy(), rgba.Pix, props)
}

// AddRef adds a reference and returns the new count.
func (bm *Bitmap) AddRef() int32 {
	return bm.refs.addRef()
}

// Release drops a reference and returns the new count. The texture is
// destroyed when the count reaches zero.
func (bm *Bitmap) Release() int32 {
	n := bm.refs.release()
	if n == 0 {
		bm.device.DestroyTextureView(bm.view)
		bm.device.DestroyTexture(bm.texture)
		bm.view, bm.texture = gpucore.InvalidID, gpucore.InvalidID
		bm.factory.logger().Debug("paint: destroyed bitmap", "width", bm.width, "height", bm.height)
		bm.factory.relinquish()
	}
	return n
}

// PixelSize returns the bitmap size in pixels.
func (bm *Bitmap) PixelSize() (width, height int) {
	return bm.width, bm.height
}

// Size returns the bitmap size in device-independent pixels.
func (bm *Bitmap) Size() (width, height float64) {
	return float64(bm.width) * DefaultDPI / bm.dpiX, float64(bm.height) * DefaultDPI / bm.dpiY
}

// DPI returns the bitmap's horizontal and vertical DPI.
func (bm *Bitmap) DPI() (x, y float64) {
	return bm.dpiX, bm.dpiY
}

// PixelFormat returns the bitmap's pixel format.
func (bm *Bitmap) PixelFormat() PixelFormat {
	return bm.format
}

// Device returns the device that owns the bitmap's texture.
func (bm *Bitmap) Device() gpucore.Device {
	return bm.device
}

// View returns the bindable view of the bitmap's texture.
func (bm *Bitmap) View() gpucore.TextureViewID {
	return bm.view
}

// Factory returns the factory that created the bitmap with a new
// reference added. The caller must release it.
func (bm *Bitmap) Factory() *Factory {
	bm.factory.AddRef()
	return bm.factory
}
