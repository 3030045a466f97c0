package main

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/paint"
)

func parseShape(s string) (paint.ShapeType, error) {
	switch s {
	case "triangle":
		return paint.ShapeTriangle, nil
	case "bezier":
		return paint.ShapeBezier, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

func parseExtend(s string) (paint.ExtendMode, error) {
	switch s {
	case "clamp":
		return paint.ExtendClamp, nil
	case "wrap":
		return paint.ExtendWrap, nil
	case "mirror":
		return paint.ExtendMirror, nil
	}
	return 0, fmt.Errorf("unknown extend mode %q", s)
}

func parseFilter(s string) (paint.InterpolationMode, error) {
	switch s {
	case "linear":
		return paint.InterpolationLinear, nil
	case "nearest":
		return paint.InterpolationNearestNeighbor, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

// parseMatrix reads six comma separated coefficients a,b,c,d,e,f.
func parseMatrix(s string) (paint.Matrix, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return paint.Matrix{}, fmt.Errorf("transform %q: want 6 values, got %d", s, len(parts))
	}
	var v [6]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return paint.Matrix{}, fmt.Errorf("transform %q: %w", s, err)
		}
		v[i] = f
	}
	return paint.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}, nil
}

func bitmapProperties(o options) (paint.BitmapBrushProperties, error) {
	x, err := parseExtend(o.extendX)
	if err != nil {
		return paint.BitmapBrushProperties{}, err
	}
	y, err := parseExtend(o.extendY)
	if err != nil {
		return paint.BitmapBrushProperties{}, err
	}
	filter, err := parseFilter(o.filter)
	if err != nil {
		return paint.BitmapBrushProperties{}, err
	}
	return paint.BitmapBrushProperties{
		ExtendModeX:       x,
		ExtendModeY:       y,
		InterpolationMode: filter,
	}, nil
}

// checkerboard returns a w x h image of alternating opaque black and white.
func checkerboard(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}
