// Package visualize rasterizes decoded drawings into images,
// by wrapping rasterx.
package visualize

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/xyx050/sketchbin/encoding/qd"
)

// CanvasSize is the fixed raster size. Drawing coordinates are
// already normalized to [0,255] by the data producer, so no scaling
// is applied; points outside the canvas are clipped by the scanner.
const CanvasSize = 255

var ErrInvalidOptions = errors.New("visualize: invalid render options")

// Options control how a drawing is rasterized. The zero value means
// black width-2 strokes on a white background at the native canvas
// size, matching the reference tooling.
type Options struct {
	StrokeColor     color.Color
	BackgroundColor color.Color
	StrokeWidth     float64
	// OutputSize, when non-zero and different from CanvasSize,
	// resizes the rendered canvas to OutputSize x OutputSize.
	OutputSize int
}

func (o *Options) fill() error {
	if o.StrokeWidth < 0 || o.OutputSize < 0 {
		return ErrInvalidOptions
	}
	if o.StrokeColor == nil {
		o.StrokeColor = color.Black
	}
	if o.BackgroundColor == nil {
		o.BackgroundColor = color.White
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = 2
	}
	return nil
}

// Render rasterizes the drawing's strokes in drawing order.
func Render(d *qd.Drawing, opts Options) (*image.RGBA, error) {
	strokes, err := d.Strokes()
	if err != nil {
		return nil, err
	}
	return RenderStrokes(strokes, opts)
}

// RenderStrokes draws connected line segments between consecutive
// points of each stroke. A stroke with fewer than two points draws
// nothing. Identical strokes and options always produce a
// bit-identical pixel buffer.
func RenderStrokes(strokes []qd.Stroke, opts Options) (*image.RGBA, error) {
	if err := opts.fill(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.BackgroundColor), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(CanvasSize, CanvasSize, img, img.Bounds())
	scanner.SetColor(opts.StrokeColor)

	dasher := rasterx.NewDasher(CanvasSize, CanvasSize, scanner)
	width := fixed.Int26_6(opts.StrokeWidth * 64)
	dasher.SetStroke(width, fixed.I(4), rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round, nil, 0)

	for _, stroke := range strokes {
		if len(stroke) < 2 {
			// a single point has no partner to form a segment
			continue
		}
		dasher.Start(fixedPoint(stroke[0]))
		for _, p := range stroke[1:] {
			dasher.Line(fixedPoint(p))
		}
		dasher.Stop(false)
		dasher.Draw()
		dasher.Clear()
	}

	if opts.OutputSize != 0 && opts.OutputSize != CanvasSize {
		scaled := resize.Resize(uint(opts.OutputSize), uint(opts.OutputSize), img, resize.Lanczos3)
		out := image.NewRGBA(image.Rect(0, 0, opts.OutputSize, opts.OutputSize))
		draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
		return out, nil
	}

	return img, nil
}

func fixedPoint(p qd.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.I(int(p.X)), Y: fixed.I(int(p.Y))}
}
