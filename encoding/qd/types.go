// Package qd decodes the packed binary format used by sketch
// recording datasets: concatenated frames, one frame per drawing,
// little-endian, no file header and no padding between fields.
package qd

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrLengthMismatch is returned by Strokes when a stroke's x and y
	// arrays differ in length. A conforming decode never produces such
	// a record; the check guards hand-built ones.
	ErrLengthMismatch = errors.New("qd: stroke x and y arrays differ in length")

	// ErrTruncated is returned by a strict decoder when the stream
	// ends in the middle of a frame.
	ErrTruncated = errors.New("qd: stream truncated mid-frame")
)

// Drawing is one decoded sketch record.
type Drawing struct {
	KeyID       uint64
	CountryCode string
	Recognized  bool
	Timestamp   uint32

	// Image holds the raw per-stroke coordinate arrays exactly as
	// read from the file. It is the source of truth; Strokes derives
	// a paired view from it.
	Image []StrokeData

	once      sync.Once
	strokes   []Stroke
	strokeErr error
}

// StrokeData is one stroke in raw form: parallel x and y arrays,
// one byte per point, top-left origin, values in [0,255].
type StrokeData struct {
	X []uint8
	Y []uint8
}

// Stroke is an ordered list of points, in the order the pen traced them.
type Stroke []Point

type Point struct {
	X uint8
	Y uint8
}

// NumStrokes returns the number of pen strokes in the drawing.
func (d *Drawing) NumStrokes() int {
	return len(d.Image)
}

// Strokes pairs the raw coordinate arrays into ordered point lists,
// preserving stroke and point order. The result is computed once and
// cached; repeated calls do not re-validate.
func (d *Drawing) Strokes() ([]Stroke, error) {
	d.once.Do(func() {
		strokes := make([]Stroke, len(d.Image))
		for i, raw := range d.Image {
			if len(raw.X) != len(raw.Y) {
				d.strokeErr = fmt.Errorf("stroke %d: %w", i, ErrLengthMismatch)
				return
			}
			s := make(Stroke, len(raw.X))
			for j := range raw.X {
				s[j] = Point{X: raw.X[j], Y: raw.Y[j]}
			}
			strokes[i] = s
		}
		d.strokes = strokes
	})
	return d.strokes, d.strokeErr
}

func (d *Drawing) String() string {
	return fmt.Sprintf("Drawing key_id=%d country=%s strokes=%d", d.KeyID, d.CountryCode, d.NumStrokes())
}
