package qd

import (
	"encoding/binary"
	"io"
)

// Decoder reads drawings from a stream of concatenated frames. It
// advances a single cursor and buffers no more than one frame at a
// time; frames are self-describing, so decoding is strictly
// sequential with no lookahead.
//
// By default the decoder is lenient: any short read after a frame has
// begun is reported as io.EOF, the same as a clean end of stream.
// This matches the reference tooling, which cannot tell a truncated
// file from one that ends cleanly. Strict switches to reporting
// ErrTruncated instead.
type Decoder struct {
	r      io.Reader
	strict bool
	done   bool
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Strict makes a short read mid-frame return ErrTruncated instead of
// being collapsed into io.EOF.
func (d *Decoder) Strict() *Decoder {
	d.strict = true
	return d
}

// Next decodes and returns the next drawing. It returns io.EOF when
// the stream ends exactly at a frame boundary, which is the normal
// termination signal, not an error. Once Next has returned a non-nil
// error the decoder stays terminated: frame boundaries cannot be
// recovered after a failed read.
func (d *Decoder) Next() (*Drawing, error) {
	if d.done {
		return nil, io.EOF
	}

	var keyID uint64
	if err := binary.Read(d.r, binary.LittleEndian, &keyID); err != nil {
		d.done = true
		if err == io.EOF {
			// zero bytes at a frame boundary: clean end of stream
			return nil, io.EOF
		}
		return nil, d.shortRead(err)
	}

	drawing := &Drawing{KeyID: keyID}

	var country [2]byte
	if _, err := io.ReadFull(d.r, country[:]); err != nil {
		d.done = true
		return nil, d.shortRead(err)
	}
	drawing.CountryCode = string(country[:])

	var recognized int8
	if err := binary.Read(d.r, binary.LittleEndian, &recognized); err != nil {
		d.done = true
		return nil, d.shortRead(err)
	}
	drawing.Recognized = recognized != 0

	if err := binary.Read(d.r, binary.LittleEndian, &drawing.Timestamp); err != nil {
		d.done = true
		return nil, d.shortRead(err)
	}

	nbStrokes, err := d.readCount()
	if err != nil {
		d.done = true
		return nil, err
	}

	drawing.Image = make([]StrokeData, nbStrokes)
	for i := uint16(0); i < nbStrokes; i++ {
		stroke, err := d.readStroke()
		if err != nil {
			d.done = true
			return nil, err
		}
		drawing.Image[i] = stroke
	}

	return drawing, nil
}

func (d *Decoder) readCount() (uint16, error) {
	var nb uint16
	if err := binary.Read(d.r, binary.LittleEndian, &nb); err != nil {
		return 0, d.shortRead(err)
	}
	return nb, nil
}

func (d *Decoder) readStroke() (StrokeData, error) {
	var stroke StrokeData

	nbPoints, err := d.readCount()
	if err != nil {
		return stroke, err
	}

	if nbPoints == 0 {
		return stroke, nil
	}

	stroke.X = make([]uint8, nbPoints)
	if _, err := io.ReadFull(d.r, stroke.X); err != nil {
		return StrokeData{}, d.shortRead(err)
	}

	stroke.Y = make([]uint8, nbPoints)
	if _, err := io.ReadFull(d.r, stroke.Y); err != nil {
		return StrokeData{}, d.shortRead(err)
	}

	return stroke, nil
}

// shortRead maps an incomplete read inside a frame to the configured
// termination behavior.
func (d *Decoder) shortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if d.strict {
			return ErrTruncated
		}
		return io.EOF
	}
	return err
}

// DecodeAll decodes drawings from r until the stream ends or limit
// records have been read. A limit of 0 means no limit. In lenient
// mode a corrupt stream yields the drawings decoded before the
// corruption point and a nil error.
func DecodeAll(r io.Reader, limit int) ([]*Drawing, error) {
	decoder := NewDecoder(r)

	var drawings []*Drawing
	for limit == 0 || len(drawings) < limit {
		drawing, err := decoder.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return drawings, err
		}
		drawings = append(drawings, drawing)
	}

	return drawings, nil
}
