package visualize

import (
	"bytes"
	"image"
	"image/png"
	"io/ioutil"
	"os"

	"github.com/xyx050/sketchbin/encoding/qd"
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// SaveDrawing renders the drawing and writes it as a PNG file.
func SaveDrawing(d *qd.Drawing, filePath string, opts Options) error {
	img, err := Render(d, opts)
	if err != nil {
		return err
	}
	b, err := toPngBytes(img)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filePath, b, os.ModePerm)
}
