// Package annotations exports decoded drawings as PDF documents, one
// page per drawing, with strokes drawn as polylines.
package annotations

import (
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/contentstream/draw"
	"github.com/unidoc/unipdf/v3/creator"

	"github.com/xyx050/sketchbin/encoding/qd"
)

// page size matches the drawing canvas, one PDF unit per coordinate
var sketchPageSize = creator.PageSize{255, 255}

type PdfGenerator struct {
	binName        string
	outputFilePath string
	options        PdfGeneratorOptions
}

type PdfGeneratorOptions struct {
	AddPageNumbers bool
	// MaxDrawings caps the number of pages; 0 means all drawings in
	// the file.
	MaxDrawings int
	StrokeWidth float64
}

func CreatePdfGenerator(binName, outputFilePath string, options PdfGeneratorOptions) *PdfGenerator {
	return &PdfGenerator{binName: binName, outputFilePath: outputFilePath, options: options}
}

func (p *PdfGenerator) Generate() error {
	file, err := os.Open(p.binName)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	drawings, err := qd.DecodeAll(file, p.options.MaxDrawings)
	if err != nil {
		return err
	}

	c := creator.New()
	c.SetPageSize(sketchPageSize)

	width := p.options.StrokeWidth
	if width <= 0 {
		width = 2
	}

	for _, drawing := range drawings {
		page := c.NewPage()

		strokes, err := drawing.Strokes()
		if err != nil {
			return err
		}

		contentCreator := contentstream.NewContentCreator()
		for _, stroke := range strokes {
			if len(stroke) < 2 {
				continue
			}

			path := draw.NewPath()
			for _, pt := range stroke {
				// PDF y axis grows upward, drawing y grows downward
				path = path.AppendPoint(draw.NewPoint(float64(pt.X), c.Height()-float64(pt.Y)))
			}
			contentCreator.Add_q()
			contentCreator.Add_w(width)
			contentCreator.Add_RG(0, 0, 0)

			draw.DrawPathWithCreator(path, contentCreator)

			contentCreator.Add_S()
			contentCreator.Add_Q()
		}

		ops := contentCreator.Operations()
		if err := page.AppendContentStream(string(ops.Bytes())); err != nil {
			return err
		}
	}

	if p.options.AddPageNumbers {
		c.DrawFooter(func(block *creator.Block, args creator.FooterFunctionArgs) {
			para := c.NewParagraph(fmt.Sprintf("%d", args.PageNum))
			para.SetFontSize(8)
			w := block.Width() - 20
			h := block.Height() - 10
			para.SetPos(w, h)
			block.Draw(para)
		})
	}

	return c.WriteToFile(p.outputFilePath)
}
