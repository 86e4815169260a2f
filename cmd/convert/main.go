package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyx050/sketchbin/annotations"
	"github.com/xyx050/sketchbin/encoding/qd"
	"github.com/xyx050/sketchbin/visualize"
)

func main() {
	inputName := flag.String("i", "", "file to convert")
	outputName := flag.String("o", "", "output file or directory")
	export := flag.String("e", "", "export format, p - pdf (default: one PNG per record)")
	max := flag.Int("n", 0, "convert at most n records (0 = all)")
	flag.Parse()
	var err error

	switch *export {

	case "p":
		err = convertPdf(*inputName, *outputName, *max)
	case "":
		err = convertPng(*inputName, *outputName, *max)
	default:
		err = fmt.Errorf("unknown export format %q", *export)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func convertPdf(inputName, outputName string, max int) error {
	if inputName == "" {
		return errors.New("missing input file")
	}

	if outputName == "" {
		nameOnly := strings.TrimSuffix(inputName, filepath.Ext(inputName))
		outputName = nameOnly + ".pdf"
	}

	options := annotations.PdfGeneratorOptions{
		MaxDrawings: max,
	}
	gen := annotations.CreatePdfGenerator(inputName, outputName, options)
	return gen.Generate()
}

func convertPng(inputName, outputDir string, max int) error {
	if inputName == "" {
		return errors.New("missing input file")
	}

	if outputDir == "" {
		outputDir = strings.TrimSuffix(inputName, filepath.Ext(inputName))
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("can't create output directory %w", err)
	}

	file, err := os.Open(inputName)
	if err != nil {
		return fmt.Errorf("can't open file %w", err)
	}
	defer file.Close()

	decoder := qd.NewDecoder(bufio.NewReader(file))

	index := 0
	for max == 0 || index < max {
		drawing, err := decoder.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("decode failed after %d records: %w", index, err)
		}

		out := filepath.Join(outputDir, fmt.Sprintf("%d.png", index))
		if err := visualize.SaveDrawing(drawing, out, visualize.Options{}); err != nil {
			return fmt.Errorf("can't render record %d: %w", index, err)
		}
		index++
	}

	fmt.Printf("converted %d record(s) to %s\n", index, outputDir)
	return nil
}
