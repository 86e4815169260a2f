package shell

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/xyx050/sketchbin/annotations"
)

func pdfCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "pdf",
		Help: "export the open file as a PDF, one page per drawing, usage: pdf [options]",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("pdf", flag.ContinueOnError)
			var output string
			var max int
			var pageNumbers bool
			flagSet.StringVarP(&output, "output", "o", "", "output file name")
			flagSet.IntVarP(&max, "max", "n", 0, "export at most n drawings (0 = all)")
			flagSet.BoolVar(&pageNumbers, "page-numbers", false, "add page numbers")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}

			if ctx.fileName == "" {
				c.Err(errors.New("no file open, use: open <file.bin>"))
				return
			}

			if output == "" {
				nameOnly := strings.TrimSuffix(ctx.fileName, filepath.Ext(ctx.fileName))
				output = nameOnly + ".pdf"
			}

			options := annotations.PdfGeneratorOptions{
				AddPageNumbers: pageNumbers,
				MaxDrawings:    max,
			}
			gen := annotations.CreatePdfGenerator(ctx.fileName, output, options)
			if err := gen.Generate(); err != nil {
				c.Err(fmt.Errorf("failed to generate pdf: %v", err))
				return
			}

			c.Printf("exported %s\n", output)
		},
	}
}
