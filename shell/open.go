package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/xyx050/sketchbin/encoding/qd"
)

func openCmd(ctx *ShellCtxt, shell *ishell.Shell) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "open",
		Help: "decode a packed sketch file, usage: open [-n max] [--strict] <file.bin>",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("open", flag.ContinueOnError)
			var max int
			var strict bool
			flagSet.IntVarP(&max, "max", "n", 0, "decode at most n records (0 = all)")
			flagSet.BoolVar(&strict, "strict", false, "treat a truncated file as an error")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			argRest := flagSet.Args()

			if len(argRest) != 1 {
				c.Err(errors.New("missing source file"))
				return
			}
			srcName := argRest[0]

			file, err := os.Open(srcName)
			if err != nil {
				c.Err(fmt.Errorf("can't open %s: %v", srcName, err))
				return
			}
			defer file.Close()

			decoder := qd.NewDecoder(file)
			if strict {
				decoder.Strict()
			}

			var drawings []*qd.Drawing
			for max == 0 || len(drawings) < max {
				drawing, err := decoder.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					c.Err(fmt.Errorf("decode stopped after %d records: %v", len(drawings), err))
					break
				}
				drawings = append(drawings, drawing)
			}

			ctx.fileName = srcName
			ctx.drawings = drawings
			shell.SetPrompt(ctx.prompt())

			c.Printf("decoded %d records from %s\n", len(drawings), srcName)
		},
	}
}
