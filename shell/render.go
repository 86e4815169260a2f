package shell

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/xyx050/sketchbin/visualize"
)

func renderCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "render",
		Help: "render a record to PNG, usage: render [options] <index>",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("render", flag.ContinueOnError)
			var output string
			var width float64
			var size int
			flagSet.StringVarP(&output, "output", "o", "", "output file name")
			flagSet.Float64VarP(&width, "width", "w", 0, "stroke width in pixels")
			flagSet.IntVarP(&size, "size", "s", 0, "resize output to size x size pixels")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			argRest := flagSet.Args()

			if len(argRest) != 1 {
				c.Err(errors.New("missing record index"))
				return
			}

			index, err := strconv.Atoi(argRest[0])
			if err != nil {
				c.Err(errors.New("record index must be a number"))
				return
			}

			d, err := ctx.drawing(index)
			if err != nil {
				c.Err(err)
				return
			}

			if output == "" {
				output = fmt.Sprintf("%d.png", index)
			}

			opts := visualize.Options{StrokeWidth: width, OutputSize: size}
			if err := visualize.SaveDrawing(d, output, opts); err != nil {
				c.Err(fmt.Errorf("failed to render record %d: %v", index, err))
				return
			}

			c.Printf("rendered record %d to %s\n", index, output)
		},
	}
}
