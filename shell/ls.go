package shell

import (
	"errors"

	"github.com/abiosoft/ishell"

	"github.com/xyx050/sketchbin/encoding/qd"
)

func displayDrawing(c *ishell.Context, index int, d *qd.Drawing) {
	recognized := " "
	if d.Recognized {
		recognized = "r"
	}
	c.Printf("%6d\t[%s]\t%s\tkey_id=%d\tstrokes=%d\n", index, recognized, d.CountryCode, d.KeyID, d.NumStrokes())
}

func lsCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "ls",
		Help: "list records in the open file",
		Func: func(c *ishell.Context) {
			if ctx.fileName == "" {
				c.Err(errors.New("no file open, use: open <file.bin>"))
				return
			}

			for i, d := range ctx.drawings {
				displayDrawing(c, i, d)
			}
		},
	}
}
