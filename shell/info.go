package shell

import (
	"errors"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"
)

func infoCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "info",
		Help: "show one record in detail, usage: info <index>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errors.New("missing record index"))
				return
			}

			index, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(errors.New("record index must be a number"))
				return
			}

			d, err := ctx.drawing(index)
			if err != nil {
				c.Err(err)
				return
			}

			strokes, err := d.Strokes()
			if err != nil {
				c.Err(err)
				return
			}

			points := 0
			for _, s := range strokes {
				points += len(s)
			}

			c.Printf("key_id:     %d\n", d.KeyID)
			c.Printf("country:    %s\n", d.CountryCode)
			c.Printf("recognized: %t\n", d.Recognized)
			c.Printf("timestamp:  %s\n", time.Unix(int64(d.Timestamp), 0).UTC().Format(time.RFC3339))
			c.Printf("strokes:    %d\n", len(strokes))
			c.Printf("points:     %d\n", points)
		},
	}
}
