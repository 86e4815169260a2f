package shell

import (
	"errors"
	"sort"

	"github.com/abiosoft/ishell"
)

func statsCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "stats",
		Help: "aggregate statistics for the open file",
		Func: func(c *ishell.Context) {
			if ctx.fileName == "" {
				c.Err(errors.New("no file open, use: open <file.bin>"))
				return
			}

			recognized := 0
			strokes := 0
			countries := make(map[string]int)
			for _, d := range ctx.drawings {
				if d.Recognized {
					recognized++
				}
				strokes += d.NumStrokes()
				countries[d.CountryCode]++
			}

			c.Printf("records:    %d\n", len(ctx.drawings))
			c.Printf("recognized: %d\n", recognized)
			c.Printf("strokes:    %d\n", strokes)

			names := make([]string, 0, len(countries))
			for name := range countries {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				if countries[names[i]] != countries[names[j]] {
					return countries[names[i]] > countries[names[j]]
				}
				return names[i] < names[j]
			})

			c.Println("countries:")
			for _, name := range names {
				c.Printf("  %s\t%d\n", name, countries[name])
			}
		},
	}
}
