// Package shell implements the interactive UI for browsing and
// rendering packed sketch files.
package shell

import (
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/xyx050/sketchbin/encoding/qd"
	"github.com/xyx050/sketchbin/version"
)

type ShellCtxt struct {
	fileName string
	drawings []*qd.Drawing
}

func (ctx *ShellCtxt) prompt() string {
	if ctx.fileName == "" {
		return "[no file]> "
	}
	return fmt.Sprintf("[%s]> ", ctx.fileName)
}

// drawing resolves a record index argument against the open file.
func (ctx *ShellCtxt) drawing(index int) (*qd.Drawing, error) {
	if ctx.fileName == "" {
		return nil, errors.New("no file open, use: open <file.bin>")
	}
	if index < 0 || index >= len(ctx.drawings) {
		return nil, fmt.Errorf("record %d out of range, file has %d records", index, len(ctx.drawings))
	}
	return ctx.drawings[index], nil
}

func RunShell() error {
	shell := ishell.New()
	ctx := &ShellCtxt{}

	shell.Println(fmt.Sprintf("sketchbin version: %s", version.Version))
	shell.SetPrompt(ctx.prompt())

	shell.AddCmd(openCmd(ctx, shell))
	shell.AddCmd(lsCmd(ctx))
	shell.AddCmd(infoCmd(ctx))
	shell.AddCmd(renderCmd(ctx))
	shell.AddCmd(pdfCmd(ctx))
	shell.AddCmd(statsCmd(ctx))

	shell.Run()

	return nil
}
