// Package dataset converts directories of packed sketch files into
// per-class PNG datasets, fanning the work out across static shards.
package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/xyx050/sketchbin/config"
	"github.com/xyx050/sketchbin/encoding/qd"
	"github.com/xyx050/sketchbin/log"
	"github.com/xyx050/sketchbin/util"
	"github.com/xyx050/sketchbin/visualize"
)

// FileResult is the outcome of converting one input file.
type FileResult struct {
	File     string
	Class    string
	Rendered int
	Err      error
}

// Result summarizes a whole batch run.
type Result struct {
	Files    []FileResult
	Rendered int
	Failed   int
}

type Builder struct {
	cfg config.Config
}

func NewBuilder(cfg config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Run converts every allowed .bin file under the configured input
// directory. Files are split into contiguous shards, one goroutine
// per shard; shards share no mutable state and a failing file is
// recorded in its shard's results without affecting the others.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	files, err := util.ListBinFiles(b.cfg.InputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "can't list input dir %s", b.cfg.InputDir)
	}

	var selected []string
	for _, f := range files {
		if b.cfg.Allows(util.ClassFromPath(f)) {
			selected = append(selected, f)
		}
	}

	if err := util.EnsureDir(b.cfg.OutputDir); err != nil {
		return nil, errors.Wrapf(err, "can't create output dir %s", b.cfg.OutputDir)
	}

	shards := shard(selected, b.cfg.Workers)
	results := make([][]FileResult, len(shards))

	sem := semaphore.NewWeighted(int64(b.cfg.Workers))
	for i, s := range shards {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(i int, files []string) {
			defer sem.Release(1)
			results[i] = b.convertShard(files)
		}(i, s)
	}

	// wait for all shards to finish
	if err := sem.Acquire(ctx, int64(b.cfg.Workers)); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, shardResults := range results {
		for _, fr := range shardResults {
			result.Files = append(result.Files, fr)
			result.Rendered += fr.Rendered
			if fr.Err != nil {
				result.Failed++
			}
		}
	}
	return result, nil
}

func (b *Builder) convertShard(files []string) []FileResult {
	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		class := util.ClassFromPath(f)
		rendered, err := b.ConvertFile(f)
		if err != nil {
			log.Warning.Printf("%s: %v", f, err)
		} else {
			log.Trace.Printf("%s: rendered %d drawings", f, rendered)
		}
		results = append(results, FileResult{File: f, Class: class, Rendered: rendered, Err: err})
	}
	return results
}

// ConvertFile decodes one .bin file and writes a PNG per drawing to
// <output>/<class>/<index>.png, stopping at the per-class cap. It
// returns the number of drawings rendered; on error that count covers
// the drawings written before the failure.
func (b *Builder) ConvertFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "can't open input file")
	}
	defer file.Close()

	class := util.ClassFromPath(path)
	classDir := filepath.Join(b.cfg.OutputDir, class)
	if err := util.EnsureDir(classDir); err != nil {
		return 0, errors.Wrap(err, "can't create class dir")
	}

	opts := visualize.Options{
		StrokeWidth: b.cfg.StrokeWidth,
		OutputSize:  b.cfg.OutputSize,
	}

	decoder := qd.NewDecoder(bufio.NewReader(file))

	rendered := 0
	for b.cfg.MaxPerClass == 0 || rendered < b.cfg.MaxPerClass {
		drawing, err := decoder.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rendered, errors.Wrap(err, "decode failed")
		}

		out := filepath.Join(classDir, fmt.Sprintf("%d.png", rendered))
		if err := visualize.SaveDrawing(drawing, out, opts); err != nil {
			if errors.Is(err, qd.ErrLengthMismatch) {
				// frame boundaries can't be trusted past a malformed
				// record, abort this stream
				return rendered, err
			}
			log.Warning.Printf("%s: drawing %d: %v", path, rendered, err)
			continue
		}
		rendered++
	}

	return rendered, nil
}

// shard splits files into up to n contiguous, near-equal partitions.
func shard(files []string, n int) [][]string {
	if n < 1 {
		n = 1
	}
	if n > len(files) {
		n = len(files)
	}
	shards := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		lo := i * len(files) / n
		hi := (i + 1) * len(files) / n
		shards = append(shards, files[lo:hi])
	}
	return shards
}
