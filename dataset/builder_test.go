package dataset

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyx050/sketchbin/config"
)

// frame appends one packed record with a single two-point stroke.
func frame(t *testing.T, buf *bytes.Buffer, keyID uint64) {
	t.Helper()

	require.NoError(t, binary.Write(buf, binary.LittleEndian, keyID))
	buf.WriteString("US")
	require.NoError(t, binary.Write(buf, binary.LittleEndian, int8(1)))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, uint32(0)))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, uint16(1)))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, uint16(2)))
	buf.Write([]uint8{10, 200})
	buf.Write([]uint8{10, 100})
}

func writeBinFile(t *testing.T, dir, class string, frames int, trailing []byte) string {
	t.Helper()

	buf := new(bytes.Buffer)
	for i := 0; i < frames; i++ {
		frame(t, buf, uint64(i+1))
	}
	buf.Write(trailing)

	path := filepath.Join(dir, class+".bin")
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.InputDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	cfg.Workers = 2
	return cfg
}

func TestConvertFile(t *testing.T) {
	cfg := testConfig(t)
	path := writeBinFile(t, cfg.InputDir, "fish", 3, nil)

	rendered, err := NewBuilder(cfg).ConvertFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, rendered)

	for i := 0; i < 3; i++ {
		out := filepath.Join(cfg.OutputDir, "fish", fmt.Sprintf("%d.png", i))
		_, err := os.Stat(out)
		assert.NoError(t, err, "missing output png %d", i)
	}
}

func TestConvertFileCap(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxPerClass = 2
	path := writeBinFile(t, cfg.InputDir, "star", 5, nil)

	rendered, err := NewBuilder(cfg).ConvertFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rendered)

	files, err := ioutil.ReadDir(filepath.Join(cfg.OutputDir, "star"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestConvertFileTruncatedStream(t *testing.T) {
	cfg := testConfig(t)
	// two full frames then a partial header: lenient decoding keeps
	// the records before the cut
	path := writeBinFile(t, cfg.InputDir, "car", 2, []byte{0x01, 0x02, 0x03})

	rendered, err := NewBuilder(cfg).ConvertFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rendered)
}

func TestRunConvertsAllowedClasses(t *testing.T) {
	cfg := testConfig(t)
	cfg.Classes = []string{"car", "fish"}
	writeBinFile(t, cfg.InputDir, "car", 2, nil)
	writeBinFile(t, cfg.InputDir, "fish", 1, nil)
	writeBinFile(t, cfg.InputDir, "pizza", 4, nil)

	result, err := NewBuilder(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Files, 2)
	assert.Equal(t, 3, result.Rendered)
	assert.Equal(t, 0, result.Failed)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "pizza"))
	assert.True(t, os.IsNotExist(err), "skipped class must not be rendered")
}

func TestRunIsolatesFailingFiles(t *testing.T) {
	cfg := testConfig(t)
	writeBinFile(t, cfg.InputDir, "ok", 2, nil)

	// a broken symlink the builder cannot open
	bad := filepath.Join(cfg.InputDir, "bad.bin")
	require.NoError(t, os.Symlink(filepath.Join(cfg.InputDir, "missing"), bad))

	result, err := NewBuilder(cfg).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Rendered)
	assert.Equal(t, 1, result.Failed)

	var okResult, badResult *FileResult
	for i := range result.Files {
		switch result.Files[i].Class {
		case "ok":
			okResult = &result.Files[i]
		case "bad":
			badResult = &result.Files[i]
		}
	}
	require.NotNil(t, okResult)
	require.NotNil(t, badResult)
	assert.NoError(t, okResult.Err)
	assert.Error(t, badResult.Err)
	assert.Equal(t, 2, okResult.Rendered)
}

func TestShard(t *testing.T) {
	files := []string{"a", "b", "c", "d", "e"}

	shards := shard(files, 2)
	require.Len(t, shards, 2)

	var flat []string
	for _, s := range shards {
		flat = append(flat, s...)
	}
	assert.Equal(t, files, flat, "sharding must cover every file exactly once, in order")

	// more workers than files collapses to one file per shard
	shards = shard(files, 10)
	require.Len(t, shards, 5)
	for _, s := range shards {
		assert.Len(t, s, 1)
	}

	assert.Len(t, shard(nil, 4), 0)
}
