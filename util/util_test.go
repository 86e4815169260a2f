package util

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassFromPath(t *testing.T) {
	assert.Equal(t, "fish", ClassFromPath("/data/fish.bin"))
	assert.Equal(t, "sea turtle", ClassFromPath("data/sea turtle.bin"))
	assert.Equal(t, "star", ClassFromPath("star.bin"))
	assert.Equal(t, "noext", ClassFromPath("/data/noext"))
}

func TestListBinFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	for _, name := range []string{"a.bin", "b.BIN", "nested/c.bin", "ignore.txt"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	files, err := ListBinFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)
	for _, f := range files {
		assert.NotContains(t, f, "ignore")
	}
}
