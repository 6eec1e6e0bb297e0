package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDirIfNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raksha", "db")

	exists, err := FileExist(dir)
	assert.Nil(t, err)
	assert.False(t, exists, "dir should not exist yet")

	assert.Nil(t, CreateDirIfNotExist(dir))
	assert.Nil(t, CreateDirIfNotExist(dir), "Should be a no-op when dir exists")

	info, err := os.Stat(dir)
	assert.Nil(t, err)
	assert.True(t, info.IsDir())
}
