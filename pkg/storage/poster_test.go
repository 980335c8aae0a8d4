package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Minimal valid 1x1 PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func newTestStorage(t *testing.T) (PosterStorage, string) {
	t.Helper()
	dir := t.TempDir()
	posters, err := NewDiskPosterStorage(dir, zap.NewNop())
	require.NoError(t, err)
	return posters, dir
}

func TestGenerateUniqueFilename(t *testing.T) {
	posters, _ := newTestStorage(t)

	first := posters.GenerateUniqueFilename("cover.png")
	second := posters.GenerateUniqueFilename("cover.png")

	assert.NotEqual(t, first, second)
	assert.Equal(t, ".png", filepath.Ext(first))

	// The stem is a fresh UUID, not derived from the client filename.
	_, err := uuid.Parse(strings.TrimSuffix(first, ".png"))
	assert.NoError(t, err)

	assert.Equal(t, "", filepath.Ext(posters.GenerateUniqueFilename("noext")))
}

func TestStoreWritesFile(t *testing.T) {
	posters, dir := newTestStorage(t)

	require.NoError(t, posters.Store(bytes.NewReader(pngBytes), "poster.png"))

	written, err := os.ReadFile(filepath.Join(dir, "poster.png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)
}

func TestIsImageContent(t *testing.T) {
	posters, _ := newTestStorage(t)

	content := bytes.NewReader(pngBytes)
	assert.True(t, posters.IsImageContent(content))

	// The reader is rewound after sniffing so Store still sees everything.
	rest := make([]byte, len(pngBytes))
	n, _ := content.Read(rest)
	assert.Equal(t, len(pngBytes), n)

	assert.False(t, posters.IsImageContent(bytes.NewReader([]byte("<html>not an image</html>"))))
	assert.False(t, posters.IsImageContent(bytes.NewReader(nil)))
}
