package storage

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestValidateAndBufferAcceptsPNGBackground(t *testing.T) {
	buf, mimeType, err := ValidateAndBuffer(bytes.NewReader(pngBytes(t)), CategoryBackgroundImage)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.NotZero(t, buf.Len())
}

func TestValidateFileSniffsRealType(t *testing.T) {
	// Plain text claiming to be an image is rejected by content sniffing.
	_, _, err := ValidateFile(strings.NewReader("just some text pretending"), CategoryBackgroundImage, 1024)
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestValidateFileRejectsEmpty(t *testing.T) {
	_, _, err := ValidateFile(strings.NewReader(""), CategoryBackgroundImage, 1024)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestValidateFileRejectsOversized(t *testing.T) {
	data := pngBytes(t)
	_, _, err := ValidateFile(bytes.NewReader(data), CategoryBackgroundImage, int64(len(data))-1)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateFileRejectsImageAsVideo(t *testing.T) {
	_, _, err := ValidateFile(bytes.NewReader(pngBytes(t)), CategoryBackgroundVideo, 1024*1024)
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestGetExtensionForMime(t *testing.T) {
	assert.Equal(t, ".jpg", GetExtensionForMime("image/jpeg"))
	assert.Equal(t, ".webm", GetExtensionForMime("video/webm"))
	assert.Equal(t, "", GetExtensionForMime("application/pdf"))
}
