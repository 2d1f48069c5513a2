package iconload

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notifygate/internal/sanitize"
)

func TestFromImageRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	img.Set(0, 0, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})

	desc, err := FromImage(img)
	require.NoError(t, err)

	assert.Equal(t, int32(16), desc.Width)
	assert.Equal(t, int32(8), desc.Height)
	assert.True(t, desc.HasAlpha)
	assert.Equal(t, int32(4), desc.Channels)
	assert.Equal(t, int32(64), desc.RowStride)
	assert.Len(t, desc.Data, 8*64)

	// First pixel survives the flattening
	assert.Equal(t, byte(0x11), desc.Data[0])
	assert.Equal(t, byte(0x22), desc.Data[1])
	assert.Equal(t, byte(0x33), desc.Data[2])
	assert.Equal(t, byte(0xff), desc.Data[3])
}

func TestFromImageGrayIsOpaque(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))

	desc, err := FromImage(img)
	require.NoError(t, err)

	assert.False(t, desc.HasAlpha)
	assert.Equal(t, int32(3), desc.Channels)
	assert.Equal(t, int32(12), desc.RowStride)
}

func TestFromImageDownscalesOversized(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1024, 512))

	desc, err := FromImage(img)
	require.NoError(t, err)

	assert.Equal(t, int32(sanitize.MaxWidth), desc.Width)
	assert.LessOrEqual(t, desc.Height, int32(sanitize.MaxHeight))
}

func TestFromImageNonZeroOrigin(t *testing.T) {
	// Subimages keep their parent's coordinate space; the flattener must
	// read from Bounds().Min, not (0,0).
	parent := image.NewRGBA(image.Rect(0, 0, 20, 20))
	parent.Set(10, 10, color.RGBA{R: 0xaa, A: 0xff})
	sub := parent.SubImage(image.Rect(10, 10, 14, 14))

	desc, err := FromImage(sub)
	require.NoError(t, err)

	assert.Equal(t, int32(4), desc.Width)
	assert.Equal(t, int32(4), desc.Height)
	assert.Equal(t, byte(0xaa), desc.Data[0])
}

func TestFromImageOutputAlwaysValidates(t *testing.T) {
	images := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 1, 1)),
		image.NewNRGBA(image.Rect(0, 0, 255, 255)),
		image.NewGray(image.Rect(0, 0, 100, 3)),
		image.NewRGBA(image.Rect(0, 0, 4000, 17)),
	}
	for _, img := range images {
		desc, err := FromImage(img)
		require.NoError(t, err)

		again, err := sanitize.ValidateImage(desc.Width, desc.Height, desc.RowStride,
			desc.HasAlpha, desc.BitsPerSample, desc.Channels, desc.Data)
		require.NoError(t, err)
		assert.Equal(t, desc.Width, again.Width)
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile("/nonexistent/icon.png")
	assert.Error(t, err)
}
