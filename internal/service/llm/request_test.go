package llm

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaTypeFromFilename(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		want     MediaType
		wantErr  error
	}{
		{name: "jpg", filename: "photo.jpg", want: MediaTypeJPEG},
		{name: "jpeg", filename: "photo.jpeg", want: MediaTypeJPEG},
		{name: "upper case", filename: "PHOTO.JPG", want: MediaTypeJPEG},
		{name: "png", filename: "photo.png", want: MediaTypePNG},
		{name: "gif", filename: "anim.gif", want: MediaTypeGIF},
		{name: "bmp", filename: "diagram.bmp", wantErr: ErrUnsupportedMediaType},
		{name: "webp", filename: "photo.webp", wantErr: ErrUnsupportedMediaType},
		{name: "no extension", filename: "photo", wantErr: ErrUnsupportedMediaType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mt, err := MediaTypeFromFilename(tc.filename)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, mt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, mt)
		})
	}
}

func TestNewImageRequestFromFile(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

	req, err := NewImageRequestFromFile("photo.png", data, "Describe the image.")
	require.NoError(t, err)
	assert.False(t, req.IsText())

	blocks := req.Blocks()
	require.Len(t, blocks, 2)

	img, ok := blocks[0].(ImageBlock)
	require.True(t, ok, "first block must be the image")
	assert.Equal(t, MediaTypePNG, img.MediaType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), img.Data)

	text, ok := blocks[1].(TextBlock)
	require.True(t, ok, "second block must be the prompt")
	assert.Equal(t, "Describe the image.", text.Text)

	assert.Equal(t, "Image: Describe the image.", req.UserLabel())
}

func TestNewImageRequestFromFile_Unsupported(t *testing.T) {
	req, err := NewImageRequestFromFile("diagram.bmp", []byte("BM"), "Describe the image.")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	assert.Nil(t, req.Blocks())

	var llmErr *Error
	require.True(t, errors.As(err, &llmErr))
	assert.Equal(t, StageBuild, llmErr.Stage)
}

func TestNewImageRequest_RejectsUnknownMediaType(t *testing.T) {
	_, err := NewImageRequest([]byte("x"), MediaType("image/bmp"), "hi")
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestNewTextRequest(t *testing.T) {
	req := NewTextRequest("What is the second highest mountain in Japan?")
	assert.True(t, req.IsText())
	assert.Equal(t, "What is the second highest mountain in Japan?", req.Text())
	assert.Nil(t, req.Blocks())
	assert.Equal(t, req.Text(), req.UserLabel())
}

func TestRequest_BlocksIsCopy(t *testing.T) {
	req, err := NewImageRequest([]byte("gif"), MediaTypeGIF, "what")
	require.NoError(t, err)

	blocks := req.Blocks()
	blocks[0], blocks[1] = blocks[1], blocks[0]

	_, ok := req.Blocks()[0].(ImageBlock)
	assert.True(t, ok)
}
