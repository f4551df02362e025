package llm

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

var extMediaTypes = map[string]MediaType{
	".jpg":  MediaTypeJPEG,
	".jpeg": MediaTypeJPEG,
	".png":  MediaTypePNG,
	".gif":  MediaTypeGIF,
}

var supportedMediaTypes = lo.Uniq(lo.Values(extMediaTypes))

func NewTextRequest(text string) Request {
	return Request{text: text}
}

// NewImageRequest builds a vision request. The image block always comes first.
func NewImageRequest(data []byte, mediaType MediaType, prompt string) (Request, error) {
	if !lo.Contains(supportedMediaTypes, mediaType) {
		return Request{}, &Error{
			Kind:  ErrUnsupportedMediaType,
			Stage: StageBuild,
			Err:   fmt.Errorf("media type %q", mediaType),
		}
	}
	return Request{
		blocks: []ContentBlock{
			ImageBlock{
				MediaType: mediaType,
				Data:      base64.StdEncoding.EncodeToString(data),
			},
			TextBlock{Text: prompt},
		},
	}, nil
}

func MediaTypeFromFilename(name string) (MediaType, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mt, ok := extMediaTypes[ext]
	if !ok {
		return "", &Error{
			Kind:  ErrUnsupportedMediaType,
			Stage: StageBuild,
			Err:   fmt.Errorf("file %q has extension %q", name, ext),
		}
	}
	return mt, nil
}

// NewImageRequestFromFile picks the media type from the upload's file name.
func NewImageRequestFromFile(filename string, data []byte, prompt string) (Request, error) {
	mt, err := MediaTypeFromFilename(filename)
	if err != nil {
		return Request{}, err
	}
	return NewImageRequest(data, mt, prompt)
}
