package llm

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type MediaType string

const (
	MediaTypeJPEG MediaType = "image/jpeg"
	MediaTypePNG  MediaType = "image/png"
	MediaTypeGIF  MediaType = "image/gif"
)

// ContentBlock is either an ImageBlock or a TextBlock.
type ContentBlock interface {
	contentBlock()
}

type ImageBlock struct {
	MediaType MediaType
	// Data base64 编码后的图片
	Data string
}

type TextBlock struct {
	Text string
}

func (ImageBlock) contentBlock() {}
func (TextBlock) contentBlock()  {}

// Request 只能通过 NewTextRequest / NewImageRequest 构造
type Request struct {
	text   string
	blocks []ContentBlock
}

func (r Request) IsText() bool {
	return r.blocks == nil
}

func (r Request) Text() string {
	return r.text
}

// Blocks returns a copy of the content blocks; nil in text mode.
func (r Request) Blocks() []ContentBlock {
	if r.blocks == nil {
		return nil
	}
	res := make([]ContentBlock, len(r.blocks))
	copy(res, r.blocks)
	return res
}

// UserLabel 聊天记录中用户一侧的展示内容
func (r Request) UserLabel() string {
	if r.IsText() {
		return r.text
	}
	var prompts []string
	for _, b := range r.blocks {
		if t, ok := b.(TextBlock); ok {
			prompts = append(prompts, t.Text)
		}
	}
	return "Image: " + strings.Join(prompts, " ")
}

type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

type Answer struct {
	Model   string
	Content string
	Usage   Usage
}

// Price USD per 1K tokens
type Price struct {
	InputPer1K  decimal.Decimal
	OutputPer1K decimal.Decimal
}

type PriceTable map[string]Price

type CostEntry struct {
	Model     string
	Usage     Usage
	InputUSD  decimal.Decimal
	OutputUSD decimal.Decimal
	TotalUSD  decimal.Decimal
}

// Streamer opens one streaming completion per call. Implementations must be
// safe for concurrent use; every call returns an independent Stream.
type Streamer interface {
	Stream(ctx context.Context, req Request, model string) (*Stream, error)
}
