package anthropic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/KNICEX/claude-console/internal/service/llm"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

const defaultMaxTokens = 1024

var _ llm.Streamer = (*Service)(nil)

type Service struct {
	apiKey     string
	baseURL    string
	maxTokens  int64
	httpClient *http.Client

	client anthropic.Client
}

type Option func(service *Service)

func WithBaseURL(url string) Option {
	return func(service *Service) {
		service.baseURL = url
	}
}

func WithMaxTokens(n int64) Option {
	return func(service *Service) {
		service.maxTokens = n
	}
}

func WithHTTPClient(cli *http.Client) Option {
	return func(service *Service) {
		service.httpClient = cli
	}
}

// NewService never fails on an empty apiKey; Stream reports the missing
// credential instead, without touching the network.
func NewService(apiKey string, opts ...Option) *Service {
	svc := &Service{
		apiKey:    apiKey,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(svc)
	}

	// 不做自动重试，由调用方决定是否重新发起
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if svc.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(svc.baseURL))
	}
	if svc.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(svc.httpClient))
	}
	svc.client = anthropic.NewClient(reqOpts...)
	return svc
}

func (s *Service) Stream(ctx context.Context, req llm.Request, model string) (*llm.Stream, error) {
	if s.apiKey == "" {
		return nil, llm.MissingCredential(model)
	}

	ctx, cancel := context.WithCancel(ctx)
	slog.Debug("anthropic stream start", "model", model)
	stream := s.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: s.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(toContentBlocks(req)...),
		},
	})
	return llm.NewStream(model, &source{stream: stream, cancel: cancel}), nil
}

func toContentBlocks(req llm.Request) []anthropic.ContentBlockParamUnion {
	if req.IsText() {
		return []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(req.Text())}
	}
	blocks := req.Blocks()
	res := make([]anthropic.ContentBlockParamUnion, 0, len(blocks))
	for _, b := range blocks {
		switch block := b.(type) {
		case llm.ImageBlock:
			res = append(res, anthropic.NewImageBlockBase64(string(block.MediaType), block.Data))
		case llm.TextBlock:
			res = append(res, anthropic.NewTextBlock(block.Text))
		}
	}
	return res
}

// source adapts the SDK event stream to llm.Source, keeping only text deltas.
type source struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
	cancel context.CancelFunc

	cur     string
	usage   llm.Usage
	stopped bool
}

func (s *source) Next() bool {
	for s.stream.Next() {
		switch event := s.stream.Current().AsAny().(type) {
		case anthropic.MessageStartEvent:
			s.usage.InputTokens = event.Message.Usage.InputTokens
			s.usage.OutputTokens = event.Message.Usage.OutputTokens
		case anthropic.MessageDeltaEvent:
			// message_delta 中的 output_tokens 是累计值
			s.usage.OutputTokens = event.Usage.OutputTokens
		case anthropic.MessageStopEvent:
			s.stopped = true
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := event.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				s.cur = delta.Text
				return true
			}
		}
	}
	return false
}

func (s *source) Fragment() string {
	return s.cur
}

func (s *source) Usage() llm.Usage {
	return s.usage
}

// Err treats an EOF before message_stop as a dropped connection.
func (s *source) Err() error {
	if err := s.stream.Err(); err != nil {
		return err
	}
	if !s.stopped {
		return fmt.Errorf("stream ended before message_stop: %w", io.ErrUnexpectedEOF)
	}
	return nil
}

func (s *source) Close() error {
	s.cancel()
	return s.stream.Close()
}
