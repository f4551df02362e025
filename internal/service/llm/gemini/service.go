package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/KNICEX/claude-console/internal/service/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
)

var _ llm.Streamer = (*Service)(nil)

type Service struct {
	client      *genai.Client
	temperature *float32
}

// NewService accepts a nil client; Stream then reports a missing credential.
func NewService(client *genai.Client, opts ...Option) *Service {
	svc := &Service{
		client: client,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type Option func(service *Service)

func WithTemperature(temp float32) Option {
	return func(service *Service) {
		service.temperature = &temp
	}
}

func (s *Service) Stream(ctx context.Context, req llm.Request, model string) (*llm.Stream, error) {
	if s.client == nil {
		return nil, llm.MissingCredential(model)
	}
	parts, err := toParts(req, model)
	if err != nil {
		return nil, err
	}

	m := s.client.GenerativeModel(model)
	if s.temperature != nil {
		m.SetTemperature(*s.temperature)
	}
	ctx, cancel := context.WithCancel(ctx)
	return llm.NewStream(model, &source{
		iter:   m.GenerateContentStream(ctx, parts...),
		cancel: cancel,
	}), nil
}

func toParts(req llm.Request, model string) ([]genai.Part, error) {
	if req.IsText() {
		return []genai.Part{genai.Text(req.Text())}, nil
	}
	return blocksToParts(req.Blocks(), model)
}

func blocksToParts(blocks []llm.ContentBlock, model string) ([]genai.Part, error) {
	var parts []genai.Part
	for _, b := range blocks {
		switch block := b.(type) {
		case llm.ImageBlock:
			data, err := base64.StdEncoding.DecodeString(block.Data)
			if err != nil {
				return nil, &llm.Error{
					Kind:  llm.ErrInvalidRequest,
					Stage: llm.StageBuild,
					Model: model,
					Err:   fmt.Errorf("decode image block: %w", err),
				}
			}
			parts = append(parts, genai.Blob{MIMEType: string(block.MediaType), Data: data})
		case llm.TextBlock:
			parts = append(parts, genai.Text(block.Text))
		}
	}
	return parts, nil
}

// responseIterator is satisfied by *genai.GenerateContentResponseIterator.
type responseIterator interface {
	Next() (*genai.GenerateContentResponse, error)
}

type source struct {
	iter   responseIterator
	cancel context.CancelFunc

	cur   string
	usage llm.Usage
	err   error
}

func (s *source) Next() bool {
	if s.err != nil {
		return false
	}
	for {
		resp, err := s.iter.Next()
		if errors.Is(err, iterator.Done) {
			return false
		}
		if err != nil {
			s.err = err
			return false
		}
		if resp.UsageMetadata != nil {
			s.usage = llm.Usage{
				InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
				OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			}
		}
		if text := parseResponse(resp); text != "" {
			s.cur = text
			return true
		}
	}
}

func (s *source) Fragment() string {
	return s.cur
}

func (s *source) Usage() llm.Usage {
	return s.usage
}

func (s *source) Err() error {
	return s.err
}

func (s *source) Close() error {
	s.cancel()
	return nil
}

func parseResponse(resp *genai.GenerateContentResponse) string {
	var resStr strings.Builder
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			resStr.WriteString(string(text))
		}
	}
	return resStr.String()
}
