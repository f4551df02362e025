package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type fakeSource struct {
	fragments []string
	usage     Usage
	err       error

	pos    int
	closed int
}

func (f *fakeSource) Next() bool {
	if f.pos < len(f.fragments) {
		f.pos++
		return true
	}
	return false
}

func (f *fakeSource) Fragment() string {
	return f.fragments[f.pos-1]
}

func (f *fakeSource) Usage() Usage {
	return f.usage
}

func (f *fakeSource) Err() error {
	if f.pos < len(f.fragments) {
		return nil
	}
	return f.err
}

func (f *fakeSource) Close() error {
	f.closed++
	return nil
}

type MockStreamer struct {
	mock.Mock
}

func (m *MockStreamer) Stream(ctx context.Context, req Request, model string) (*Stream, error) {
	args := m.Called(ctx, req, model)
	s, _ := args.Get(0).(*Stream)
	return s, args.Error(1)
}
