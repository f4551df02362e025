package llm

import (
	"strings"
	"sync"
)

// Source is the provider side of a Stream: raw fragments plus the usage the
// server has reported so far.
type Source interface {
	Next() bool
	Fragment() string
	Usage() Usage
	Err() error
	Close() error
}

// Stream is a lazy, single-pass sequence of text fragments for one model.
// Next blocks until the server emits the next fragment or the call ends.
// The underlying connection is released when Next returns false or Close is called.
type Stream struct {
	model string
	src   Source

	cur       string
	fragments []string

	mu       sync.Mutex
	finished bool
	complete bool
	usage    Usage
	err      error
}

func NewStream(model string, src Source) *Stream {
	return &Stream{model: model, src: src}
}

func (s *Stream) Model() string {
	return s.model
}

func (s *Stream) Next() bool {
	if s.isFinished() {
		return false
	}
	if s.src.Next() {
		s.cur = s.src.Fragment()
		s.fragments = append(s.fragments, s.cur)
		return true
	}
	s.cur = ""
	s.finish(s.src.Err())
	return false
}

// Fragment returns the fragment produced by the last successful Next.
func (s *Stream) Fragment() string {
	return s.cur
}

// Text is the concatenation of all fragments delivered so far.
func (s *Stream) Text() string {
	return strings.Join(s.fragments, "")
}

func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Usage is non-blocking: it returns ErrNotReady until the stream has been
// consumed to its end without error. An aborted or failed stream never becomes ready.
func (s *Stream) Usage() (Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.complete {
		return Usage{}, &Error{Kind: ErrNotReady, Stage: StageUsage, Model: s.model}
	}
	return s.usage, nil
}

// Close aborts the call if it is still running. Safe to call more than once.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return nil
	}
	s.finished = true
	s.mu.Unlock()
	return s.src.Close()
}

func (s *Stream) isFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *Stream) finish(err error) {
	s.mu.Lock()
	s.finished = true
	if err != nil {
		s.err = &Error{
			Kind:    ErrStreamFailed,
			Stage:   StageStream,
			Model:   s.model,
			Partial: append([]string(nil), s.fragments...),
			Err:     err,
		}
	} else {
		s.complete = true
		s.usage = s.src.Usage()
	}
	s.mu.Unlock()
	_ = s.src.Close()
}

// Collect drains the stream and returns the whole answer.
func Collect(s *Stream) (Answer, error) {
	defer s.Close()
	for s.Next() {
	}
	if err := s.Err(); err != nil {
		return Answer{}, err
	}
	usage, err := s.Usage()
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		Model:   s.model,
		Content: s.Text(),
		Usage:   usage,
	}, nil
}
