package llm

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingCredential    = errors.New("missing credential")
	ErrStreamFailed         = errors.New("stream failed")
	ErrNotReady             = errors.New("usage not ready")
	ErrUnknownModelPrice    = errors.New("no price for model")
	ErrDuplicateModel       = errors.New("model already invoked in this exchange")
	ErrInvalidRequest       = errors.New("invalid request")
)

// Stage 出错的阶段
type Stage string

const (
	StageBuild  Stage = "build"
	StageStream Stage = "stream"
	StageUsage  Stage = "usage"
	StageCost   Stage = "cost"
)

// Error carries the failing model and stage so the caller can render a useful message.
// Partial is only set for ErrStreamFailed.
type Error struct {
	Kind    error
	Stage   Stage
	Model   string
	Partial []string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("llm %s", e.Stage)
	if e.Model != "" {
		msg += fmt.Sprintf(" [%s]", e.Model)
	}
	msg += ": " + e.Kind.Error()
	if len(e.Partial) > 0 {
		msg += fmt.Sprintf(" (%d fragments received)", len(e.Partial))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func MissingCredential(model string) error {
	return &Error{Kind: ErrMissingCredential, Stage: StageStream, Model: model}
}
