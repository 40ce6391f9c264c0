package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")

	// ErrEmptyCorpus is returned when matching is attempted on no items.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrNoContent is returned when the corpus is empty across all languages.
	ErrNoContent = errors.New("no content available")

	ErrUnknownSource  = errors.New("unknown source")
	ErrUnknownProfile = errors.New("unknown profile")
	ErrModuleDisabled = errors.New("module disabled")
)

type ErrorKind int

const (
	KindNetworkError ErrorKind = iota + 1
	KindParseError
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkError:
		return "NetworkError"
	case KindParseError:
		return "ParseError"
	default:
		return "UnknownError"
	}
}

// FetchError is the only error type an adapter returns.
type FetchError struct {
	Kind     ErrorKind
	SourceID string
	Err      error
}

func NewNetworkError(sourceID string, err error) *FetchError {
	return &FetchError{Kind: KindNetworkError, SourceID: sourceID, Err: err}
}

func NewParseError(sourceID string, err error) *FetchError {
	return &FetchError{Kind: KindParseError, SourceID: sourceID, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: source %s", e.Kind, e.SourceID)
	}
	return fmt.Sprintf("%s: source %s: %v", e.Kind, e.SourceID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a FetchError against ErrNetwork or ErrParse.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetworkError
	case ErrParse:
		return e.Kind == KindParseError
	}
	return false
}

// ErrorKindOf returns the kind name recorded in FetchState.LastError. Errors
// that are not FetchErrors are treated as network failures.
func ErrorKindOf(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind.String()
	}
	return KindNetworkError.String()
}
