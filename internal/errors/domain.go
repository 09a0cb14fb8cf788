// Package errors defines the classified errors returned by the services.
// Every error crossing a service boundary is a *DomainError so the HTTP
// layer can map it to a status code without inspecting messages.
package errors

import (
	stderrors "errors"
	"sort"
	"strings"
)

// Kind classifies a DomainError.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidArgument is the caller's fault and is not retryable.
	KindInvalidArgument
	// KindStore is an underlying persistence failure; callers decide on retries.
	KindStore
	// KindPrecision flags a decimal value outside the representable range.
	KindPrecision
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindStore:
		return "store_error"
	case KindPrecision:
		return "precision_error"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	// Context holds safe diagnostic values only (masked ids, fingerprints).
	Context map[string]string
	Err     error
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(k + "=" + e.Context[k])
		}
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so wrapped copies
// still compare equal to their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e with err as its cause.
func (e *DomainError) Wrap(err error) *DomainError {
	c := e.clone()
	c.Err = err
	return c
}

// With returns a copy of e with an extra context value.
func (e *DomainError) With(key, value string) *DomainError {
	c := e.clone()
	c.Context[key] = value
	return c
}

func (e *DomainError) clone() *DomainError {
	ctx := make(map[string]string, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	return &DomainError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
		Err:     e.Err,
	}
}

func newError(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// InvalidArgument builds an error of kind KindInvalidArgument.
func InvalidArgument(code, message string) *DomainError {
	return newError(KindInvalidArgument, code, message)
}

// Store builds an error of kind KindStore.
func Store(code, message string) *DomainError {
	return newError(KindStore, code, message)
}

// Precision builds an error of kind KindPrecision.
func Precision(code, message string) *DomainError {
	return newError(KindPrecision, code, message)
}

// NotFound builds an error of kind KindNotFound.
func NotFound(code, message string) *DomainError {
	return newError(KindNotFound, code, message)
}

// As extracts the first DomainError in err's chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf classifies err. Unclassified errors report KindUnknown.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind
	}
	return KindUnknown
}
