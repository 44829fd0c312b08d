package apperrors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. The transport layer derives the
// status code from the kind alone.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindStore      Kind = "store"
)

// Metadata describes how a kind is surfaced to callers.
type Metadata struct {
	HTTPStatus    int
	PublicMessage string
	// ExposeMessage allows the error's own message in the response body.
	ExposeMessage bool
}

var metadataByKind = map[Kind]Metadata{
	KindValidation: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "validation failed",
		ExposeMessage: true,
	},
	KindNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "flower not found",
	},
	KindStore: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "Internal server error",
	},
}

// MetadataFor returns the metadata for kind, falling back to KindStore.
func MetadataFor(kind Kind) Metadata {
	if meta, ok := metadataByKind[kind]; ok {
		return meta
	}
	return metadataByKind[KindStore]
}

type Error struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	if err == nil {
		return New(kind, message)
	}
	return &Error{kind: kind, message: message, cause: err}
}

// Validation reports bad input shape or values.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// NotFound reports that no flower exists at id.
func NotFound(id string) *Error {
	return New(KindNotFound, fmt.Sprintf("flower with ID %s not found", id))
}

// Store wraps an underlying persistence failure.
func Store(err error, message string) *Error {
	return Wrap(KindStore, err, message)
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindStore
	}
	return e.kind
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// PublicMessage is the text safe to return to a caller.
func (e *Error) PublicMessage() string {
	meta := MetadataFor(e.Kind())
	if meta.ExposeMessage && e.Message() != "" {
		return e.Message()
	}
	return meta.PublicMessage
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts an *Error from the chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// KindOf returns the kind carried by err. Untyped errors are store failures.
func KindOf(err error) Kind {
	if typed := As(err); typed != nil {
		return typed.Kind()
	}
	return KindStore
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}
