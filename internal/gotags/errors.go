package gotags

import "errors"

var (
	// ErrNotFound means no further struct header exists in the searched range.
	// It ends a selection and is never shown to the user.
	ErrNotFound = errors.New("struct unfound")
	// ErrUnterminatedLiteral means a comment, string or raw string inside a
	// struct body is never closed.
	ErrUnterminatedLiteral = errors.New("unterminated literal")
	// ErrMalformedStruct means the buffer ended before the struct's closing brace.
	ErrMalformedStruct = errors.New("malformed struct")
	// ErrUnsupportedDocument means the document is not Go source.
	ErrUnsupportedDocument = errors.New("unsupported document")
)
