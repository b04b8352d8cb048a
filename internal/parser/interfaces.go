package parser

import "io"

// Parser decodes an ordered sequence of records from a JSON response body.
type Parser[T any] interface {
	ParseJSON(body io.Reader) ([]T, error)
}

// SingleResultParser decodes exactly one record from a JSON response body.
type SingleResultParser[T any] interface {
	ParseJSON(body io.Reader) (T, error)
}
