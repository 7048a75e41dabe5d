// Package decl records where table-driven test cases are declared
// so that failures point at the case rather than at the loop.
package decl

import (
	"path/filepath"
	"runtime"
	"strconv"
)

// Declaration is a test case together with the file:line of
// the New call that declared it.
type Declaration[T any] struct {
	Decl string
	Data T
}

func New[T any](data T) Declaration[T] {
	return Declaration[T]{Decl: caller(2), Data: data}
}

func (d Declaration[T]) String() string { return d.Decl }

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}
