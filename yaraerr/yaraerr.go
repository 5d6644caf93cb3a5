// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yaraerr defines the tagged error type the core library surfaces
// across its API boundary: internal code may use panics as control flow
// (e.g. the recursive-descent parser), but every exported entry point
// recovers and converts to an *Error before returning, per spec §7.
package yaraerr

import "fmt"

// Kind tags the category of failure an *Error reports.
type Kind byte

const (
	_ Kind = iota
	LexError
	SyntaxError
	SemanticError
	IncludeError
	IntegerOverflow
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case IncludeError:
		return "include error"
	case IntegerOverflow:
		return "integer overflow"
	default:
		return "error"
	}
}

// Location is a single source position: file, line, column (1-based).
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Error is the error type returned across the library's exported API.
// The AST is never partially exposed alongside a non-nil *Error.
type Error struct {
	Kind     Kind
	Location Location
	Message  string

	// Wrapped is the lower-level cause, if any (e.g. an os.PathError
	// underlying an IncludeError).
	Wrapped error
}

func (e *Error) Error() string {
	if e.Location.File == "" && e.Location.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Location, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New constructs an *Error of the given kind at loc.
func New(kind Kind, loc Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Location: loc, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind at loc, wrapping cause.
func Wrap(kind Kind, loc Location, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Location: loc, Message: fmt.Sprintf(format, args...), Wrapped: cause}
}
