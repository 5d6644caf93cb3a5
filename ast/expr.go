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

// Package ast defines the expression AST: a closed sum type of condition
// expression variants, each of which spans a half-open range of the owning
// token stream, plus the three-shaped visitor protocol (pure, observing,
// modifying) that operates over it.
//
// This package deliberately uses one concrete Go type per variant behind a
// common [Expr] interface, rather than a packed union, per the spec's own
// design note recommending "a closed sum type plus a trait that provides
// one method per variant" in place of open-ended virtual dispatch.
package ast

import "github.com/yaramod-go/yaramod/token"

// Type is the expression-type tag a non-leaf variant caches during parsing.
// It is informative only (used by builder-side coercions); it is not
// normative for semantics.
type Type byte

const (
	TypeUndefined Type = iota
	TypeBool
	TypeInt
	TypeString
	TypeRegexp
	TypeObject
	TypeFloat
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeRegexp:
		return "regexp"
	case TypeObject:
		return "object"
	case TypeFloat:
		return "float"
	default:
		return "undefined"
	}
}

// Span is a half-open range [First, Last) of token iterators delimiting the
// textual range an AST node occupies in its owning stream.
type Span struct {
	First, Last token.Iter
}

// Contains reports whether other is fully contained in s, per the span
// containment invariant (spec §8, property 1).
func (s Span) Contains(other Span) bool {
	return !before(other.First, s.First) && !before(s.Last, other.Last)
}

// before reports whether a occurs strictly before b in iteration order, by
// walking forward from a. Only used for invariant checking, where spans are
// small and within a single rule.
func before(a, b token.Iter) bool {
	if a.Equal(b) {
		return false
	}
	for cur := a; cur.Valid(); cur = cur.Next() {
		if cur.Equal(b) {
			return true
		}
	}
	return false
}

// Expr is implemented by every condition expression variant.
type Expr interface {
	// Accept dispatches v over this node, per the visitor protocol.
	Accept(v Visitor) Result

	// Span returns this node's token span.
	Span() Span

	// Type returns this node's cached expression-type tag.
	Type() Type

	// Text renders this node from its span in the owning stream.
	Text() string
}

// exprBase is embedded by every concrete variant to supply Span/Type/Text.
type exprBase struct {
	span   Span
	typ    Type
	stream *token.Stream
}

func (e *exprBase) Span() Span { return e.span }
func (e *exprBase) Type() Type { return e.typ }

func (e *exprBase) Text() string {
	if e.stream == nil {
		return ""
	}
	var b []byte
	for cur := e.span.First; !cur.Equal(e.span.Last); cur = cur.Next() {
		tok := cur.Token()
		if !tok.Value.IsEmpty() {
			b = append(b, tok.Value.Text()...)
		} else {
			b = append(b, tok.Text...)
		}
	}
	return string(b)
}

// newBase constructs the embeddable base for a variant with the given span,
// type tag, and owning stream.
func newBase(stream *token.Stream, span Span, typ Type) exprBase {
	return exprBase{span: span, typ: typ, stream: stream}
}

// streamPtr exposes the owning stream via method promotion (every concrete
// variant embeds exprBase, directly or through Unary/Binary), so the
// rewrite machinery in rewrite.go can tell whether a modifying visitor's
// replacement node is already part of the stream being edited or is foreign
// to it (e.g. built by a package builder) and needs moving in.
func (e *exprBase) streamPtr() *token.Stream { return e.stream }

type streamer interface{ streamPtr() *token.Stream }

// streamOf returns e's owning stream, or nil if e doesn't expose one.
func streamOf(e Expr) *token.Stream {
	if e == nil {
		return nil
	}
	if s, ok := e.(streamer); ok {
		return s.streamPtr()
	}
	return nil
}
