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

// Package token models the token stream: the ordered, splice-friendly
// sequence of lexical tokens that is the single source of truth for a
// [Stream]'s textual output. Every AST node references this stream through
// a half-open pair of stable [Iter] values; edits to the AST stay consistent
// with the stream by going through the Stream's splice/erase operations
// rather than through raw slice surgery, which is the reason this package
// backs a Stream with a doubly linked list instead of an arena: a token's
// backing cell has a stable address for its whole lifetime, including
// across a MoveAppend into a different Stream, so an Iter handed out to a
// distant AST node is never invalidated by an unrelated insert, erase, or
// move elsewhere.
package token

import (
	"container/list"

	"github.com/yaramod-go/yaramod/literal"
)

// Token is a single lexical element.
type Token struct {
	Kind Kind

	// Value is the literal this token carries, if Kind is a literal kind.
	Value literal.Literal

	// Text is the raw source text of this token (used for identifiers,
	// punctuation, keywords, and whitespace runs; literal kinds additionally
	// populate Value).
	Text string

	// SubStream is populated on Include tokens: it holds the tokens of the
	// file that was included at this point, so that Stream.Text can splice
	// them in when rendering with_includes.
	SubStream *Stream

	loc Location
}

// Location is a source position: (file, line, column), 1-based.
type Location struct {
	File   string
	Line   int
	Column int
}

// NewToken constructs a Token of the given kind carrying no value.
func NewToken(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// WithValue returns a copy of t carrying the given literal value.
func (t Token) WithValue(v literal.Literal) Token {
	t.Value = v
	return t
}

// WithLocation returns a copy of t at the given source location.
func (t Token) WithLocation(loc Location) Token {
	t.loc = loc
	return t
}

// Location returns t's source location.
func (t Token) Location() Location { return t.loc }

// Stream is an ordered sequence of [Token], plus a "formatted" flag that
// becomes true after auto-formatting runs, making that operation idempotent.
//
// A zero Stream is empty and ready to use. A Stream is the sole owner of its
// tokens; AST nodes and other structural objects (Rule, String, Meta) hold
// non-owning [Iter] pairs into it.
type Stream struct {
	list      list.List
	formatted bool

	// ownerGoroutine is populated lazily under the yaramod_debug build tag;
	// see checkOwner in owner_debug.go.
	ownerGoroutine int64
}

// cell is the list.List element payload backing an Iter. Iter holds a
// pointer to the cell itself, not to the *list.Element currently wrapping
// it, so that MoveAppend can reparent a cell into a different Stream's list
// (by giving it a fresh *list.Element there and updating cell.elem) without
// changing the cell's address: every outstanding Iter into it keeps working,
// including Next/Prev navigation, which is exactly the "iterators into the
// donor remain valid and now denote tokens in this stream" guarantee spec
// §4.1 requires of move_append. A plain *list.Element in Iter cannot provide
// this, because container/list has no operation that moves an Element
// between two Lists while preserving its identity; InsertBefore always
// mints a new Element.
type cell struct {
	tok  Token
	elem *list.Element
}

// Iter is a stable handle to one token in a [Stream]. The zero Iter denotes
// no token; use [Stream.End] to obtain the canonical past-the-end handle.
//
// An Iter remains valid across insertions and erasures elsewhere in the
// stream, and across a MoveAppend transferring its token into a different
// Stream; it is invalidated only by erasing the token it denotes.
type Iter struct {
	c *cell
}

// Valid reports whether it denotes an actual token (as opposed to the
// past-the-end sentinel or the zero Iter).
func (it Iter) Valid() bool { return it.c != nil }

// Token returns the token it denotes. Panics if !it.Valid().
func (it Iter) Token() *Token { return &it.c.tok }

// Next returns an Iter to the following token, or the past-the-end Iter.
func (it Iter) Next() Iter {
	if it.c == nil {
		return Iter{}
	}
	return elemIter(it.c.elem.Next())
}

// Prev returns an Iter to the preceding token, or the zero Iter if it is the
// first token (or past-the-end of an empty stream).
func (it Iter) Prev() Iter {
	if it.c == nil {
		return Iter{}
	}
	return elemIter(it.c.elem.Prev())
}

// Equal reports whether it and other denote the same token.
func (it Iter) Equal(other Iter) bool { return it.c == other.c }

// elemIter wraps a *list.Element (or nil) as an Iter over its *cell payload.
func elemIter(e *list.Element) Iter {
	if e == nil {
		return Iter{}
	}
	return Iter{e.Value.(*cell)}
}

// End returns the past-the-end Iter: the conventional "one past the last
// token" handle used as the right endpoint of a half-open span.
func (s *Stream) End() Iter { return Iter{} }

// Begin returns an Iter to the first token, or End() if the stream is empty.
func (s *Stream) Begin() Iter { return elemIter(s.list.Front()) }

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int { return s.list.Len() }

// Formatted reports whether auto-formatting has already run on this stream.
func (s *Stream) Formatted() bool { return s.formatted }

// SetFormatted sets the formatted flag directly; exposed for the format
// package, which is the only caller expected to use it.
func (s *Stream) SetFormatted(v bool) { s.formatted = v }

func (s *Stream) init() {
	if s.list.Len() == 0 && s.list.Front() == nil {
		s.list.Init()
	}
}

// PushBack appends tok to the end of the stream and returns an Iter to it.
func (s *Stream) PushBack(tok Token) Iter {
	s.checkOwner()
	s.init()
	c := &cell{tok: tok}
	c.elem = s.list.PushBack(c)
	return Iter{c}
}

// EmplaceBack is a convenience wrapper around PushBack for tokens with no
// value payload.
func (s *Stream) EmplaceBack(kind Kind, text string) Iter {
	return s.PushBack(NewToken(kind, text))
}

// Emplace inserts tok immediately before the token denoted by before,
// returning an Iter to the newly inserted token. If before is the
// past-the-end Iter, this behaves like PushBack.
func (s *Stream) Emplace(before Iter, tok Token) Iter {
	s.checkOwner()
	s.init()
	c := &cell{tok: tok}
	if before.c == nil {
		c.elem = s.list.PushBack(c)
	} else {
		c.elem = s.list.InsertBefore(c, before.c.elem)
	}
	return Iter{c}
}

// Erase removes the token denoted by it and returns an Iter to the token
// that followed it (or End()).
func (s *Stream) Erase(it Iter) Iter {
	s.checkOwner()
	if it.c == nil {
		return it
	}
	next := it.c.elem.Next()
	s.list.Remove(it.c.elem)
	return elemIter(next)
}

// EraseRange removes every token in the half-open span [first, last) and
// returns last.
func (s *Stream) EraseRange(first, last Iter) Iter {
	for cur := first; !cur.Equal(last); {
		cur = s.Erase(cur)
	}
	return last
}

// Find scans forward from from (inclusive) up to but not including to,
// returning an Iter to the first token of the given kind, or to (which is
// End() if the caller did not bound the search).
func (s *Stream) Find(kind Kind, from, to Iter) Iter {
	for cur := from; !cur.Equal(to); cur = cur.Next() {
		if cur.Token().Kind == kind {
			return cur
		}
	}
	return to
}

// FindBackwards scans backwards from from (inclusive) down to but not
// including to (exclusive, i.e. the scan stops after visiting the token just
// past to), returning the first matching Iter or the zero Iter.
func (s *Stream) FindBackwards(kind Kind, from, to Iter) Iter {
	for cur := from; cur.Valid() && !cur.Equal(to); cur = cur.Prev() {
		if cur.Token().Kind == kind {
			return cur
		}
	}
	return Iter{}
}

// Predecessor returns the Iter preceding it, or false if it is the first
// token in the stream.
func (s *Stream) Predecessor(it Iter) (Iter, bool) {
	p := it.Prev()
	return p, p.Valid()
}

// MoveAppend transfers every token from donor into s, appending them before
// the token denoted by before (or at the end, if before is End()). donor is
// left empty. Iterators previously obtained from donor remain valid and now
// denote tokens owned by s: each donor cell is reparented into s's list by
// minting it a new *list.Element there and updating cell.elem, while the
// cell's address (what an outstanding Iter actually points to) never
// changes, so Next/Prev/Token all keep working on it after the move.
// container/list has no operation that moves an *list.Element between two
// Lists while preserving its identity (InsertBefore always mints a new
// Element), which is why Iter is a level of indirection away from
// *list.Element in the first place; see the cell doc comment.
func (s *Stream) MoveAppend(donor *Stream, before Iter) {
	s.checkOwner()
	s.init()
	donor.init()
	for e := donor.list.Front(); e != nil; {
		next := e.Next()
		c := e.Value.(*cell)
		donor.list.Remove(e)
		if before.c == nil {
			c.elem = s.list.PushBack(c)
		} else {
			c.elem = s.list.InsertBefore(c, before.c.elem)
		}
		e = next
	}
	donor.list = list.List{}
	donor.list.Init()
}

// Slice materializes the half-open span [first, last) as a slice of Iter,
// in order. Intended for tests and for algorithms that need random access
// within a bounded span (e.g. the formatter's comment-alignment pass).
func (s *Stream) Slice(first, last Iter) []Iter {
	var out []Iter
	for cur := first; !cur.Equal(last); cur = cur.Next() {
		out = append(out, cur)
	}
	return out
}
