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

// Package format implements the auto-formatter: a pass over a token.Stream
// that inserts missing newline tokens at structurally significant boundaries
// and normalizes whitespace runs, guarded by the stream's Formatted flag so
// that running it twice is a no-op (spec §8, "format idempotence").
//
// The alignment of end-of-line comments into shared columns is handled by
// token.Stream.Text itself (see token/render.go); Print here is only
// responsible for newline placement and indentation, matching the
// spec's own separation of the two passes in §4.1.
package format

import (
	"strings"

	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/token"
)

// Options configures Print.
type Options struct {
	// IndentWidth is the number of spaces synthesized per nesting level.
	IndentWidth int
	// WithIncludes and AlignComments are forwarded to the final Text render;
	// see token.RenderOptions.
	WithIncludes  bool
	AlignComments bool
}

// DefaultOptions returns the conventional YARA formatting options: 4-space
// indent, comments aligned, includes left unexpanded.
func DefaultOptions() Options {
	return Options{IndentWidth: 4, AlignComments: true}
}

// sector classifies a token boundary's role for newline-insertion purposes.
type sector byte

const (
	sectorNone sector = iota
	sectorAfterBrace
	sectorBetweenMetaOrString
	sectorAfterSectionColon
	sectorAfterRuleClose
)

// Print runs the auto-formatter over f.Stream (a no-op if already
// formatted) and returns the rendered text per opts.
func Print(f *ast.YaraFile, opts Options) string {
	Auto(f.Stream, opts.IndentWidth)
	return f.Stream.Text(token.RenderOptions{
		WithIncludes:  opts.WithIncludes,
		AlignComments: opts.AlignComments,
	})
}

// Auto performs the newline/indent auto-format pass on s in place. It is
// idempotent: a second call on an already-formatted stream returns
// immediately.
func Auto(s *token.Stream, indentWidth int) {
	if s.Formatted() {
		return
	}
	normalizeWhitespace(s)
	insertMissingNewlines(s, indentWidth)
	s.SetFormatted(true)
}

// normalizeWhitespace collapses every run of consecutive Whitespace tokens
// into a single space token, per spec §4.1 ("runs are normalized to a
// single space during auto-format").
func normalizeWhitespace(s *token.Stream) {
	cur := s.Begin()
	for cur.Valid() {
		next := cur.Next()
		if cur.Token().Kind == token.Whitespace {
			// Collapse this run: keep this token as a single space, erase
			// any immediately following whitespace tokens.
			cur.Token().Text = " "
			for next.Valid() && next.Token().Kind == token.Whitespace {
				next = s.Erase(next)
			}
		}
		cur = next
	}
}

// insertMissingNewlines walks the stream and inserts a Newline token after
// every structurally significant boundary that lacks one already: after `{`,
// after `}`, and after a section-introducing `:`. Per spec §4.1 step 3, each
// line started this way (and any pre-existing line, reached via a Newline
// token already in the stream) is indented indentWidth*depth spaces, depth
// being the brace nesting in effect at that point.
func insertMissingNewlines(s *token.Stream, indentWidth int) {
	depth := 0
	cur := s.Begin()
	for cur.Valid() {
		tok := cur.Token()
		kind := tok.Kind
		next := cur.Next()

		needsNewlineAfter := false
		switch kind {
		case token.LBrace:
			depth++
			needsNewlineAfter = true
		case token.RBrace:
			depth--
			needsNewlineAfter = true
		case token.Colon:
			// Only section-introducing colons (meta:/strings:/condition:)
			// get a newline: they sit at brace depth 1 directly after their
			// keyword. Any other colon, such as the one in a `for ... :`
			// quantifier, is left alone.
			if prev, ok := s.Predecessor(cur); ok && depth == 1 {
				switch prev.Token().Kind {
				case token.KwMeta, token.KwStrings, token.KwCondition:
					needsNewlineAfter = true
				}
			}
		}

		inserted := false
		if needsNewlineAfter && (!next.Valid() || next.Token().Kind != token.Newline) {
			s.Emplace(next, token.NewToken(token.Newline, ""))
			inserted = true
		}
		if (kind == token.Newline || inserted) && next.Valid() {
			indentLineAt(s, next, indentWidth*depth)
		}
		cur = cur.Next()
	}
}

// indentLineAt ensures the line starting at pos (the token immediately
// after a newline) opens with exactly n spaces of indentation, replacing
// any whitespace token already there and inserting one if none exists.
func indentLineAt(s *token.Stream, pos token.Iter, n int) {
	if pos.Token().Kind == token.Whitespace {
		if n <= 0 {
			s.Erase(pos)
			return
		}
		pos.Token().Text = strings.Repeat(" ", n)
		return
	}
	if n > 0 {
		s.Emplace(pos, token.NewToken(token.Whitespace, strings.Repeat(" ", n)))
	}
}
