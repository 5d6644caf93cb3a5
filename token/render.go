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

package token

import (
	"strings"

	"github.com/yaramod-go/yaramod/internal/ext/widthx"
)

// RenderOptions configures [Stream.Text].
type RenderOptions struct {
	// WithIncludes, when true, recursively splices each Include token's
	// SubStream in place of the token; otherwise the include directive is
	// rendered as a single `include "path"` unit.
	WithIncludes bool

	// AlignComments, when true, pads end-of-line comments on consecutive
	// lines that each end in a comment so they all start at the same
	// column: the maximum natural column across the run, per spec §4.1.
	AlignComments bool
}

// Text renders the stream to source text according to opts. This is the
// single render path used both for plain get_text and, by the format
// package, for the post-autoformat emission.
func (s *Stream) Text(opts RenderOptions) string {
	toks := s.flatten(opts.WithIncludes)
	var pad map[int]int
	if opts.AlignComments {
		pad = alignTrailingComments(toks)
	}
	var b strings.Builder
	for i, t := range toks {
		if n, ok := pad[i]; ok && n > 0 {
			b.WriteString(strings.Repeat(" ", n))
		}
		b.WriteString(tokenText(t))
	}
	return b.String()
}

// flatten walks the stream left to right, expanding Include tokens'
// sub-streams in place when withIncludes is set, and returns the resulting
// token sequence as a flat slice for the renderer to walk.
func (s *Stream) flatten(withIncludes bool) []*Token {
	var out []*Token
	for cur := s.Begin(); cur.Valid(); cur = cur.Next() {
		tok := cur.Token()
		if withIncludes && tok.Kind == Include && tok.SubStream != nil {
			out = append(out, tok.SubStream.flatten(true)...)
			continue
		}
		out = append(out, tok)
	}
	return out
}

// tokenText returns the literal source text a single token contributes.
func tokenText(t *Token) string {
	if t.Kind == Newline && t.Text == "" {
		return "\n"
	}
	if !t.Value.IsEmpty() {
		return t.Value.Text()
	}
	return t.Text
}

// alignTrailingComments implements the two-pass comment-alignment algorithm
// from spec §4.1: a run of consecutive source lines that each end in a
// trailing "//" comment get that comment padded out to the maximum natural
// column across the run. A line whose comment stands alone (nothing else on
// the line) is excluded from the run, per spec's "comments already on a line
// alone are not aligned".
func alignTrailingComments(toks []*Token) map[int]int {
	type lineInfo struct {
		commentIdx  int // index into toks of the Comment token, or -1
		preCol      int // natural column the comment would start at
		hasNonTrivia bool
	}

	var lines []lineInfo
	cur := lineInfo{commentIdx: -1}
	col := 0
	flush := func() {
		lines = append(lines, cur)
		cur = lineInfo{commentIdx: -1}
		col = 0
	}
	for i, t := range toks {
		switch t.Kind {
		case Newline:
			flush()
		case Comment:
			cur.commentIdx = i
			cur.preCol = col
		default:
			if t.Kind != Whitespace {
				cur.hasNonTrivia = true
			}
			col += widthx.String(tokenText(t))
		}
	}
	flush()

	// Find maximal runs of consecutive lines that have both a comment and
	// other content before it (an "alignable" line), and align each run to
	// its own shared maximum column, per spec: "the maximal such column
	// across all aligned lines becomes the shared comment column" for that
	// run.
	isAlignable := func(l lineInfo) bool { return l.commentIdx >= 0 && l.hasNonTrivia }

	pad := make(map[int]int)
	i := 0
	for i < len(lines) {
		if !isAlignable(lines[i]) {
			i++
			continue
		}
		j := i
		maxCol := 0
		for j < len(lines) && isAlignable(lines[j]) {
			if lines[j].preCol > maxCol {
				maxCol = lines[j].preCol
			}
			j++
		}
		for k := i; k < j; k++ {
			idx := lines[k].commentIdx
			if n := maxCol - lines[k].preCol; n > 0 {
				pad[idx] = n
			}
		}
		i = j
	}
	return pad
}
