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

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaramod-go/yaramod/token"
)

func TestEraseRestore(t *testing.T) {
	var s token.Stream
	s.EmplaceBack(token.KwRule, "rule")
	s.EmplaceBack(token.Whitespace, " ")
	before := s.Text(token.RenderOptions{})

	last := s.Begin()
	for next := last.Next(); next.Valid(); next = next.Next() {
		last = next
	}
	s.Erase(last)

	require.Equal(t, 1, s.Len())

	s.EmplaceBack(token.Whitespace, " ")
	after := s.Text(token.RenderOptions{})
	assert.Equal(t, before, after)
}

func TestIterStability(t *testing.T) {
	var s token.Stream
	a := s.EmplaceBack(token.Identifier, "a")
	s.EmplaceBack(token.Identifier, "b")

	// Insert and erase unrelated tokens; a's iterator must remain valid and
	// keep pointing at the same token.
	c := s.EmplaceBack(token.Identifier, "c")
	s.Erase(c)
	s.Emplace(a, token.NewToken(token.Whitespace, " "))

	require.True(t, a.Valid())
	assert.Equal(t, "a", a.Token().Text)
}

func TestFindAndPredecessor(t *testing.T) {
	var s token.Stream
	s.EmplaceBack(token.Identifier, "x")
	target := s.EmplaceBack(token.KwAnd, "and")
	s.EmplaceBack(token.Identifier, "y")

	found := s.Find(token.KwAnd, s.Begin(), s.End())
	assert.True(t, found.Equal(target))

	pred, ok := s.Predecessor(target)
	require.True(t, ok)
	assert.Equal(t, "x", pred.Token().Text)
}

func TestMoveAppendPreservesIterators(t *testing.T) {
	var donor token.Stream
	first := donor.EmplaceBack(token.Identifier, "moved1")
	second := donor.EmplaceBack(token.Identifier, "moved2")

	var dst token.Stream
	dst.EmplaceBack(token.Identifier, "existing")
	dst.MoveAppend(&donor, dst.End())

	require.Equal(t, 0, donor.Len())
	require.Equal(t, 3, dst.Len())
	assert.Equal(t, "moved1", first.Token().Text)
	assert.Equal(t, "moved2", second.Token().Text)

	// Navigation through iterators obtained before the move must still
	// work afterward: first.Next() should reach second, now that both live
	// in dst's list rather than donor's.
	next := first.Next()
	require.True(t, next.Valid())
	assert.Equal(t, "moved2", next.Token().Text)
	assert.True(t, next.Equal(second))
}

func TestCommentAlignment(t *testing.T) {
	var s token.Stream
	s.EmplaceBack(token.StringIdentifier, "$a")
	s.EmplaceBack(token.Whitespace, " ")
	s.EmplaceBack(token.KwOr, "or")
	s.EmplaceBack(token.Whitespace, " ")
	s.EmplaceBack(token.Comment, "// first")
	s.EmplaceBack(token.Newline, "")
	s.EmplaceBack(token.StringIdentifier, "$b")
	s.EmplaceBack(token.Whitespace, " ")
	s.EmplaceBack(token.Comment, "// second")

	out := s.Text(token.RenderOptions{AlignComments: true})
	lines := []rune(out)
	_ = lines

	// Both comments must start at the same column: column of "// first" on
	// line 1 ("$a or ") is 6; "$b " is 3, so it gets 3 extra spaces.
	want := "$a or // first\n$b    // second"
	assert.Equal(t, want, out)
}
