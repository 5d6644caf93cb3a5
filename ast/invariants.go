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

package ast

import (
	"fmt"

	"github.com/yaramod-go/yaramod/internal/interval"
	"github.com/yaramod-go/yaramod/token"
)

// CheckInvariants verifies the two structural invariants spec §8 calls out
// as testable properties: span containment (every descendant's span lies
// within its ancestor's) and disjoint siblings (sibling spans are pairwise
// ordered and non-overlapping). It returns the first violation found, or nil.
//
// Token iterators are not themselves ordered, so this first assigns every
// token in f.Stream an ordinal position, then re-expresses every span as a
// closed [start, end] integer interval and checks it with an
// [interval.Map], which is the ordered-interval structure package interval
// already provides (backed by github.com/tidwall/btree).
func CheckInvariants(f *YaraFile) error {
	pos := ordinals(f.Stream)

	for _, rule := range f.Rules {
		if err := checkExprInvariants(pos, rule.Condition, span2ints(pos, rule.Span)); err != nil {
			return fmt.Errorf("rule %v: %w", rule.UID, err)
		}
	}
	return nil
}

// ordinals maps each token's stable address (*Token) to its 0-based position
// in the stream, so spans become comparable integers.
func ordinals(s *token.Stream) map[*token.Token]int {
	m := make(map[*token.Token]int, s.Len())
	i := 0
	for cur := s.Begin(); cur.Valid(); cur = cur.Next() {
		m[cur.Token()] = i
		i++
	}
	return m
}

func span2ints(pos map[*token.Token]int, s Span) [2]int {
	start := 0
	if s.First.Valid() {
		start = pos[s.First.Token()]
	}
	end := start
	if s.Last.Valid() {
		end = pos[s.Last.Token()] - 1
	} else {
		end = len(pos) - 1
	}
	if end < start {
		end = start
	}
	return [2]int{start, end}
}

func checkExprInvariants(pos map[*token.Token]int, e Expr, parent [2]int) error {
	if e == nil {
		return nil
	}
	self := span2ints(pos, e.Span())
	if self[0] < parent[0] || self[1] > parent[1] {
		return fmt.Errorf("span containment violated: child [%d,%d] not within parent [%d,%d]",
			self[0], self[1], parent[0], parent[1])
	}

	kids := children(e)
	var m interval.Map[int, struct{}]
	for _, c := range kids {
		if c == nil {
			continue
		}
		cs := span2ints(pos, c.Span())
		if overlap := m.Insert(cs[0], cs[1], struct{}{}); overlap.Value != nil {
			return fmt.Errorf("disjoint-sibling invariant violated: [%d,%d] overlaps [%d,%d]",
				cs[0], cs[1], overlap.Start, overlap.End)
		}
		if err := checkExprInvariants(pos, c, self); err != nil {
			return err
		}
	}
	return nil
}
