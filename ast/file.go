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
	"sync/atomic"

	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
)

// UID identifies an AST node within one [YaraFile], for use as a map/set key
// where stream iterators are not hashable.
type UID uint64

// UIDGenerator is a monotone per-file counter minting [UID] values. It is
// reset between parses by constructing a new one (spec §9: "the UidGenerator
// is per-file, not process-global").
type UIDGenerator struct {
	next atomic.Uint64
}

// Next returns the next unique identifier.
func (g *UIDGenerator) Next() UID {
	return UID(g.next.Add(1))
}

// RuleModifier is a rule's none/global/private modifier.
type RuleModifier byte

const (
	ModNone RuleModifier = iota
	ModGlobal
	ModPrivate
)

// StringModifier is a bitset of YARA string modifiers.
type StringModifier uint16

const (
	ModAscii StringModifier = 1 << iota
	ModWide
	ModNocase
	ModFullword
	ModXor
	ModBase64
	ModBase64Wide
	ModPrivateString
)

// StringKind distinguishes the three String variants.
type StringKind byte

const (
	StringPlain StringKind = iota
	StringHex
	StringRegexp
)

// Meta is a single `key = value` entry in a rule's meta section.
type Meta struct {
	UID       UID
	KeyToken  token.Iter
	Key       intern.ID
	Value     literal.Literal
}

// String is a YARA string definition (`$id = value [modifiers]`).
type String struct {
	UID       UID
	Kind      StringKind
	IDToken   token.Iter
	Name      intern.ID
	ValueFrom token.Iter
	ValueTo   token.Iter
	Modifiers StringModifier
	// RegexpSuffix carries the /i, /s suffix flags text for Regexp strings.
	RegexpSuffix string
}

// HasModifier reports whether m is set on s.
func (s *String) HasModifier(m StringModifier) bool { return s.Modifiers&m != 0 }

// Location is a source position recorded at rule granularity.
type Location struct {
	File string
	Line int
}

// Rule is one `rule NAME { ... }` declaration.
type Rule struct {
	UID        UID
	Modifier   RuleModifier
	Name       intern.ID
	NameToken  token.Iter
	Tags       []intern.ID
	Metas      []*Meta
	Strings    []*String
	Condition  Expr
	Location   Location
	Span       Span
}

// YaraFile is the top-level container: the master token stream plus the
// file's imports and rules. YaraFile exclusively owns the master TokenStream
// (spec §5); every Rule, String, Meta, and Expr reached from it holds only a
// non-owning iterator pair into it.
type YaraFile struct {
	Stream  *token.Stream
	Imports []intern.ID
	Rules   []*Rule
	UIDs    UIDGenerator
}

// NewYaraFile constructs an empty YaraFile backed by stream.
func NewYaraFile(stream *token.Stream) *YaraFile {
	return &YaraFile{Stream: stream}
}

// FindRule returns the rule named name, or nil.
func (f *YaraFile) FindRule(name intern.ID) *Rule {
	for _, r := range f.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// RemoveRules removes every rule for which pred returns true, splicing each
// removed rule's token span out of the master stream. Calling RemoveRules
// twice with the same predicate is a no-op the second time (spec §8,
// "removal idempotence"), since a rule already removed is no longer present
// to match pred.
func (f *YaraFile) RemoveRules(pred func(*Rule) bool) {
	kept := f.Rules[:0]
	for _, r := range f.Rules {
		if pred(r) {
			f.Stream.EraseRange(r.Span.First, r.Span.Last)
			continue
		}
		kept = append(kept, r)
	}
	f.Rules = kept
}
