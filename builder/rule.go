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

package builder

import (
	"strconv"
	"strings"

	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
)

// metaEntry holds one not-yet-tokenized `key = value` meta pair, deferred
// until Get() knows where in the stream the meta: section lands.
type metaEntry struct {
	key   string
	value literal.Literal
}

// stringEntry holds one not-yet-tokenized string definition. valueText is
// the exact text of the value token(s) (a quoted string, a hex-string
// body, or a /regexp/flags body); lit is set only for StringPlain, whose
// value token carries a Literal the way the lexer's own StringLit tokens
// do.
type stringEntry struct {
	name      string
	kind      ast.StringKind
	valueText string
	lit       literal.Literal
	modifiers ast.StringModifier
}

// RuleBuilder constructs one Rule in a private stream.
type RuleBuilder struct {
	stream token.Stream
	syms   *intern.Table

	name       string
	modifier   ast.RuleModifier
	tags       []string
	metas      []metaEntry
	strings    []stringEntry
	condition  ast.Expr
	condStream *token.Stream
}

// NewRuleBuilder constructs a RuleBuilder for a rule named name.
func NewRuleBuilder(syms *intern.Table, name string) *RuleBuilder {
	return &RuleBuilder{syms: syms, name: name}
}

// WithModifier sets the rule's none/global/private modifier.
func (b *RuleBuilder) WithModifier(m ast.RuleModifier) *RuleBuilder {
	b.modifier = m
	return b
}

// WithTag appends a rule tag, rendered in the header's `: tag1 tag2 ...`
// block and recorded on the finished Rule's Tags.
func (b *RuleBuilder) WithTag(tag string) *RuleBuilder {
	b.tags = append(b.tags, tag)
	return b
}

// WithMeta appends a `key = value` entry to the rule's meta: section.
func (b *RuleBuilder) WithMeta(key string, value literal.Literal) *RuleBuilder {
	b.metas = append(b.metas, metaEntry{key: key, value: value})
	return b
}

// WithStringPlain appends a `$name = "value"` entry to the rule's strings:
// section, with the given modifier bitset (ast.ModAscii, ast.ModNocase, ...).
func (b *RuleBuilder) WithStringPlain(name, value string, mods ast.StringModifier) *RuleBuilder {
	quoted := strconv.Quote(value)
	b.strings = append(b.strings, stringEntry{
		name:      name,
		kind:      ast.StringPlain,
		valueText: quoted,
		lit:       literal.String(value, quoted),
		modifiers: mods,
	})
	return b
}

// WithStringHex appends a `$name = { ... }` entry built from hex, whose body
// comes from a finished HexStringBuilder.
func (b *RuleBuilder) WithStringHex(name string, hex *HexStringBuilder, mods ast.StringModifier) *RuleBuilder {
	b.strings = append(b.strings, stringEntry{
		name:      name,
		kind:      ast.StringHex,
		valueText: hex.Text(),
		modifiers: mods,
	})
	return b
}

// WithStringRegexp appends a `$name = /pattern/flags` entry; body is the
// full slash-delimited text including any trailing i/s flags.
func (b *RuleBuilder) WithStringRegexp(name, body string, mods ast.StringModifier) *RuleBuilder {
	b.strings = append(b.strings, stringEntry{
		name:      name,
		kind:      ast.StringRegexp,
		valueText: body,
		modifiers: mods,
	})
	return b
}

// WithCondition sets the rule's condition, built against a fresh
// *ConditionBuilder sharing this RuleBuilder's symbol table. The condition's
// tokens are kept in their own stream until Get assembles the rule's header
// around them, so that building the condition first (as every caller in this
// package does) doesn't leave its tokens stranded ahead of the "rule" keyword.
func (b *RuleBuilder) WithCondition(build func(*ConditionBuilder) ast.Expr) *RuleBuilder {
	cb := &ConditionBuilder{syms: b.syms}
	b.condition = build(cb)
	b.condStream = cb.Stream()
	return b
}

// Stream exposes the builder's private stream, for a FileBuilder to
// move_append on finalization.
func (b *RuleBuilder) Stream() *token.Stream { return &b.stream }

// modifierTokens lists every string modifier keyword in the canonical
// rendering order spec §6.2 specifies: "ascii wide nocase fullword xor
// base64 private" (base64wide sorts next to its base64 sibling).
var modifierTokens = []struct {
	bit  ast.StringModifier
	kind token.Kind
	text string
}{
	{ast.ModAscii, token.KwAscii, "ascii"},
	{ast.ModWide, token.KwWide, "wide"},
	{ast.ModNocase, token.KwNocase, "nocase"},
	{ast.ModFullword, token.KwFullword, "fullword"},
	{ast.ModXor, token.KwXor, "xor"},
	{ast.ModBase64, token.KwBase64, "base64"},
	{ast.ModBase64Wide, token.KwBase64Wide, "base64wide"},
	{ast.ModPrivateString, token.KwPrivate, "private"},
}

// Get finalizes the rule, assembling its header tokens around the
// already-built condition tokens and returning the completed *ast.Rule.
func (b *RuleBuilder) Get() *ast.Rule {
	var start token.Iter
	switch b.modifier {
	case ast.ModGlobal:
		start = b.stream.EmplaceBack(token.KwGlobal, "global")
		b.stream.EmplaceBack(token.Whitespace, " ")
	case ast.ModPrivate:
		start = b.stream.EmplaceBack(token.KwPrivate, "private")
		b.stream.EmplaceBack(token.Whitespace, " ")
	}
	ruleTok := b.stream.EmplaceBack(token.KwRule, "rule")
	if !start.Valid() {
		start = ruleTok
	}
	b.stream.EmplaceBack(token.Whitespace, " ")
	nameTok := b.stream.EmplaceBack(token.Identifier, b.name)

	var tagIDs []intern.ID
	if len(b.tags) > 0 {
		b.stream.EmplaceBack(token.Whitespace, " ")
		b.stream.EmplaceBack(token.Colon, ":")
		for _, tag := range b.tags {
			b.stream.EmplaceBack(token.Whitespace, " ")
			b.stream.EmplaceBack(token.Identifier, tag)
			tagIDs = append(tagIDs, b.syms.Intern(tag))
		}
	}

	b.stream.EmplaceBack(token.Whitespace, " ")
	b.stream.EmplaceBack(token.LBrace, "{")
	b.stream.EmplaceBack(token.Newline, "")

	var metas []*ast.Meta
	if len(b.metas) > 0 {
		b.stream.EmplaceBack(token.KwMeta, "meta")
		b.stream.EmplaceBack(token.Colon, ":")
		b.stream.EmplaceBack(token.Newline, "")
		for _, m := range b.metas {
			keyTok := b.stream.EmplaceBack(token.Identifier, m.key)
			b.stream.EmplaceBack(token.Whitespace, " ")
			b.stream.EmplaceBack(token.Assign, "=")
			b.stream.EmplaceBack(token.Whitespace, " ")
			b.emplaceMetaValue(m.value)
			b.stream.EmplaceBack(token.Newline, "")
			metas = append(metas, &ast.Meta{KeyToken: keyTok, Key: b.syms.Intern(m.key), Value: m.value})
		}
	}

	var strs []*ast.String
	if len(b.strings) > 0 {
		b.stream.EmplaceBack(token.KwStrings, "strings")
		b.stream.EmplaceBack(token.Colon, ":")
		b.stream.EmplaceBack(token.Newline, "")
		for _, se := range b.strings {
			strs = append(strs, b.emplaceStringDef(se))
		}
	}

	b.stream.EmplaceBack(token.KwCondition, "condition")
	b.stream.EmplaceBack(token.Colon, ":")
	b.stream.EmplaceBack(token.Whitespace, " ")
	if b.condStream != nil {
		b.stream.MoveAppend(b.condStream, b.stream.End())
	}
	b.stream.EmplaceBack(token.Newline, "")
	b.stream.EmplaceBack(token.RBrace, "}")

	return &ast.Rule{
		Modifier:  b.modifier,
		Name:      b.syms.Intern(b.name),
		NameToken: nameTok,
		Tags:      tagIDs,
		Metas:     metas,
		Strings:   strs,
		Condition: b.condition,
		Span:      ast.Span{First: start, Last: b.stream.End()},
	}
}

// emplaceMetaValue appends the single value token a meta entry's literal
// renders as, matching the token kinds parser.parseMeta accepts.
func (b *RuleBuilder) emplaceMetaValue(lit literal.Literal) token.Iter {
	switch lit.Kind() {
	case literal.KindString:
		tok := b.stream.EmplaceBack(token.StringLit, lit.Text())
		tok.Token().Value = lit
		return tok
	case literal.KindBool:
		v, _ := lit.Bool()
		kind := token.KwFalse
		if v {
			kind = token.KwTrue
		}
		return b.stream.EmplaceBack(kind, lit.PureText())
	default:
		tok := b.stream.EmplaceBack(token.IntLit, lit.Text())
		tok.Token().Value = lit
		return tok
	}
}

// emplaceStringDef appends one `$name = value modifiers...` definition and
// returns the populated *ast.String for it.
func (b *RuleBuilder) emplaceStringDef(se stringEntry) *ast.String {
	idTok := b.stream.EmplaceBack(token.StringIdentifier, "$"+se.name)
	b.stream.EmplaceBack(token.Whitespace, " ")
	b.stream.EmplaceBack(token.Assign, "=")
	b.stream.EmplaceBack(token.Whitespace, " ")

	var valTok token.Iter
	switch se.kind {
	case ast.StringHex:
		valTok = b.stream.EmplaceBack(token.HexStringLit, se.valueText)
	case ast.StringRegexp:
		// parser.parseRegexpBody walks raw tokens up to the next Slash
		// token, so the body must be split into a Slash, the
		// pattern text, a second Slash, and any trailing i/s flags —
		// a single opaque token here would not round-trip.
		last := strings.LastIndex(se.valueText, "/")
		pattern, flags := se.valueText[1:last], se.valueText[last+1:]
		valTok = b.stream.EmplaceBack(token.Slash, "/")
		if pattern != "" {
			b.stream.EmplaceBack(token.RegexpLit, pattern)
		}
		b.stream.EmplaceBack(token.Slash, "/")
		if flags != "" {
			b.stream.EmplaceBack(token.Identifier, flags)
		}
	default:
		valTok = b.stream.EmplaceBack(token.StringLit, se.valueText)
		valTok.Token().Value = se.lit
	}
	valueTo := b.stream.End()

	for _, m := range modifierTokens {
		if se.modifiers&m.bit == 0 {
			continue
		}
		b.stream.EmplaceBack(token.Whitespace, " ")
		b.stream.EmplaceBack(m.kind, m.text)
	}
	b.stream.EmplaceBack(token.Newline, "")

	return &ast.String{
		Kind:      se.kind,
		IDToken:   idTok,
		Name:      b.syms.Intern(se.name),
		ValueFrom: valTok,
		ValueTo:   valueTo,
		Modifiers: se.modifiers,
	}
}

// FileBuilder assembles finished Rules into a *ast.YaraFile, merging each
// rule's private stream into the file's master stream.
type FileBuilder struct {
	file *ast.YaraFile
	syms *intern.Table
}

// NewFileBuilder constructs an empty FileBuilder.
func NewFileBuilder() *FileBuilder {
	stream := &token.Stream{}
	return &FileBuilder{file: ast.NewYaraFile(stream), syms: &intern.Table{}}
}

// Symbols returns the symbol table shared by every builder spawned from
// this FileBuilder, so rule/condition builders intern consistently.
func (fb *FileBuilder) Symbols() *intern.Table { return fb.syms }

// AddRule merges rule's stream into the file's master stream and appends
// the rule to the file.
func (fb *FileBuilder) AddRule(rule *ast.Rule, ruleStream *token.Stream) *FileBuilder {
	rule.UID = fb.file.UIDs.Next()
	before := fb.file.Stream.End()
	fb.file.Stream.MoveAppend(ruleStream, before)
	fb.file.Rules = append(fb.file.Rules, rule)
	return fb
}

// Get returns the finished file.
func (fb *FileBuilder) Get() *ast.YaraFile { return fb.file }
