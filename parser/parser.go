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

// Package parser turns a token.Stream produced by package lexer into an
// *ast.YaraFile: a recursive-descent driver over rule/meta/strings/condition
// sections, with a precedence-climbing expression parser for the condition.
//
// Internally the parser uses panics as control flow (a yaraerr.Error panic
// unwound by Parse's top-level recover), matching the error-handling
// contract spec §7 describes: "internal code may use exceptions as control
// flow but must convert at the boundary."
package parser

import (
	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
	"github.com/yaramod-go/yaramod/yaraerr"
)

// Mode selects how `include` directives are resolved while parsing.
type Mode byte

const (
	// Regular follows include directives recursively; a cycle produces an
	// IncludeError.
	Regular Mode = iota
	// IncludeGuarded maintains a set of already-included paths and skips
	// duplicates instead of erroring on a cycle.
	IncludeGuarded
)

// Options configures Parse.
type Options struct {
	Mode Mode
	// Symbols is shared across a parse invocation (and, for IncludeGuarded
	// mode, across a whole include tree) so that identically spelled
	// identifiers intern to the same handle.
	Symbols *intern.Table
}

// Parse consumes stream (as produced by package lexer) and returns the
// resulting AST, or a *yaraerr.Error.
func Parse(path string, stream *token.Stream, opts Options) (file *ast.YaraFile, err error) {
	if opts.Symbols == nil {
		opts.Symbols = &intern.Table{}
	}
	p := &parser{path: path, stream: stream, syms: opts.Symbols, mode: opts.Mode}
	p.cur = stream.Begin()

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*yaraerr.Error); ok {
				err = e
				file = nil
				return
			}
			panic(r)
		}
	}()

	file = p.parseFile()
	return file, nil
}

type parser struct {
	path   string
	stream *token.Stream
	syms   *intern.Table
	mode   Mode
	cur    token.Iter
}

func (p *parser) fail(kind yaraerr.Kind, format string, args ...any) {
	loc := yaraerr.Location{File: p.path}
	if p.cur.Valid() {
		tl := p.cur.Token().Location()
		loc.Line, loc.Column = tl.Line, tl.Column
	}
	panic(yaraerr.New(kind, loc, format, args...))
}

// skipTrivia advances cur past whitespace/newline/comment tokens.
func (p *parser) skipTrivia() {
	for p.cur.Valid() && p.cur.Token().Kind.IsTrivia() {
		p.cur = p.cur.Next()
	}
}

func (p *parser) peekKind() token.Kind {
	p.skipTrivia()
	if !p.cur.Valid() {
		return token.EOF
	}
	return p.cur.Token().Kind
}

func (p *parser) advance() token.Iter {
	p.skipTrivia()
	it := p.cur
	if p.cur.Valid() {
		p.cur = p.cur.Next()
	}
	return it
}

func (p *parser) expect(kind token.Kind) token.Iter {
	p.skipTrivia()
	if !p.cur.Valid() || p.cur.Token().Kind != kind {
		got := token.EOF
		if p.cur.Valid() {
			got = p.cur.Token().Kind
		}
		p.fail(yaraerr.SyntaxError, "expected %v, got %v", kind, got)
	}
	return p.advance()
}

func (p *parser) at(kind token.Kind) bool { return p.peekKind() == kind }

func (p *parser) intern(text string) intern.ID { return p.syms.Intern(text) }

func (p *parser) parseFile() *ast.YaraFile {
	file := ast.NewYaraFile(p.stream)
	for {
		switch p.peekKind() {
		case token.EOF:
			return file
		case token.KwImport:
			p.advance()
			nameTok := p.expect(token.StringLit)
			name, _ := nameTok.Token().Value.StringValue()
			file.Imports = append(file.Imports, p.intern(name))
		case token.KwInclude:
			p.advance()
			p.expect(token.StringLit) // resolution is the caller's (include package's) job
		case token.Include:
			incTok := p.advance()
			sub, err := Parse(p.path, incTok.Token().SubStream, Options{Mode: p.mode, Symbols: p.syms})
			if err != nil {
				panic(err)
			}
			file.Imports = append(file.Imports, sub.Imports...)
			file.Rules = append(file.Rules, sub.Rules...)
		default:
			file.Rules = append(file.Rules, p.parseRule(file))
		}
	}
}

func (p *parser) parseRule(file *ast.YaraFile) *ast.Rule {
	start := p.cur
	mod := ast.ModNone
	switch p.peekKind() {
	case token.KwGlobal:
		mod = ast.ModGlobal
		p.advance()
		if p.at(token.KwPrivate) {
			mod = ast.ModGlobal
			p.advance()
		}
	case token.KwPrivate:
		mod = ast.ModPrivate
		p.advance()
		if p.at(token.KwGlobal) {
			p.advance()
		}
	}
	p.expect(token.KwRule)
	nameTok := p.expect(token.Identifier)
	loc := nameTok.Token().Location()

	r := &ast.Rule{
		UID:       file.UIDs.Next(),
		Modifier:  mod,
		Name:      p.intern(nameTok.Token().Text),
		NameToken: nameTok,
		Location:  ast.Location{File: loc.File, Line: loc.Line},
	}

	if p.at(token.Colon) {
		p.advance()
		for p.at(token.Identifier) {
			tagTok := p.advance()
			r.Tags = append(r.Tags, p.intern(tagTok.Token().Text))
		}
	}

	p.expect(token.LBrace)

	for p.at(token.KwMeta) {
		p.advance()
		p.expect(token.Colon)
		for p.peekKind() == token.Identifier {
			r.Metas = append(r.Metas, p.parseMeta())
		}
	}

	if p.at(token.KwStrings) {
		p.advance()
		p.expect(token.Colon)
		for p.peekKind() == token.StringIdentifier {
			r.Strings = append(r.Strings, p.parseStringDef())
		}
	}

	p.expect(token.KwCondition)
	p.expect(token.Colon)
	r.Condition = p.parseExpr(0)

	end := p.expect(token.RBrace)
	r.Span = ast.Span{First: start, Last: end.Next()}
	return r
}

func (p *parser) parseMeta() *ast.Meta {
	keyTok := p.expect(token.Identifier)
	p.expect(token.Assign)
	var lit literal.Literal
	switch p.peekKind() {
	case token.StringLit:
		t := p.advance()
		lit = t.Token().Value
	case token.IntLit:
		t := p.advance()
		lit = t.Token().Value
	case token.KwTrue:
		p.advance()
		lit = literal.Bool(true)
	case token.KwFalse:
		p.advance()
		lit = literal.Bool(false)
	case token.Minus:
		p.advance()
		t := p.expect(token.IntLit)
		v, _ := t.Token().Value.Int64()
		lit = literal.Int64(-v)
	default:
		p.fail(yaraerr.SyntaxError, "expected meta value")
	}
	return &ast.Meta{KeyToken: keyTok, Key: p.intern(keyTok.Token().Text), Value: lit}
}

func (p *parser) parseStringDef() *ast.String {
	idTok := p.expect(token.StringIdentifier)
	p.expect(token.Assign)

	s := &ast.String{IDToken: idTok, Name: p.intern(idTok.Token().Text)}

	switch p.peekKind() {
	case token.StringLit:
		valTok := p.advance()
		s.Kind = ast.StringPlain
		s.ValueFrom, s.ValueTo = valTok, valTok.Next()
	case token.Slash:
		s.Kind = ast.StringRegexp
		from := p.cur
		p.parseRegexpBody()
		s.ValueFrom, s.ValueTo = from, p.cur
	case token.LBrace:
		s.Kind = ast.StringHex
		from := p.cur
		p.parseHexBody()
		s.ValueFrom, s.ValueTo = from, p.cur
	default:
		p.fail(yaraerr.SyntaxError, "expected string value")
	}

	for {
		switch p.peekKind() {
		case token.KwAscii:
			p.advance()
			s.Modifiers |= ast.ModAscii
		case token.KwWide:
			p.advance()
			s.Modifiers |= ast.ModWide
		case token.KwNocase:
			p.advance()
			s.Modifiers |= ast.ModNocase
		case token.KwFullword:
			p.advance()
			s.Modifiers |= ast.ModFullword
		case token.KwXor:
			p.advance()
			s.Modifiers |= ast.ModXor
		case token.KwBase64:
			p.advance()
			s.Modifiers |= ast.ModBase64
		case token.KwBase64Wide:
			p.advance()
			s.Modifiers |= ast.ModBase64Wide
		case token.KwPrivate:
			p.advance()
			s.Modifiers |= ast.ModPrivateString
		default:
			return s
		}
	}
}

// parseRegexpBody consumes a `/pattern/flags` regexp literal as raw tokens:
// the lexer does not special-case regexp syntax (see the note on '/' in
// lexer.next), so the parser itself scans forward to the next Slash token,
// with no handling of escaped slashes, and then consumes any trailing
// identifier tokens as flags.
func (p *parser) parseRegexpBody() {
	p.expect(token.Slash)
	for p.cur.Valid() && p.cur.Token().Kind != token.Slash {
		p.cur = p.cur.Next()
	}
	p.expect(token.Slash)
	for p.at(token.Identifier) {
		p.advance()
	}
}

// parseHexBody consumes a `{ AA ?? [0-4] }` hex string literal as raw
// balanced-brace tokens.
func (p *parser) parseHexBody() {
	depth := 0
	for {
		k := p.peekKind()
		if k == token.LBrace {
			depth++
		} else if k == token.RBrace {
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		} else if k == token.EOF {
			p.fail(yaraerr.SyntaxError, "unterminated hex string")
		}
		p.advance()
	}
}
