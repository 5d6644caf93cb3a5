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

// Package lexer tokenizes YARA source text into a [token.Stream]. It is the
// grammar/lexer front-end spec.md scopes out of its own normative contract;
// this package exists to give the parser and the rest of the module
// something real to drive, emitting exactly the token.Kind contract the
// core packages already assume.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
	"github.com/yaramod-go/yaramod/yaraerr"
)

// keywords lists every reserved word. lexIdentOrKeyword first scans the
// whole identifier run and then looks that word up here by exact match, so
// the longest match is taken and the order of this table does not affect
// the result. Identifiers that aren't in this table lex as Identifier.
var keywords = []struct {
	text string
	kind token.Kind
}{
	{"istartswith", token.KwIstartswith},
	{"base64wide", token.KwBase64Wide},
	{"entrypoint", token.KwEntrypoint},
	{"icontains", token.KwIcontains},
	{"fullword", token.KwFullword},
	{"filesize", token.KwFilesize},
	{"startswith", token.KwStartswith},
	{"iequals", token.KwIequals},
	{"iendswith", token.KwIendswith},
	{"endswith", token.KwEndswith},
	{"contains", token.KwContains},
	{"condition", token.KwCondition},
	{"strings", token.KwStrings},
	{"matches", token.KwMatches},
	{"private", token.KwPrivate},
	{"include", token.KwInclude},
	{"nocase", token.KwNocase},
	{"global", token.KwGlobal},
	{"import", token.KwImport},
	{"base64", token.KwBase64},
	{"ascii", token.KwAscii},
	{"false", token.KwFalse},
	{"rule", token.KwRule},
	{"true", token.KwTrue},
	{"them", token.KwThem},
	{"wide", token.KwWide},
	{"all", token.KwAll},
	{"and", token.KwAnd},
	{"any", token.KwAny},
	{"for", token.KwFor},
	{"not", token.KwNot},
	{"xor", token.KwXor},
	{"meta", token.KwMeta},
	{"at", token.KwAt},
	{"in", token.KwIn},
	{"of", token.KwOf},
	{"or", token.KwOr},
}

// Lex tokenizes text (attributed to path for diagnostics) into a fresh
// token.Stream.
func Lex(path, text string) (*token.Stream, error) {
	l := &lexer{path: path, src: text, line: 1, col: 1}
	s := &token.Stream{}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		s.PushBack(tok)
		if tok.Kind == token.EOF {
			return s, nil
		}
	}
}

type lexer struct {
	path       string
	src        string
	pos        int
	line, col  int
}

func (l *lexer) loc() token.Location {
	return token.Location{File: l.path, Line: l.line, Column: l.col}
}

func (l *lexer) errLoc() yaraerr.Location {
	return yaraerr.Location{File: l.path, Line: l.line, Column: l.col}
}

func (l *lexer) peek() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	r, n := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, n
}

func (l *lexer) advance() rune {
	r, n := l.peek()
	l.pos += n
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) next() (token.Token, error) {
	loc := l.loc()
	r, n := l.peek()
	if n == 0 {
		return token.NewToken(token.EOF, "").WithLocation(loc), nil
	}

	switch {
	case r == '\n':
		l.advance()
		return token.NewToken(token.Newline, "").WithLocation(loc), nil

	case r == ' ' || r == '\t' || r == '\r':
		start := l.pos
		for {
			r, _ := l.peek()
			if r != ' ' && r != '\t' && r != '\r' {
				break
			}
			l.advance()
		}
		return token.NewToken(token.Whitespace, l.src[start:l.pos]).WithLocation(loc), nil

	case strings.HasPrefix(l.src[l.pos:], "//"):
		start := l.pos
		for {
			r, n := l.peek()
			if n == 0 || r == '\n' {
				break
			}
			l.advance()
		}
		return token.NewToken(token.Comment, l.src[start:l.pos]).WithLocation(loc), nil

	case strings.HasPrefix(l.src[l.pos:], "/*"):
		start := l.pos
		l.advance()
		l.advance()
		for {
			r, n := l.peek()
			if n == 0 {
				break
			}
			if r == '*' && strings.HasPrefix(l.src[l.pos:], "*/") {
				l.advance()
				l.advance()
				break
			}
			l.advance()
		}
		return token.NewToken(token.CommentBlock, l.src[start:l.pos]).WithLocation(loc), nil

	case r == '$':
		return l.lexSigilIdent(loc, '$', token.StringIdentifier)
	case r == '#':
		return l.lexSigilIdent(loc, '#', token.StringCount)
	case r == '@':
		return l.lexSigilIdent(loc, '@', token.StringOffset)
	case r == '!' && isIdentStart(runeAt(l.src, l.pos+1)):
		return l.lexSigilIdent(loc, '!', token.StringLength)

	case r == '"':
		return l.lexString(loc)

	case r == '/':
		// Ambiguous with division; the parser disambiguates by grammar
		// position, so the lexer always emits a Slash and the parser
		// collects a regexp's body from the raw tokens up to the next
		// Slash when a regexp is expected. See parser.parseRegexpBody.
		l.advance()
		return token.NewToken(token.Slash, "/").WithLocation(loc), nil

	case unicode.IsDigit(r):
		return l.lexNumber(loc)

	case isIdentStart(r):
		return l.lexIdentOrKeyword(loc)

	default:
		return l.lexPunct(loc)
	}
}

func runeAt(s string, i int) rune {
	if i < 0 || i >= len(s) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentCont(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

func (l *lexer) lexSigilIdent(loc token.Location, sigil rune, kind token.Kind) (token.Token, error) {
	start := l.pos
	l.advance() // the sigil
	if r, _ := l.peek(); r == '*' && sigil == '$' {
		l.advance()
		return token.NewToken(token.StringIdentifier, l.src[start:l.pos]).WithLocation(loc), nil
	}
	for {
		r, _ := l.peek()
		if !isIdentCont(r) {
			break
		}
		l.advance()
	}
	return token.NewToken(kind, l.src[start:l.pos]).WithLocation(loc), nil
}

func (l *lexer) lexIdentOrKeyword(loc token.Location) (token.Token, error) {
	start := l.pos
	for {
		r, _ := l.peek()
		if !isIdentCont(r) {
			break
		}
		l.advance()
	}
	text := l.src[start:l.pos]
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw.text == lower {
			return token.NewToken(kw.kind, text).WithLocation(loc), nil
		}
	}
	return token.NewToken(token.Identifier, text).WithLocation(loc), nil
}

func (l *lexer) lexString(loc token.Location) (token.Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	start := l.pos
	for {
		r, n := l.peek()
		if n == 0 {
			return token.Token{}, yaraerr.New(yaraerr.LexError, l.errLoc(), "unterminated string literal")
		}
		if r == '"' {
			break
		}
		if r == '\\' {
			l.advance()
			esc, _ := l.peek()
			l.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"', '\\':
				b.WriteRune(esc)
			case 'x':
				// \xHH
				if l.pos+2 <= len(l.src) {
					if v, err := strconv.ParseUint(l.src[l.pos:l.pos+2], 16, 8); err == nil {
						b.WriteByte(byte(v))
						l.advance()
						l.advance()
						continue
					}
				}
				b.WriteRune(esc)
			default:
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(r)
		l.advance()
	}
	raw := l.src[start:l.pos]
	l.advance() // closing quote
	quoted := `"` + raw + `"`
	lit := literal.String(b.String(), quoted)
	return token.NewToken(token.StringLit, quoted).WithValue(lit).WithLocation(loc), nil
}

func (l *lexer) lexNumber(loc token.Location) (token.Token, error) {
	start := l.pos
	radix := literal.RadixDecimal
	if strings.HasPrefix(l.src[l.pos:], "0x") || strings.HasPrefix(l.src[l.pos:], "0X") {
		radix = literal.RadixHex
		l.advance()
		l.advance()
		for {
			r, _ := l.peek()
			if !isHexDigit(r) {
				break
			}
			l.advance()
		}
	} else {
		for {
			r, _ := l.peek()
			if !unicode.IsDigit(r) {
				break
			}
			l.advance()
		}
		if r, _ := l.peek(); r == '.' && unicode.IsDigit(runeAt(l.src, l.pos+1)) {
			// Float literal.
			l.advance()
			for {
				r, _ := l.peek()
				if !unicode.IsDigit(r) {
					break
				}
				l.advance()
			}
			text := l.src[start:l.pos]
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return token.Token{}, yaraerr.New(yaraerr.LexError, l.errLoc(), "malformed float literal %q", text)
			}
			return token.NewToken(token.DoubleLit, text).WithValue(literal.Double(f)).WithLocation(loc), nil
		}
	}

	// Optional KB/MB multiplier suffix.
	suffix := ""
	if strings.HasPrefix(strings.ToUpper(l.src[l.pos:]), "KB") {
		suffix = "KB"
		l.advance()
		l.advance()
	} else if strings.HasPrefix(strings.ToUpper(l.src[l.pos:]), "MB") {
		suffix = "MB"
		l.advance()
		l.advance()
	}

	text := l.src[start:l.pos]
	digits := text
	if radix == literal.RadixHex {
		digits = text[2 : len(text)-len(suffix)]
	} else if suffix != "" {
		digits = text[:len(text)-len(suffix)]
	}
	base := 10
	if radix == literal.RadixHex {
		base = 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return token.Token{}, yaraerr.New(yaraerr.IntegerOverflow, l.errLoc(), "integer literal %q exceeds 64 bits", text)
	}
	multiplier := uint64(1)
	switch suffix {
	case "KB":
		multiplier = 1024
	case "MB":
		multiplier = 1024 * 1024
	}
	if multiplier != 1 && v > (1<<64-1)/multiplier {
		return token.Token{}, yaraerr.New(yaraerr.IntegerOverflow, l.errLoc(), "integer literal %q overflows after %s multiplier", text, suffix)
	}
	v *= multiplier
	lit := literal.Int64Radix(int64(v), toRadix(radix), suffix, text)
	return token.NewToken(token.IntLit, text).WithValue(lit).WithLocation(loc), nil
}

func toRadix(r literal.Radix) literal.Radix { return r }

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// punct lists multi-character operators, longest first, so == is preferred
// over = and so on, matching the same longest-match discipline as keywords.
var punct = []struct {
	text string
	kind token.Kind
}{
	{"<<", token.Shl},
	{">>", token.Shr},
	{"<=", token.Le},
	{">=", token.Ge},
	{"==", token.Eq},
	{"!=", token.Neq},
	{"..", token.DotDot},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{",", token.Comma},
	{":", token.Colon},
	{".", token.Dot},
	{"-", token.Minus},
	{"+", token.Plus},
	{"*", token.Star},
	{"%", token.Percent},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"<", token.Lt},
	{">", token.Gt},
	{"=", token.Assign},
	{"?", token.Question},
}

func (l *lexer) lexPunct(loc token.Location) (token.Token, error) {
	for _, p := range punct {
		if strings.HasPrefix(l.src[l.pos:], p.text) {
			for range p.text {
				l.advance()
			}
			return token.NewToken(p.kind, p.text).WithLocation(loc), nil
		}
	}
	r := l.advance()
	return token.Token{}, yaraerr.New(yaraerr.LexError, l.errLoc(), "unexpected character %q", r)
}
