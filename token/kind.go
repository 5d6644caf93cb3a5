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

import "fmt"

// Kind is the lexical category of a [Token]. Exactly one Kind applies to
// any given token.
type Kind int

const (
	Invalid Kind = iota

	EOF
	Newline
	Whitespace

	Comment       // // line comment
	CommentBlock  // /* block */ comment

	Identifier
	StringIdentifier // $foo
	StringCount      // #foo
	StringOffset     // @foo
	StringLength     // !foo
	RuleName

	IntLit
	DoubleLit
	StringLit
	RegexpLit
	HexStringLit

	// Keywords.
	KwAll
	KwAnd
	KwAny
	KwAscii
	KwAt
	KwBase64
	KwBase64Wide
	KwCondition
	KwContains
	KwEndswith
	KwEntrypoint
	KwFalse
	KwFilesize
	KwFor
	KwFullword
	KwGlobal
	KwIcontains
	KwIendswith
	KwImport
	KwIequals
	KwIn
	KwInclude
	KwIstartswith
	KwMatches
	KwMeta
	KwNocase
	KwNot
	KwOf
	KwOr
	KwPrivate
	KwRule
	KwStartswith
	KwStrings
	KwThem
	KwTrue
	KwWide
	KwXor

	// Punctuation / operators.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Dot
	DotDot
	Minus
	Plus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	Lt
	Gt
	Le
	Ge
	Eq
	Neq
	Assign
	Question // hex-string wildcard nibble, e.g. ?? or A?

	// Include is a pseudo-token produced by the front-end when it expands an
	// `include "path"` directive inline; its SubStream holds the included
	// file's tokens.
	Include
)

var names = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Newline: "newline", Whitespace: "whitespace",
	Comment: "comment", CommentBlock: "comment_block",
	Identifier: "identifier", StringIdentifier: "string_identifier",
	StringCount: "string_count", StringOffset: "string_offset", StringLength: "string_length",
	RuleName: "rule_name",
	IntLit:   "int_lit", DoubleLit: "double_lit", StringLit: "string_lit",
	RegexpLit: "regexp_lit", HexStringLit: "hex_string_lit",
	KwAll: "all", KwAnd: "and", KwAny: "any", KwAscii: "ascii", KwAt: "at",
	KwBase64: "base64", KwBase64Wide: "base64wide", KwCondition: "condition",
	KwContains: "contains", KwEndswith: "endswith", KwEntrypoint: "entrypoint", KwFalse: "false",
	KwFilesize: "filesize", KwFor: "for", KwFullword: "fullword", KwGlobal: "global",
	KwIcontains: "icontains", KwIendswith: "iendswith", KwImport: "import",
	KwIequals: "iequals", KwIn: "in", KwInclude: "include", KwIstartswith: "istartswith",
	KwMatches: "matches", KwMeta: "meta", KwNocase: "nocase", KwNot: "not",
	KwOf: "of", KwOr: "or", KwPrivate: "private", KwRule: "rule", KwStartswith: "startswith",
	KwStrings: "strings", KwThem: "them", KwTrue: "true", KwWide: "wide", KwXor: "xor",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Colon: ":", Dot: ".", DotDot: "..", Minus: "-", Plus: "+", Star: "*",
	Slash: "/", Percent: "%", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
	Shl: "<<", Shr: ">>", Lt: "<", Gt: ">", Le: "<=", Ge: ">=", Eq: "==", Neq: "!=",
	Assign: "=", Question: "?", Include: "include_directive",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the reserved YARA keywords.
func (k Kind) IsKeyword() bool {
	return k >= KwAll && k <= KwXor
}

// IsTrivia reports whether k carries no semantic weight of its own: it may
// be skipped by a parser operating over significant tokens only.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, Comment, CommentBlock:
		return true
	default:
		return false
	}
}
