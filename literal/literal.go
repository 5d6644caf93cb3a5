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

// Package literal defines the tagged scalar value carried by value-bearing
// tokens: strings, integers, unsigned integers, doubles, booleans, and
// interned symbol handles.
package literal

import (
	"fmt"
	"strconv"

	"github.com/yaramod-go/yaramod/internal/intern"
)

// Kind is the tag of a [Literal].
type Kind byte

const (
	// KindEmpty is the zero Kind: a Literal with no value.
	KindEmpty Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindDouble
	KindString
	// KindSymbol is an interned identifier/symbol-handle, used by IdExpr and
	// by struct/array field names.
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Radix records the textual base an integer literal was written in, so that
// [Literal.Text] can reproduce it (e.g. 0x1A rather than 26).
type Radix byte

const (
	RadixDecimal Radix = iota
	RadixHex
	RadixOctal
)

// Literal is a tagged scalar value. The zero Literal is [KindEmpty].
//
// A Literal carries two textual forms: PureText, the canonical decimal/plain
// rendering of the value, and an optional formatted Text, used when the
// literal was written with a non-canonical form (a hex integer, a KB/MB
// multiplier suffix, a quoted string with escapes). When Text is empty,
// callers should fall back to PureText.
type Literal struct {
	kind Kind

	b   bool
	i   int64
	u   uint64
	f   float64
	s   string
	sym intern.ID

	// pureText is the canonical textual form of the value (e.g. "26").
	pureText string
	// text is the as-written textual form, or "" if it equals pureText.
	text string

	radix  Radix
	suffix string // e.g. "KB", "MB", or "" for a plain integer.
}

// Empty returns the empty Literal.
func Empty() Literal { return Literal{} }

// Bool returns a bool Literal.
func Bool(v bool) Literal {
	text := "false"
	if v {
		text = "true"
	}
	return Literal{kind: KindBool, b: v, pureText: text}
}

// Int64 returns an int64 Literal with canonical decimal text.
func Int64(v int64) Literal {
	return Literal{kind: KindInt64, i: v, pureText: strconv.FormatInt(v, 10)}
}

// Int64Radix returns an int64 Literal that additionally remembers the radix
// and multiplier suffix it was written with, and the as-written text.
func Int64Radix(v int64, radix Radix, suffix, asWritten string) Literal {
	l := Int64(v)
	l.radix = radix
	l.suffix = suffix
	if asWritten != l.pureText {
		l.text = asWritten
	}
	return l
}

// Uint64 returns a uint64 Literal with canonical decimal text.
func Uint64(v uint64) Literal {
	return Literal{kind: KindUint64, u: v, pureText: strconv.FormatUint(v, 10)}
}

// Double returns a float64 Literal.
func Double(v float64) Literal {
	return Literal{kind: KindDouble, f: v, pureText: strconv.FormatFloat(v, 'g', -1, 64)}
}

// String returns a string Literal. text is the canonical (unescaped) value;
// quoted is the as-written, quoted-and-escaped source text.
func String(text, quoted string) Literal {
	l := Literal{kind: KindString, s: text, pureText: text}
	if quoted != "" && quoted != text {
		l.text = quoted
	}
	return l
}

// Symbol returns a Literal holding a handle into an [intern.Table].
func Symbol(id intern.ID, name string) Literal {
	return Literal{kind: KindSymbol, sym: id, s: name, pureText: name}
}

// Kind returns the tag of l.
func (l Literal) Kind() Kind { return l.kind }

// IsEmpty reports whether l carries no value.
func (l Literal) IsEmpty() bool { return l.kind == KindEmpty }

// errKind is returned by accessors when l.Kind() does not match.
type errKind struct {
	want, got Kind
}

func (e *errKind) Error() string {
	return fmt.Sprintf("literal: wanted %v literal, got %v", e.want, e.got)
}

// Bool returns l's boolean value, or an error if l is not [KindBool].
func (l Literal) Bool() (bool, error) {
	if l.kind != KindBool {
		return false, &errKind{KindBool, l.kind}
	}
	return l.b, nil
}

// Int64 returns l's signed integer value, or an error if l is not [KindInt64].
func (l Literal) Int64() (int64, error) {
	if l.kind != KindInt64 {
		return 0, &errKind{KindInt64, l.kind}
	}
	return l.i, nil
}

// Uint64 returns l's unsigned integer value, or an error if l is not
// [KindUint64].
func (l Literal) Uint64() (uint64, error) {
	if l.kind != KindUint64 {
		return 0, &errKind{KindUint64, l.kind}
	}
	return l.u, nil
}

// Double returns l's floating-point value, or an error if l is not
// [KindDouble].
func (l Literal) Double() (float64, error) {
	if l.kind != KindDouble {
		return 0, &errKind{KindDouble, l.kind}
	}
	return l.f, nil
}

// StringValue returns l's unescaped string contents, or an error if l is
// neither [KindString] nor [KindSymbol].
func (l Literal) StringValue() (string, error) {
	if l.kind != KindString && l.kind != KindSymbol {
		return "", &errKind{KindString, l.kind}
	}
	return l.s, nil
}

// Symbol returns l's interned handle, or an error if l is not [KindSymbol].
func (l Literal) Symbol() (intern.ID, error) {
	if l.kind != KindSymbol {
		return 0, &errKind{KindSymbol, l.kind}
	}
	return l.sym, nil
}

// Radix returns the radix an int64 literal was written in.
func (l Literal) Radix() Radix { return l.radix }

// Suffix returns the multiplier suffix (e.g. "KB") an integer literal carried,
// or "" if none.
func (l Literal) Suffix() string { return l.suffix }

// PureText returns the canonical textual form of l's value.
func (l Literal) PureText() string { return l.pureText }

// Text returns the as-written textual form of l, falling back to PureText
// when the literal carries no distinct formatted form.
func (l Literal) Text() string {
	if l.text != "" {
		return l.text
	}
	return l.pureText
}

// Equal reports whether l and other hold the same kind and value, ignoring
// any difference in as-written Text.
func (l Literal) Equal(other Literal) bool {
	if l.kind != other.kind {
		return false
	}
	switch l.kind {
	case KindEmpty:
		return true
	case KindBool:
		return l.b == other.b
	case KindInt64:
		return l.i == other.i
	case KindUint64:
		return l.u == other.u
	case KindDouble:
		return l.f == other.f
	case KindString:
		return l.s == other.s
	case KindSymbol:
		return l.sym == other.sym
	default:
		return false
	}
}

func (l Literal) String() string {
	return l.Text()
}
