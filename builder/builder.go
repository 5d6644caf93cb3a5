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

// Package builder provides fluent constructors for rules, conditions, and
// string definitions. Every builder method appends canonical tokens to a
// stream private to that builder; finalizing a builder (Get) yields the
// completed node together with its span in that private stream. A
// [FileBuilder] merges every child builder's stream into its own master
// stream via token.Stream.MoveAppend when the file is finalized, per spec
// §4.4 ("the containing YaraFile builder performs move_append to merge
// child streams into the master stream upon finalization").
package builder

import (
	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
)

// ConditionBuilder incrementally constructs a condition expression. Each
// method call emits into the builder's private stream. And and Or put a
// single space on each side of the operator keyword; a synthetic paren is
// emitted directly against the tokens it encloses, with no whitespace
// between them.
type ConditionBuilder struct {
	stream token.Stream
	syms   *intern.Table
}

// NewConditionBuilder constructs an empty ConditionBuilder interning symbols
// into syms.
func NewConditionBuilder(syms *intern.Table) *ConditionBuilder {
	return &ConditionBuilder{syms: syms}
}

func (b *ConditionBuilder) space() {
	b.stream.EmplaceBack(token.Whitespace, " ")
}

// StringId appends a bare `$name` reference and returns it as an Expr.
func (b *ConditionBuilder) StringId(name string) ast.Expr {
	start := b.stream.EmplaceBack(token.StringIdentifier, "$"+name)
	return ast.NewStringId(&b.stream, ast.Span{First: start, Last: b.stream.End()}, b.syms.Intern(name))
}

// BoolLit appends a `true`/`false` literal.
func (b *ConditionBuilder) BoolLit(v bool) ast.Expr {
	kind := token.KwFalse
	if v {
		kind = token.KwTrue
	}
	start := b.stream.EmplaceBack(kind, boolText(v))
	return ast.NewBoolLit(&b.stream, ast.Span{First: start, Last: b.stream.End()}, literal.Bool(v))
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// IntLit appends a decimal integer literal.
func (b *ConditionBuilder) IntLit(v int64) ast.Expr {
	lit := literal.Int64(v)
	start := b.stream.EmplaceBack(token.IntLit, lit.PureText())
	return ast.NewIntLit(&b.stream, ast.Span{First: start, Last: b.stream.End()}, lit)
}

// And joins left and right with `and`, wrapping either side in a
// synthetic, precedence-preserving paren if it is itself a looser-binding
// `or` (per spec §4.4's synthetic-paren precedence-encoding rule).
func (b *ConditionBuilder) And(left, right ast.Expr) ast.Expr {
	return b.binary(left, right, token.KwAnd, "and", ast.OpAnd, looserThanAnd)
}

// Or joins left and right with `or`.
func (b *ConditionBuilder) Or(left, right ast.Expr) ast.Expr {
	return b.binary(left, right, token.KwOr, "or", ast.OpOr, func(ast.Expr) bool { return false })
}

func looserThanAnd(e ast.Expr) bool {
	bin, ok := e.(*ast.Binary)
	return ok && bin.Op == ast.OpOr
}

// binary splices the `<kind>` token and its surrounding spaces in between
// left's and right's already-built tokens. Both operands must already be
// present in b.stream, in that left-then-right order (the order every
// builder method in this package appends in); the operator is inserted
// immediately before right's first token rather than appended at the
// stream's current end, since left and right were built at different
// points and the stream may have grown since.
func (b *ConditionBuilder) binary(left, right ast.Expr, kind token.Kind, text string, op ast.BinaryOp, needsParen func(ast.Expr) bool) ast.Expr {
	before := right.Span().First
	start := left.Span().First
	if needsParen(left) {
		// left's span may end at the End sentinel, which now lies past
		// right; close left's paren right before right's first token.
		start = b.stream.Emplace(start, token.NewToken(token.LParen, "("))
		b.stream.Emplace(before, token.NewToken(token.RParen, ")"))
	}
	b.stream.Emplace(before, token.NewToken(token.Whitespace, " "))
	b.stream.Emplace(before, token.NewToken(kind, text))
	b.stream.Emplace(before, token.NewToken(token.Whitespace, " "))
	b.moveIn(right, needsParen)
	span := ast.Span{First: start, Last: b.stream.End()}
	return ast.NewBinary(&b.stream, span, ast.TypeBool, op, left, right)
}

// moveIn wraps child's already-built tokens in a synthetic paren pair when
// needsParen reports true, splicing the parens in place around its existing
// span (child must already belong to b.stream; nodes from other streams are
// out of scope for this simplified builder, matching FileBuilder's "never
// share a stream across unrelated rules" invariant).
func (b *ConditionBuilder) moveIn(child ast.Expr, needsParen func(ast.Expr) bool) token.Iter {
	start := child.Span().First
	if needsParen(child) {
		open := b.stream.Emplace(child.Span().First, token.NewToken(token.LParen, "("))
		b.stream.Emplace(child.Span().Last, token.NewToken(token.RParen, ")"))
		return open
	}
	return start
}

// Get finalizes the builder, returning the constructed root expression.
func (b *ConditionBuilder) Get(root ast.Expr) ast.Expr { return root }

// Stream exposes the builder's private stream, for a FileBuilder to
// move_append on finalization.
func (b *ConditionBuilder) Stream() *token.Stream { return &b.stream }
