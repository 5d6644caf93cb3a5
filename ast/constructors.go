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
	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
)

// This file collects the exported constructors for every variant, since
// exprBase is unexported (it is package-private bookkeeping, not part of
// the variant's public shape): both the parser and package builder build
// nodes exclusively through these.

func NewStringId(stream *token.Stream, span Span, name intern.ID) *StringId {
	return &StringId{exprBase: newBase(stream, span, TypeBool), Name: name}
}

func NewStringWildcard(stream *token.Stream, span Span, prefix intern.ID) *StringWildcard {
	return &StringWildcard{exprBase: newBase(stream, span, TypeBool), Prefix: prefix}
}

func NewStringAt(stream *token.Stream, span Span, name intern.ID, offset Expr) *StringAt {
	return &StringAt{exprBase: newBase(stream, span, TypeBool), Name: name, Offset: offset}
}

func NewStringInRange(stream *token.Stream, span Span, name intern.ID, r Expr) *StringInRange {
	return &StringInRange{exprBase: newBase(stream, span, TypeBool), Name: name, Range: r}
}

func NewStringCount(stream *token.Stream, span Span, name intern.ID) *StringCount {
	return &StringCount{exprBase: newBase(stream, span, TypeInt), Name: name}
}

func NewStringOffset(stream *token.Stream, span Span, name intern.ID, index Expr) *StringOffset {
	return &StringOffset{exprBase: newBase(stream, span, TypeInt), Name: name, Index: index}
}

func NewStringLength(stream *token.Stream, span Span, name intern.ID, index Expr) *StringLength {
	return &StringLength{exprBase: newBase(stream, span, TypeInt), Name: name, Index: index}
}

func NewNot(stream *token.Stream, span Span, operand Expr) *Not {
	return &Not{Unary{newBase(stream, span, TypeBool), operand}}
}

func NewUnaryMinus(stream *token.Stream, span Span, operand Expr) *UnaryMinus {
	return &UnaryMinus{Unary{newBase(stream, span, TypeInt), operand}}
}

func NewBitwiseNot(stream *token.Stream, span Span, operand Expr) *BitwiseNot {
	return &BitwiseNot{Unary{newBase(stream, span, TypeInt), operand}}
}

func NewParenExpr(stream *token.Stream, span Span, operand Expr, synthetic bool) *ParenExpr {
	return &ParenExpr{Unary{newBase(stream, span, operand.Type()), operand}, synthetic}
}

func NewBinary(stream *token.Stream, span Span, typ Type, op BinaryOp, left, right Expr) *Binary {
	return &Binary{exprBase: newBase(stream, span, typ), Op: op, Left: left, Right: right}
}

// NewQuantifier constructs a Quantifier node. For ForInt/ForString, v is the
// bound loop variable and count is nil; for Of, count is the quantifier
// count/keyword and v is zero. body is nil for a bodyless "N of <set>"
// boolean leaf.
func NewQuantifier(stream *token.Stream, span Span, kind QuantifierKind, v intern.ID, count, set, body Expr) *Quantifier {
	return &Quantifier{exprBase: newBase(stream, span, TypeBool), Kind: kind, Var: v, Count: count, Set: set, Body: body}
}

func NewSetExpr(stream *token.Stream, span Span, typ Type, elements []Expr) *SetExpr {
	return &SetExpr{exprBase: newBase(stream, span, typ), Elements: elements}
}

func NewRange(stream *token.Stream, span Span, low, high Expr) *Range {
	return &Range{exprBase: newBase(stream, span, TypeInt), Low: low, High: high}
}

func NewIdExpr(stream *token.Stream, span Span, typ Type, symbol intern.ID) *IdExpr {
	return &IdExpr{exprBase: newBase(stream, span, typ), Symbol: symbol}
}

func NewStructAccess(stream *token.Stream, span Span, typ Type, object Expr, field intern.ID) *StructAccess {
	return &StructAccess{exprBase: newBase(stream, span, typ), Object: object, Field: field}
}

func NewArrayAccess(stream *token.Stream, span Span, typ Type, array, accessor Expr) *ArrayAccess {
	return &ArrayAccess{exprBase: newBase(stream, span, typ), Array: array, Accessor: accessor}
}

func NewFunctionCall(stream *token.Stream, span Span, typ Type, callee Expr, args []Expr) *FunctionCall {
	return &FunctionCall{exprBase: newBase(stream, span, typ), Callee: callee, Args: args}
}

func NewBoolLit(stream *token.Stream, span Span, v literal.Literal) *BoolLit {
	return &BoolLit{exprBase: newBase(stream, span, TypeBool), Value: v}
}

func NewStringLit(stream *token.Stream, span Span, v literal.Literal) *StringLit {
	return &StringLit{exprBase: newBase(stream, span, TypeString), Value: v}
}

func NewIntLit(stream *token.Stream, span Span, v literal.Literal) *IntLit {
	return &IntLit{exprBase: newBase(stream, span, TypeInt), Value: v}
}

func NewDoubleLit(stream *token.Stream, span Span, v literal.Literal) *DoubleLit {
	return &DoubleLit{exprBase: newBase(stream, span, TypeFloat), Value: v}
}

func NewKeyword(stream *token.Stream, span Span, which KeywordKind) *Keyword {
	typ := TypeInt
	if which == KwAll || which == KwAny || which == KwThem {
		typ = TypeBool
	}
	return &Keyword{exprBase: newBase(stream, span, typ), Which: which}
}

func NewIntFunction(stream *token.Stream, span Span, name intern.ID, arg Expr) *IntFunction {
	return &IntFunction{exprBase: newBase(stream, span, TypeInt), Name: name, Arg: arg}
}

func NewRegexpExpr(stream *token.Stream, span Span, v literal.Literal) *RegexpExpr {
	return &RegexpExpr{exprBase: newBase(stream, span, TypeRegexp), Value: v}
}
