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

// Unary is the shared shape of the single-operand variants: Not, UnaryMinus,
// BitwiseNot, and ParenExpr.
type Unary struct {
	exprBase
	Operand Expr
}

// SetOperand replaces the operand per spec §4.2: the pointer swap and the
// stream splice are performed together by the caller (the modifying-visitor
// machinery in rewrite.go), this method only updates the AST-side pointer.
func (e *Unary) SetOperand(child Expr) { e.Operand = child }

// Not is logical negation: `not <expr>`.
type Not struct{ Unary }

func (e *Not) Accept(v Visitor) Result { return v.VisitNot(e) }

// UnaryMinus is arithmetic negation: `-<expr>`.
type UnaryMinus struct{ Unary }

func (e *UnaryMinus) Accept(v Visitor) Result { return v.VisitUnaryMinus(e) }

// BitwiseNot is `~<expr>`.
type BitwiseNot struct{ Unary }

func (e *BitwiseNot) Accept(v Visitor) Result { return v.VisitBitwiseNot(e) }

// ParenExpr is a parenthesized subexpression. Synthetic marks parens that
// exist only to encode precedence. Nothing in this module sets or reads it:
// package builder emits its precedence parens as bare tokens without a
// ParenExpr node, and package format prints every paren as it stands in the
// stream, never eliding one.
type ParenExpr struct {
	Unary
	Synthetic bool
}

func (e *ParenExpr) Accept(v Visitor) Result { return v.VisitParenExpr(e) }

// BinaryOp identifies which binary operator a [Binary] node applies.
type BinaryOp byte

const (
	OpAnd BinaryOp = iota
	OpOr
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNeq
	OpContains
	OpIcontains
	OpStartswith
	OpIstartswith
	OpEndswith
	OpIendswith
	OpIequals
	OpMatches
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpBitwiseXor
	OpBitwiseAnd
	OpBitwiseOr
	OpShl
	OpShr
)

// Binary is the shared shape of every binary-operator variant: logical
// (And, Or), relational, Contains/Matches, arithmetic, and bitwise.
type Binary struct {
	exprBase
	Op          BinaryOp
	Left, Right Expr
}

func (e *Binary) Accept(v Visitor) Result { return v.VisitBinary(e) }

// SetLeftOperand performs the AST-side half of spec §4.2's setter contract;
// see Unary.SetOperand.
func (e *Binary) SetLeftOperand(child Expr) { e.Left = child }

// SetRightOperand performs the AST-side half of spec §4.2's setter contract.
func (e *Binary) SetRightOperand(child Expr) { e.Right = child }
