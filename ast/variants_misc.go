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
)

// QuantifierKind distinguishes the three quantifier-shaped iteration forms.
type QuantifierKind byte

const (
	QuantForInt QuantifierKind = iota
	QuantForString
	QuantOf
)

// Quantifier is the shared shape of ForInt, ForString, and Of: an optional
// bound variable, an iterated set, and a body. Of (and the bodyless "N of
// <set>" form nested inside a for) carries Count instead of Var; ForInt and
// ForString carry Var instead of Count. A `for <count> of <set> : (<body>)`
// condition is a Kind == QuantOf node that additionally has Body set (bare
// "<count> of <set>" used directly as a boolean leaves Body nil).
type Quantifier struct {
	exprBase
	Kind  QuantifierKind
	Var   intern.ID // bound loop variable for ForInt/ForString; zero otherwise
	Count Expr       // the quantifier count/keyword for Of; nil for ForInt/ForString
	Set   Expr
	Body  Expr // nil for a bodyless "N of <set>" boolean leaf
}

func (e *Quantifier) Accept(v Visitor) Result { return v.VisitQuantifier(e) }

// SetSet, SetCount, and SetBody patch the Set/Count/Body children in place;
// used by the modifying-visitor machinery to splice in rewritten children.
func (e *Quantifier) SetSet(child Expr)   { e.Set = child }
func (e *Quantifier) SetCount(child Expr) { e.Count = child }
func (e *Quantifier) SetBody(child Expr)  { e.Body = child }

// SetExpr is a set literal: `($a, $b, $c)` or `(1, 2, 3)`.
type SetExpr struct {
	exprBase
	Elements []Expr
}

func (e *SetExpr) Accept(v Visitor) Result { return v.VisitSetExpr(e) }

// Range is `(<low> .. <high>)`.
type Range struct {
	exprBase
	Low, High Expr
}

func (e *Range) Accept(v Visitor) Result { return v.VisitRange(e) }

// IdExpr is a bare identifier reference (a module name, a rule name used as
// a condition, or the first component of a StructAccess/ArrayAccess chain).
type IdExpr struct {
	exprBase
	Symbol intern.ID
}

func (e *IdExpr) Accept(v Visitor) Result { return v.VisitIdExpr(e) }

// StructAccess is `<obj>.<field>`.
type StructAccess struct {
	exprBase
	Object Expr
	Field  intern.ID
}

func (e *StructAccess) Accept(v Visitor) Result { return v.VisitStructAccess(e) }

// ArrayAccess is `<array>[<accessor>]`.
type ArrayAccess struct {
	exprBase
	Array    Expr
	Accessor Expr
}

func (e *ArrayAccess) Accept(v Visitor) Result { return v.VisitArrayAccess(e) }

// FunctionCall is `<callee>(<args>...)`.
type FunctionCall struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (e *FunctionCall) Accept(v Visitor) Result { return v.VisitFunctionCall(e) }

// BoolLit is a literal `true`/`false`.
type BoolLit struct {
	exprBase
	Value literal.Literal
}

func (e *BoolLit) Accept(v Visitor) Result { return v.VisitBoolLit(e) }

// StringLit is a quoted string literal used inside expressions (as opposed
// to a YARA string definition).
type StringLit struct {
	exprBase
	Value literal.Literal
}

func (e *StringLit) Accept(v Visitor) Result { return v.VisitStringLit(e) }

// IntLit is an integer literal; its Value preserves the written radix.
type IntLit struct {
	exprBase
	Value literal.Literal
}

func (e *IntLit) Accept(v Visitor) Result { return v.VisitIntLit(e) }

// DoubleLit is a floating-point literal.
type DoubleLit struct {
	exprBase
	Value literal.Literal
}

func (e *DoubleLit) Accept(v Visitor) Result { return v.VisitDoubleLit(e) }

// KeywordKind distinguishes the parameterless keyword expressions.
type KeywordKind byte

const (
	KwFilesize KeywordKind = iota
	KwEntrypoint
	KwAll
	KwAny
	KwThem
)

// Keyword is a parameterless keyword expression: filesize, entrypoint, all,
// any, or them.
type Keyword struct {
	exprBase
	Which KeywordKind
}

func (e *Keyword) Accept(v Visitor) Result { return v.VisitKeyword(e) }

// IntFunction is a sized integer read, e.g. `int32(x)` or `uint16be(x)`.
type IntFunction struct {
	exprBase
	Name intern.ID
	Arg  Expr
}

func (e *IntFunction) Accept(v Visitor) Result { return v.VisitIntFunction(e) }

// RegexpExpr is an inline regular expression used as a condition operand
// (as opposed to a `Regexp` string definition).
type RegexpExpr struct {
	exprBase
	Value literal.Literal
}

func (e *RegexpExpr) Accept(v Visitor) Result { return v.VisitRegexpExpr(e) }
