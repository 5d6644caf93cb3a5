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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
)

// buildTrueAndA constructs the token stream and expression tree for
// `true and $a`, wiring spans to the actual emitted tokens.
func buildTrueAndA(t *testing.T) (*token.Stream, *ast.Binary, *ast.BoolLit, *ast.StringId) {
	t.Helper()
	var syms intern.Table
	s := &token.Stream{}

	trueStart := s.EmplaceBack(token.KwTrue, "true")
	s.EmplaceBack(token.Whitespace, " ")
	s.EmplaceBack(token.KwAnd, "and")
	s.EmplaceBack(token.Whitespace, " ")
	aStart := s.EmplaceBack(token.StringIdentifier, "$a")

	trueLit := ast.NewBoolLit(s, ast.Span{First: trueStart, Last: trueStart.Next()}, literal.Bool(true))
	aExpr := ast.NewStringId(s, ast.Span{First: aStart, Last: aStart.Next()}, syms.Intern("a"))
	bin := ast.NewBinary(s, ast.Span{First: trueStart, Last: s.End()}, ast.TypeBool, ast.OpAnd, trueLit, aExpr)

	return s, bin, trueLit, aExpr
}

func TestCheckInvariantsValid(t *testing.T) {
	s, bin, _, _ := buildTrueAndA(t)
	file := ast.NewYaraFile(s)
	file.Rules = append(file.Rules, &ast.Rule{
		Condition: bin,
		Span:      ast.Span{First: s.Begin(), Last: s.End()},
	})
	assert.NoError(t, ast.CheckInvariants(file))
}

func TestCheckInvariantsDetectsOverlap(t *testing.T) {
	s, _, trueLit, aExpr := buildTrueAndA(t)
	// A deliberately malformed Binary whose children's spans overlap (Left
	// spans the whole thing, Right spans only $a) must be rejected.
	bad := ast.NewBinary(s, ast.Span{First: s.Begin(), Last: s.End()}, ast.TypeBool, ast.OpAnd,
		ast.NewBoolLit(s, ast.Span{First: s.Begin(), Last: s.End()}, literal.Bool(true)),
		aExpr)
	_ = trueLit

	file := ast.NewYaraFile(s)
	file.Rules = append(file.Rules, &ast.Rule{
		Condition: bad,
		Span:      ast.Span{First: s.Begin(), Last: s.End()},
	})
	assert.Error(t, ast.CheckInvariants(file))
}

// foldVisitor implements ast.ModifyingVisitor, folding `true and X` into `X`;
// every other node is left unchanged. It is deliberately minimal (no
// embedded ObservingVisitor) since a modifying visitor's Accept is consulted
// only after Rewrite has already walked children, and must not re-walk them.
type foldVisitor struct{}

func (foldVisitor) VisitStringId(*ast.StringId) ast.Result             { return ast.Keep() }
func (foldVisitor) VisitStringWildcard(*ast.StringWildcard) ast.Result { return ast.Keep() }
func (foldVisitor) VisitStringAt(*ast.StringAt) ast.Result             { return ast.Keep() }
func (foldVisitor) VisitStringInRange(*ast.StringInRange) ast.Result   { return ast.Keep() }
func (foldVisitor) VisitStringCount(*ast.StringCount) ast.Result       { return ast.Keep() }
func (foldVisitor) VisitStringOffset(*ast.StringOffset) ast.Result     { return ast.Keep() }
func (foldVisitor) VisitStringLength(*ast.StringLength) ast.Result     { return ast.Keep() }
func (foldVisitor) VisitNot(*ast.Not) ast.Result                       { return ast.Keep() }
func (foldVisitor) VisitUnaryMinus(*ast.UnaryMinus) ast.Result         { return ast.Keep() }
func (foldVisitor) VisitBitwiseNot(*ast.BitwiseNot) ast.Result         { return ast.Keep() }
func (foldVisitor) VisitParenExpr(*ast.ParenExpr) ast.Result           { return ast.Keep() }
func (foldVisitor) VisitBinary(n *ast.Binary) ast.Result {
	if n.Op != ast.OpAnd {
		return ast.Keep()
	}
	if lit, ok := n.Left.(*ast.BoolLit); ok {
		if v, _ := lit.Value.Bool(); v {
			return ast.Replace(n.Right)
		}
	}
	return ast.Keep()
}
func (foldVisitor) VisitQuantifier(*ast.Quantifier) ast.Result     { return ast.Keep() }
func (foldVisitor) VisitSetExpr(*ast.SetExpr) ast.Result           { return ast.Keep() }
func (foldVisitor) VisitRange(*ast.Range) ast.Result               { return ast.Keep() }
func (foldVisitor) VisitIdExpr(*ast.IdExpr) ast.Result             { return ast.Keep() }
func (foldVisitor) VisitStructAccess(*ast.StructAccess) ast.Result { return ast.Keep() }
func (foldVisitor) VisitArrayAccess(*ast.ArrayAccess) ast.Result   { return ast.Keep() }
func (foldVisitor) VisitFunctionCall(*ast.FunctionCall) ast.Result { return ast.Keep() }
func (foldVisitor) VisitBoolLit(*ast.BoolLit) ast.Result           { return ast.Keep() }
func (foldVisitor) VisitStringLit(*ast.StringLit) ast.Result       { return ast.Keep() }
func (foldVisitor) VisitIntLit(*ast.IntLit) ast.Result             { return ast.Keep() }
func (foldVisitor) VisitDoubleLit(*ast.DoubleLit) ast.Result       { return ast.Keep() }
func (foldVisitor) VisitKeyword(*ast.Keyword) ast.Result           { return ast.Keep() }
func (foldVisitor) VisitIntFunction(*ast.IntFunction) ast.Result   { return ast.Keep() }
func (foldVisitor) VisitRegexpExpr(*ast.RegexpExpr) ast.Result     { return ast.Keep() }

func TestRewriteTrueAndFolding(t *testing.T) {
	s, bin, _, aExpr := buildTrueAndA(t)

	result := ast.Rewrite(s, bin, foldVisitor{}, nil)

	require.Equal(t, aExpr, result)
	assert.Equal(t, "$a", s.Text(token.RenderOptions{}))
}

// countingVisitor records the kind of each node in the order it is visited,
// to check Walk's post-order, visit-once traversal order.
type countingVisitor struct {
	ast.ObservingVisitor
	order []string
}

func newCountingVisitor() *countingVisitor {
	cv := &countingVisitor{}
	cv.Self = cv
	return cv
}

func (cv *countingVisitor) VisitBoolLit(n *ast.BoolLit) ast.Result {
	cv.order = append(cv.order, "bool")
	return ast.Keep()
}

func (cv *countingVisitor) VisitStringId(n *ast.StringId) ast.Result {
	cv.order = append(cv.order, "string_id")
	return ast.Keep()
}

func (cv *countingVisitor) VisitBinary(n *ast.Binary) ast.Result {
	// Walk has already visited Left and Right by the time this is called,
	// since Walk recurses over children before invoking Accept on the node
	// itself.
	cv.order = append(cv.order, "binary")
	return ast.Keep()
}

// deleteLeftReplaceRightVisitor deletes a `not` operand outright and
// replaces a bare `$b` reference with a node built in a foreign stream, to
// exercise the promote-on-delete path when the surviving operand was itself
// replaced.
type deleteLeftReplaceRightVisitor struct {
	foldVisitor
	replacement ast.Expr
}

func (deleteLeftReplaceRightVisitor) VisitNot(*ast.Not) ast.Result { return ast.Remove() }

func (v deleteLeftReplaceRightVisitor) VisitStringId(n *ast.StringId) ast.Result {
	if n.Text() == "$b" {
		return ast.Replace(v.replacement)
	}
	return ast.Keep()
}

func TestRewriteBinaryPromotesReplacedSurvivorAfterSiblingDeletion(t *testing.T) {
	var syms intern.Table
	s := &token.Stream{}

	notStart := s.EmplaceBack(token.KwNot, "not")
	s.EmplaceBack(token.Whitespace, " ")
	aStart := s.EmplaceBack(token.StringIdentifier, "$a")
	aExpr := ast.NewStringId(s, ast.Span{First: aStart, Last: aStart.Next()}, syms.Intern("a"))
	notExpr := ast.NewNot(s, ast.Span{First: notStart, Last: s.End()}, aExpr)

	s.EmplaceBack(token.Whitespace, " ")
	s.EmplaceBack(token.KwAnd, "and")
	s.EmplaceBack(token.Whitespace, " ")
	bStart := s.EmplaceBack(token.StringIdentifier, "$b")
	bExpr := ast.NewStringId(s, ast.Span{First: bStart, Last: s.End()}, syms.Intern("b"))

	bin := ast.NewBinary(s, ast.Span{First: notStart, Last: s.End()}, ast.TypeBool, ast.OpAnd, notExpr, bExpr)

	donor := &token.Stream{}
	cStart := donor.EmplaceBack(token.StringIdentifier, "$c")
	cExpr := ast.NewStringId(donor, ast.Span{First: cStart, Last: donor.End()}, syms.Intern("c"))

	result := ast.Rewrite(s, bin, deleteLeftReplaceRightVisitor{replacement: cExpr}, nil)

	require.Equal(t, cExpr, result)
	assert.Equal(t, "$c", s.Text(token.RenderOptions{}))
}

func TestWalkPostOrder(t *testing.T) {
	_, bin, _, _ := buildTrueAndA(t)
	cv := newCountingVisitor()
	ast.Walk(bin, cv)
	assert.Equal(t, []string{"bool", "string_id", "binary"}, cv.order)
}
