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

package parser

import (
	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
	"github.com/yaramod-go/yaramod/yaraerr"
)

// binOps maps an infix token kind to its ast.BinaryOp and binding power.
// Higher power binds tighter. This table is the whole of the precedence
// table: `or` loosest, then `and`, then relational/contains/matches, then
// bitwise, then additive, then multiplicative, matching YARA 4.x grammar.
var binOps = map[token.Kind]struct {
	op    ast.BinaryOp
	power int
}{
	token.KwOr:          {ast.OpOr, 1},
	token.KwAnd:         {ast.OpAnd, 2},
	token.Lt:            {ast.OpLt, 3},
	token.Gt:            {ast.OpGt, 3},
	token.Le:            {ast.OpLe, 3},
	token.Ge:            {ast.OpGe, 3},
	token.Eq:            {ast.OpEq, 3},
	token.Neq:           {ast.OpNeq, 3},
	token.KwContains:    {ast.OpContains, 3},
	token.KwIcontains:   {ast.OpIcontains, 3},
	token.KwStartswith:  {ast.OpStartswith, 3},
	token.KwIstartswith: {ast.OpIstartswith, 3},
	token.KwEndswith:    {ast.OpEndswith, 3},
	token.KwIendswith:   {ast.OpIendswith, 3},
	token.KwIequals:     {ast.OpIequals, 3},
	token.KwMatches:     {ast.OpMatches, 3},
	token.Pipe:          {ast.OpBitwiseOr, 4},
	token.Caret:         {ast.OpBitwiseXor, 5},
	token.Amp:           {ast.OpBitwiseAnd, 6},
	token.Shl:           {ast.OpShl, 7},
	token.Shr:           {ast.OpShr, 7},
	token.Plus:          {ast.OpPlus, 8},
	token.Minus:         {ast.OpMinus, 8},
	token.Star:          {ast.OpMul, 9},
	token.Slash:         {ast.OpDiv, 9},
	token.Percent:       {ast.OpMod, 9},
}

// binaryType returns the expression-type tag a binary operator result
// carries: relational/logical operators yield bool, arithmetic/bitwise
// yield int.
func binaryType(op ast.BinaryOp) ast.Type {
	switch op {
	case ast.OpPlus, ast.OpMinus, ast.OpMul, ast.OpDiv, ast.OpMod,
		ast.OpBitwiseAnd, ast.OpBitwiseOr, ast.OpBitwiseXor, ast.OpShl, ast.OpShr:
		return ast.TypeInt
	default:
		return ast.TypeBool
	}
}

// parseExpr parses a condition expression using precedence climbing; see
// binOps for the full binding-power table.
func (p *parser) parseExpr(minPower int) ast.Expr {
	left := p.parseUnary()
	for {
		info, ok := binOps[p.peekKind()]
		if !ok || info.power < minPower {
			return left
		}
		p.advance()
		right := p.parseExpr(info.power + 1)
		span := ast.Span{First: left.Span().First, Last: right.Span().Last}
		left = ast.NewBinary(p.stream, span, binaryType(info.op), info.op, left, right)
	}
}

func (p *parser) parseUnary() ast.Expr {
	start := p.cur
	switch p.peekKind() {
	case token.KwNot:
		p.advance()
		operand := p.parseUnary()
		return ast.NewNot(p.stream, ast.Span{First: start, Last: operand.Span().Last}, operand)
	case token.Minus:
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryMinus(p.stream, ast.Span{First: start, Last: operand.Span().Last}, operand)
	case token.Tilde:
		p.advance()
		operand := p.parseUnary()
		return ast.NewBitwiseNot(p.stream, ast.Span{First: start, Last: operand.Span().Last}, operand)
	case token.KwFor:
		return p.parseFor()
	case token.KwAll, token.KwAny:
		return p.parseOf()
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by any chain of `.field`
// / `[accessor]` / `(args...)` suffixes.
func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		start := e.Span().First
		switch p.peekKind() {
		case token.Dot:
			p.advance()
			fieldTok := p.expect(token.Identifier)
			span := ast.Span{First: start, Last: fieldTok.Next()}
			e = ast.NewStructAccess(p.stream, span, ast.TypeObject, e, p.intern(fieldTok.Token().Text))
		case token.LBracket:
			p.advance()
			idx := p.parseExpr(0)
			end := p.expect(token.RBracket)
			span := ast.Span{First: start, Last: end.Next()}
			e = ast.NewArrayAccess(p.stream, span, ast.TypeObject, e, idx)
		case token.LParen:
			p.advance()
			var args []ast.Expr
			if !p.at(token.RParen) {
				args = append(args, p.parseExpr(0))
				for p.at(token.Comma) {
					p.advance()
					args = append(args, p.parseExpr(0))
				}
			}
			end := p.expect(token.RParen)
			span := ast.Span{First: start, Last: end.Next()}
			e = ast.NewFunctionCall(p.stream, span, ast.TypeObject, e, args)
		default:
			return e
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	start := p.cur
	switch p.peekKind() {
	case token.LParen:
		p.advance()
		inner := p.parseExpr(0)
		// A parenthesized expr followed by `..` is a Range literal.
		if p.at(token.DotDot) {
			p.advance()
			high := p.parseExpr(0)
			end := p.expect(token.RParen)
			return ast.NewRange(p.stream, ast.Span{First: start, Last: end.Next()}, inner, high)
		}
		// A parenthesized comma list is a SetExpr.
		if p.at(token.Comma) {
			elems := []ast.Expr{inner}
			for p.at(token.Comma) {
				p.advance()
				elems = append(elems, p.parseExpr(0))
			}
			end := p.expect(token.RParen)
			return ast.NewSetExpr(p.stream, ast.Span{First: start, Last: end.Next()}, ast.TypeUndefined, elems)
		}
		end := p.expect(token.RParen)
		return ast.NewParenExpr(p.stream, ast.Span{First: start, Last: end.Next()}, inner, false)

	case token.StringIdentifier:
		idTok := p.advance()
		name := idTok.Token().Text
		if name[len(name)-1] == '*' {
			end := idTok.Next()
			return ast.NewStringWildcard(p.stream, ast.Span{First: start, Last: end}, p.intern(name[:len(name)-1]))
		}
		sym := p.intern(name)
		if p.at(token.KwAt) {
			p.advance()
			offset := p.parseExpr(9)
			return ast.NewStringAt(p.stream, ast.Span{First: start, Last: offset.Span().Last}, sym, offset)
		}
		if p.at(token.KwIn) {
			p.advance()
			rng := p.parseExpr(0)
			return ast.NewStringInRange(p.stream, ast.Span{First: start, Last: rng.Span().Last}, sym, rng)
		}
		return ast.NewStringId(p.stream, ast.Span{First: start, Last: idTok.Next()}, sym)

	case token.StringCount:
		idTok := p.advance()
		return ast.NewStringCount(p.stream, ast.Span{First: start, Last: idTok.Next()}, p.intern(idTok.Token().Text))

	case token.StringOffset:
		idTok := p.advance()
		name := p.intern(idTok.Token().Text)
		var idx ast.Expr
		if p.at(token.LBracket) {
			p.advance()
			idx = p.parseExpr(0)
			end := p.expect(token.RBracket)
			return ast.NewStringOffset(p.stream, ast.Span{First: start, Last: end.Next()}, name, idx)
		}
		return ast.NewStringOffset(p.stream, ast.Span{First: start, Last: idTok.Next()}, name, nil)

	case token.StringLength:
		idTok := p.advance()
		name := p.intern(idTok.Token().Text)
		var idx ast.Expr
		if p.at(token.LBracket) {
			p.advance()
			idx = p.parseExpr(0)
			end := p.expect(token.RBracket)
			return ast.NewStringLength(p.stream, ast.Span{First: start, Last: end.Next()}, name, idx)
		}
		return ast.NewStringLength(p.stream, ast.Span{First: start, Last: idTok.Next()}, name, nil)

	case token.KwTrue:
		t := p.advance()
		return ast.NewBoolLit(p.stream, ast.Span{First: start, Last: t.Next()}, literal.Bool(true))
	case token.KwFalse:
		t := p.advance()
		return ast.NewBoolLit(p.stream, ast.Span{First: start, Last: t.Next()}, literal.Bool(false))

	case token.IntLit:
		t := p.advance()
		return ast.NewIntLit(p.stream, ast.Span{First: start, Last: t.Next()}, t.Token().Value)
	case token.DoubleLit:
		t := p.advance()
		return ast.NewDoubleLit(p.stream, ast.Span{First: start, Last: t.Next()}, t.Token().Value)
	case token.StringLit:
		t := p.advance()
		return ast.NewStringLit(p.stream, ast.Span{First: start, Last: t.Next()}, t.Token().Value)

	case token.KwFilesize:
		t := p.advance()
		return ast.NewKeyword(p.stream, ast.Span{First: start, Last: t.Next()}, ast.KwFilesize)
	case token.KwEntrypoint:
		t := p.advance()
		return ast.NewKeyword(p.stream, ast.Span{First: start, Last: t.Next()}, ast.KwEntrypoint)
	case token.KwThem:
		t := p.advance()
		return ast.NewKeyword(p.stream, ast.Span{First: start, Last: t.Next()}, ast.KwThem)

	case token.Slash:
		from := p.cur
		p.parseRegexpBody()
		return ast.NewRegexpExpr(p.stream, ast.Span{First: from, Last: p.cur}, literal.Empty())

	case token.Identifier:
		idTok := p.advance()
		text := idTok.Token().Text
		if p.at(token.LParen) {
			// int32/uint16be/... sized reads are syntactically calls but
			// modeled as the dedicated IntFunction variant.
			p.advance()
			arg := p.parseExpr(0)
			end := p.expect(token.RParen)
			return ast.NewIntFunction(p.stream, ast.Span{First: start, Last: end.Next()}, p.intern(text), arg)
		}
		return ast.NewIdExpr(p.stream, ast.Span{First: start, Last: idTok.Next()}, ast.TypeObject, p.intern(text))

	default:
		p.fail(yaraerr.SyntaxError, "unexpected token %v in expression", p.peekKind())
		return nil
	}
}

// parseOf parses `<all|any> of <set>`.
func (p *parser) parseOf() ast.Expr {
	start := p.cur
	kw := ast.KwAll
	if p.at(token.KwAny) {
		kw = ast.KwAny
	}
	count := ast.NewKeyword(p.stream, ast.Span{First: start, Last: p.cur.Next()}, kw)
	p.advance()
	p.expect(token.KwOf)
	set := p.parseQuantifierSet()
	return ast.NewQuantifier(p.stream, ast.Span{First: start, Last: set.Span().Last}, ast.QuantOf, 0, count, set, nil)
}

// parseFor parses `for <var> in <set> : ( <body> )` and `for <count> of <set> : (<body>)`.
func (p *parser) parseFor() ast.Expr {
	start := p.cur
	p.advance() // `for`

	if p.at(token.KwAll) || p.at(token.KwAny) || p.at(token.IntLit) {
		countStart := p.cur
		var count ast.Expr
		if p.at(token.IntLit) {
			t := p.advance()
			count = ast.NewIntLit(p.stream, ast.Span{First: countStart, Last: t.Next()}, t.Token().Value)
		} else {
			kw := ast.KwAll
			if p.at(token.KwAny) {
				kw = ast.KwAny
			}
			t := p.advance()
			count = ast.NewKeyword(p.stream, ast.Span{First: countStart, Last: t.Next()}, kw)
		}
		p.expect(token.KwOf)
		set := p.parseQuantifierSet()
		p.expect(token.Colon)
		p.expect(token.LParen)
		body := p.parseExpr(0)
		end := p.expect(token.RParen)
		return ast.NewQuantifier(p.stream, ast.Span{First: start, Last: end.Next()}, ast.QuantOf, 0, count, set, body)
	}

	varTok := p.expect(token.Identifier)
	v := p.intern(varTok.Token().Text)
	p.expect(token.KwIn)
	set := p.parseExpr(0)
	p.expect(token.Colon)
	p.expect(token.LParen)
	body := p.parseExpr(0)
	end := p.expect(token.RParen)
	return ast.NewQuantifier(p.stream, ast.Span{First: start, Last: end.Next()}, ast.QuantForInt, v, nil, set, body)
}

// parseQuantifierSet parses `them`, `($a, $b*)`, or a parenthesized integer
// set as the set operand of an `of`/`for ... of` quantifier.
func (p *parser) parseQuantifierSet() ast.Expr {
	start := p.cur
	if p.at(token.KwThem) {
		t := p.advance()
		return ast.NewKeyword(p.stream, ast.Span{First: start, Last: t.Next()}, ast.KwThem)
	}
	p.expect(token.LParen)
	var elems []ast.Expr
	elems = append(elems, p.parseUnary())
	for p.at(token.Comma) {
		p.advance()
		elems = append(elems, p.parseUnary())
	}
	end := p.expect(token.RParen)
	return ast.NewSetExpr(p.stream, ast.Span{First: start, Last: end.Next()}, ast.TypeUndefined, elems)
}
