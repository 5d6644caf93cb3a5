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

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/builder"
	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/lexer"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/parser"
	"github.com/yaramod-go/yaramod/token"
)

func TestConditionBuilderAndOr(t *testing.T) {
	var syms intern.Table
	cb := builder.NewConditionBuilder(&syms)

	a := cb.StringId("a")
	b := cb.StringId("b")
	cb.And(a, b)

	text := cb.Stream().Text(token.RenderOptions{})
	assert.Equal(t, "$a and $b", text)
}

func TestConditionBuilderSyntheticParenForOrInsideAnd(t *testing.T) {
	var syms intern.Table
	cb := builder.NewConditionBuilder(&syms)

	a := cb.StringId("a")
	b := cb.StringId("b")
	orExpr := cb.Or(a, b)

	c := cb.StringId("c")
	cb.And(orExpr, c)

	text := cb.Stream().Text(token.RenderOptions{})
	assert.Equal(t, "($a or $b) and $c", text)
}

func TestRuleBuilderPlacesConditionAfterHeader(t *testing.T) {
	fb := builder.NewFileBuilder()
	rb := builder.NewRuleBuilder(fb.Symbols(), "r")
	rb.WithCondition(func(cb *builder.ConditionBuilder) ast.Expr {
		return cb.And(cb.StringId("a"), cb.StringId("b"))
	})
	rule := rb.Get()
	fb.AddRule(rule, rb.Stream())
	file := fb.Get()

	text := file.Stream.Text(token.RenderOptions{})
	assert.Equal(t, "rule r {\ncondition: $a and $b\n}", text)

	stream, err := lexer.Lex("r.yar", text)
	require.NoError(t, err)
	reparsed, err := parser.Parse("r.yar", stream, parser.Options{})
	require.NoError(t, err)
	bin, ok := reparsed.Rules[0].Condition.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, bin.Op)
}

func TestBuiltConditionRoundTripsThroughParser(t *testing.T) {
	var syms intern.Table
	cb := builder.NewConditionBuilder(&syms)
	cond := cb.And(cb.BoolLit(true), cb.IntLit(5))
	_ = cond

	text := cb.Stream().Text(token.RenderOptions{})
	src := "rule r { condition: " + text + " }"

	stream, err := lexer.Lex("b.yar", src)
	require.NoError(t, err)
	file, err := parser.Parse("b.yar", stream, parser.Options{})
	require.NoError(t, err)

	bin, ok := file.Rules[0].Condition.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, bin.Op)
}

func TestRuleBuilderTagsMetaAndStringsRoundTrip(t *testing.T) {
	fb := builder.NewFileBuilder()
	rb := builder.NewRuleBuilder(fb.Symbols(), "r")
	rb.WithTag("foo").WithTag("bar")
	rb.WithMeta("author", literal.String("jdoe", `"jdoe"`))
	rb.WithMeta("score", literal.Int64(5))
	rb.WithStringPlain("a", "hello", ast.ModNocase|ast.ModAscii)
	hex := builder.NewHexStringBuilder().Byte(0xAA).Wildcard().Byte(0xBB)
	rb.WithStringHex("b", hex, 0)
	rb.WithStringRegexp("c", "/foo.*bar/i", 0)
	rb.WithCondition(func(cb *builder.ConditionBuilder) ast.Expr {
		return cb.StringId("a")
	})

	rule := rb.Get()
	require.Len(t, rule.Tags, 2)
	require.Len(t, rule.Metas, 2)
	require.Len(t, rule.Strings, 3)
	assert.Equal(t, ast.StringPlain, rule.Strings[0].Kind)
	assert.Equal(t, ast.StringHex, rule.Strings[1].Kind)
	assert.Equal(t, ast.StringRegexp, rule.Strings[2].Kind)

	fb.AddRule(rule, rb.Stream())
	file := fb.Get()
	text := file.Stream.Text(token.RenderOptions{})

	stream, err := lexer.Lex("r.yar", text)
	require.NoError(t, err)
	reparsed, err := parser.Parse("r.yar", stream, parser.Options{})
	require.NoError(t, err)
	require.Len(t, reparsed.Rules, 1)
	rr := reparsed.Rules[0]
	require.Len(t, rr.Tags, 2)
	require.Len(t, rr.Metas, 2)
	require.Len(t, rr.Strings, 3)
	assert.Equal(t, ast.StringPlain, rr.Strings[0].Kind)
	assert.Equal(t, ast.ModNocase|ast.ModAscii, rr.Strings[0].Modifiers)
	assert.Equal(t, ast.StringHex, rr.Strings[1].Kind)
	assert.Equal(t, ast.StringRegexp, rr.Strings[2].Kind)
	assert.NoError(t, ast.CheckInvariants(reparsed))
}
