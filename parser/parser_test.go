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

package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/lexer"
	"github.com/yaramod-go/yaramod/parser"
)

func parseSrc(t *testing.T, src string) *ast.YaraFile {
	t.Helper()
	stream, err := lexer.Lex("test.yar", src)
	require.NoError(t, err)
	file, err := parser.Parse("test.yar", stream, parser.Options{})
	require.NoError(t, err)
	return file
}

func TestParseArithmeticPrecedence(t *testing.T) {
	file := parseSrc(t, "rule r { condition: 1 + 2 * 3 == 7 }")
	require.Len(t, file.Rules, 1)

	top, ok := file.Rules[0].Condition.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpEq, top.Op)

	left, ok := top.Left.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, left.Op)

	right, ok := left.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, right.Op)

	assert.NoError(t, ast.CheckInvariants(file))
}

func TestParseRuleWithTagsAndStrings(t *testing.T) {
	file := parseSrc(t, `
rule example : foo bar {
	strings:
		$a = "hello"
	condition:
		$a
}
`)
	require.Len(t, file.Rules, 1)
	r := file.Rules[0]
	require.Len(t, r.Tags, 2)
	require.Len(t, r.Strings, 1)
	assert.Equal(t, ast.StringPlain, r.Strings[0].Kind)

	_, ok := r.Condition.(*ast.StringId)
	assert.True(t, ok)
}

func TestParseStringMatchOperators(t *testing.T) {
	cases := []struct {
		src string
		op  ast.BinaryOp
	}{
		{`rule r { condition: "a" contains "b" }`, ast.OpContains},
		{`rule r { condition: "a" icontains "b" }`, ast.OpIcontains},
		{`rule r { condition: "a" startswith "b" }`, ast.OpStartswith},
		{`rule r { condition: "a" istartswith "b" }`, ast.OpIstartswith},
		{`rule r { condition: "a" endswith "b" }`, ast.OpEndswith},
		{`rule r { condition: "a" iendswith "b" }`, ast.OpIendswith},
	}
	for _, c := range cases {
		file := parseSrc(t, c.src)
		bin, ok := file.Rules[0].Condition.(*ast.Binary)
		require.True(t, ok, c.src)
		assert.Equal(t, c.op, bin.Op, c.src)
		assert.NoError(t, ast.CheckInvariants(file))
	}
}

func TestParseQuantifierOf(t *testing.T) {
	file := parseSrc(t, `
rule q {
	strings:
		$a = "x"
		$b = "y"
	condition:
		any of them
}
`)
	quant, ok := file.Rules[0].Condition.(*ast.Quantifier)
	require.True(t, ok)
	assert.Equal(t, ast.QuantOf, quant.Kind)
	_, ok = quant.Set.(*ast.Keyword)
	assert.True(t, ok)
	assert.Nil(t, quant.Body)
}

func TestParseQuantifierForOfWithBody(t *testing.T) {
	file := parseSrc(t, `
rule q {
	strings:
		$a = "x"
		$b = "y"
	condition:
		for any of them : ( filesize > 0 )
}
`)
	quant, ok := file.Rules[0].Condition.(*ast.Quantifier)
	require.True(t, ok)
	assert.Equal(t, ast.QuantOf, quant.Kind)
	require.NotNil(t, quant.Count)
	require.NotNil(t, quant.Body)
	assert.Equal(t, "filesize > 0", quant.Body.Text())
}

func TestParseIncludeGuardedDedup(t *testing.T) {
	dir := t.TempDir()
	leaf := filepath.Join(dir, "leaf.yar")
	require.NoError(t, os.WriteFile(leaf, []byte("rule leaf { condition: true }\n"), 0o644))

	main := filepath.Join(dir, "main.yar")
	src := `
include "leaf.yar"
include "leaf.yar"

rule main { condition: true }
`
	require.NoError(t, os.WriteFile(main, []byte(src), 0o644))

	file, err := parser.ParseFile(main, parser.IncludeGuarded)
	require.NoError(t, err)

	// Only the first "leaf.yar" include actually contributes its rule; the
	// second is a guarded duplicate and parses to an empty sub-file.
	require.Len(t, file.Rules, 2)
	assert.NotZero(t, file.Rules[0].Name)
}
