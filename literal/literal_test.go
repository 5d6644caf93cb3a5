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

package literal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/literal"
)

func TestIntRadixPreservesAsWrittenText(t *testing.T) {
	l := literal.Int64Radix(26, literal.RadixHex, "", "0x1A")
	assert.Equal(t, "26", l.PureText())
	assert.Equal(t, "0x1A", l.Text())

	v, err := l.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(26), v)
}

func TestIntRadixFallsBackToPureTextWhenEqual(t *testing.T) {
	l := literal.Int64Radix(26, literal.RadixDecimal, "", "26")
	assert.Equal(t, "26", l.Text())
}

func TestKBSuffixRoundTrips(t *testing.T) {
	l := literal.Int64Radix(2048, literal.RadixDecimal, "KB", "2KB")
	assert.Equal(t, "KB", l.Suffix())
	assert.Equal(t, "2KB", l.Text())
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	l := literal.Bool(true)
	_, err := l.Int64()
	require.Error(t, err)

	b, err := l.Bool()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestStringLiteralPreservesQuotedForm(t *testing.T) {
	l := literal.String(`a"b`, `"a\"b"`)
	assert.Equal(t, `a"b`, l.PureText())
	assert.Equal(t, `"a\"b"`, l.Text())

	s, err := l.StringValue()
	require.NoError(t, err)
	assert.Equal(t, `a"b`, s)
}

func TestSymbolStoresInternedID(t *testing.T) {
	var tbl intern.Table
	id := tbl.Intern("pe")

	l := literal.Symbol(id, "pe")
	got, err := l.Symbol()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	s, err := l.StringValue()
	require.NoError(t, err)
	assert.Equal(t, "pe", s)
}

func TestEqualIgnoresAsWrittenText(t *testing.T) {
	a := literal.Int64Radix(26, literal.RadixHex, "", "0x1A")
	b := literal.Int64(26)
	assert.True(t, a.Equal(b))

	c := literal.Int64(27)
	assert.False(t, a.Equal(c))
}

func TestEmptyLiteral(t *testing.T) {
	var l literal.Literal
	assert.True(t, l.IsEmpty())
	assert.Equal(t, literal.KindEmpty, l.Kind())
	assert.True(t, l.Equal(literal.Empty()))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bool", literal.KindBool.String())
	assert.Equal(t, "symbol", literal.KindSymbol.String())
}
