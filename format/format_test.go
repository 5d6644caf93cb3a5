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

package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaramod-go/yaramod/format"
	"github.com/yaramod-go/yaramod/lexer"
	"github.com/yaramod-go/yaramod/parser"
	"github.com/yaramod-go/yaramod/token"
)

func parseSrc(t *testing.T, src string) *token.Stream {
	t.Helper()
	stream, err := lexer.Lex("t.yar", src)
	require.NoError(t, err)
	_, err = parser.Parse("t.yar", stream, parser.Options{})
	require.NoError(t, err)
	return stream
}

func TestAutoFormatIsIdempotent(t *testing.T) {
	stream := parseSrc(t, "rule r{condition:  true   }")

	format.Auto(stream, 4)
	first := stream.Text(token.RenderOptions{})

	format.Auto(stream, 4)
	second := stream.Text(token.RenderOptions{})

	assert.Equal(t, first, second)
	assert.True(t, stream.Formatted())
}

func TestAutoFormatNormalizesWhitespaceRuns(t *testing.T) {
	stream := parseSrc(t, "rule r {condition:    true}")
	format.Auto(stream, 4)
	text := stream.Text(token.RenderOptions{})
	for _, line := range strings.Split(text, "\n") {
		assert.NotContains(t, strings.TrimLeft(line, " "), "  ", "line %q has inline whitespace wider than a single space", line)
	}
}

func TestAutoFormatInsertsNewlineAfterBrace(t *testing.T) {
	stream := parseSrc(t, "rule r {condition: true}")
	format.Auto(stream, 4)
	text := stream.Text(token.RenderOptions{})
	assert.Contains(t, text, "{\n")
}

func TestAutoFormatIndentsNestedContent(t *testing.T) {
	stream := parseSrc(t, "rule r {condition: true}")
	format.Auto(stream, 4)
	text := stream.Text(token.RenderOptions{})
	assert.Contains(t, text, "{\n    condition:\n    true}")
}

func TestAutoFormatZeroIndentWidthEmitsNoIndentation(t *testing.T) {
	stream := parseSrc(t, "rule r {condition: true}")
	format.Auto(stream, 0)
	text := stream.Text(token.RenderOptions{})
	assert.Contains(t, text, "{\ncondition:\ntrue}")
}
