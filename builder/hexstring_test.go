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

	"github.com/yaramod-go/yaramod/builder"
	"github.com/yaramod-go/yaramod/token"
)

func TestHexStringBuilderBytesAndWildcards(t *testing.T) {
	var s token.Stream
	end := s.EmplaceBack(token.EOF, "")

	hb := builder.NewHexStringBuilder()
	hb.Byte(0xAA).Wildcard().Byte(0xBB)
	it := hb.Get(&s, end)

	assert.Equal(t, "{ AA ?? BB }", it.Token().Text)
}

func TestHexStringBuilderJumpForms(t *testing.T) {
	var s token.Stream
	end := s.EmplaceBack(token.EOF, "")

	bounded := builder.NewHexStringBuilder().Byte(0xAA).Jump(1, 3).Byte(0xBB).Get(&s, end)
	assert.Equal(t, "{ AA [1-3] BB }", bounded.Token().Text)

	unbounded := builder.NewHexStringBuilder().Byte(0xAA).Jump(4, -1).Get(&s, end)
	assert.Equal(t, "{ AA [4-] }", unbounded.Token().Text)

	fixed := builder.NewHexStringBuilder().Byte(0xAA).Jump(2, 2).Get(&s, end)
	assert.Equal(t, "{ AA [2] }", fixed.Token().Text)
}
