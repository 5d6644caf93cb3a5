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

package widthx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaramod-go/yaramod/internal/ext/widthx"
)

func TestStringASCII(t *testing.T) {
	assert.Equal(t, 5, widthx.String("hello"))
}

func TestStringIgnoresNewlines(t *testing.T) {
	assert.Equal(t, 5, widthx.String("he\nllo"))
}

func TestStringWideRune(t *testing.T) {
	// A fullwidth CJK character occupies two terminal columns.
	assert.Equal(t, 2, widthx.String("中"))
}

func TestStringEmpty(t *testing.T) {
	assert.Equal(t, 0, widthx.String(""))
}
