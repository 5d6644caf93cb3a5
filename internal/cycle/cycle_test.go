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

package cycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaramod-go/yaramod/internal/cycle"
)

func TestErrorMessageJoinsChain(t *testing.T) {
	err := &cycle.Error[string]{Cycle: []string{"a.yar", "b.yar", "a.yar"}}
	assert.Equal(t, `cycle detected: "a.yar" -> "b.yar" -> "a.yar"`, err.Error())
}

func TestErrorIsGenericOverElementType(t *testing.T) {
	err := &cycle.Error[int]{Cycle: []int{1, 2, 1}}
	assert.Equal(t, "cycle detected: 1 -> 2 -> 1", err.Error())
}
