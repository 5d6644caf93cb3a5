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

package builder

import (
	"fmt"
	"strings"

	"github.com/yaramod-go/yaramod/token"
)

// HexStringBuilder incrementally constructs a hex string literal body
// (`{ AA ?? BB }`), including jump and alternation syntax.
type HexStringBuilder struct {
	parts []string
}

// NewHexStringBuilder returns an empty HexStringBuilder.
func NewHexStringBuilder() *HexStringBuilder { return &HexStringBuilder{} }

// Byte appends a literal hex byte, e.g. Byte(0xAA) appends "AA".
func (b *HexStringBuilder) Byte(v byte) *HexStringBuilder {
	b.parts = append(b.parts, fmt.Sprintf("%02X", v))
	return b
}

// Wildcard appends a fully wildcarded byte: "??".
func (b *HexStringBuilder) Wildcard() *HexStringBuilder {
	b.parts = append(b.parts, "??")
	return b
}

// Jump appends a bounded jump `[low-high]`. A negative high denotes an
// unbounded jump `[low-]`; low == high == n renders the fixed-width `[n]`
// form used by YARA when both bounds coincide.
func (b *HexStringBuilder) Jump(low, high int) *HexStringBuilder {
	switch {
	case low == high:
		b.parts = append(b.parts, fmt.Sprintf("[%d]", low))
	case high < 0:
		b.parts = append(b.parts, fmt.Sprintf("[%d-]", low))
	default:
		b.parts = append(b.parts, fmt.Sprintf("[%d-%d]", low, high))
	}
	return b
}

// Text renders the hex string body, e.g. "{ AA ?? BB }".
func (b *HexStringBuilder) Text() string {
	return "{ " + strings.Join(b.parts, " ") + " }"
}

// Get renders the hex string body into a single HexStringLit token, given
// the tokens are appended to s immediately before the caller's `before`
// iterator.
func (b *HexStringBuilder) Get(s *token.Stream, before token.Iter) token.Iter {
	return s.Emplace(before, token.NewToken(token.HexStringLit, b.Text()))
}
