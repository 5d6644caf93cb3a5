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

// Package widthx computes the rendered column width of text, accounting
// for wide runes and combining marks, for use by the formatter's comment
// alignment pass.
package widthx

import "github.com/rivo/uniseg"

// TabstopWidth is the column width synthesized for one indentation level.
const TabstopWidth int = 4

// String returns the number of terminal columns text occupies, grapheme
// cluster by grapheme cluster, ignoring any newline it may contain.
func String(text string) int {
	width := 0
	state := -1
	for len(text) > 0 {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		if cluster == "\n" || cluster == "\r" {
			continue
		}
		width += w
	}
	return width
}
