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

import "github.com/yaramod-go/yaramod/token"

// EnsureWhitespace inserts a single space token before it if the preceding
// token is significant (not itself whitespace or a newline), guaranteeing
// the round-trip-parseability invariant spec §4.4 requires between adjacent
// significant tokens. It is a no-op at the start of a stream.
func EnsureWhitespace(s *token.Stream, it token.Iter) {
	prev, ok := s.Predecessor(it)
	if !ok {
		return
	}
	k := prev.Token().Kind
	if k == token.Whitespace || k == token.Newline {
		return
	}
	s.Emplace(it, token.NewToken(token.Whitespace, " "))
}
