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

//go:build yaramod_debug

package token

import (
	"fmt"

	"github.com/petermattis/goid"
)

// checkOwner is compiled in only under the yaramod_debug build tag; it
// panics if s is mutated from a goroutine other than the one that created
// it, making violations of the single-threaded ownership model in spec §5
// ("a YaraFile and its TokenStream are not safe for concurrent mutation")
// fail loudly in tests instead of corrupting the list silently.
func (s *Stream) checkOwner() {
	id := goid.Get()
	if s.ownerGoroutine == 0 {
		s.ownerGoroutine = id
		return
	}
	if s.ownerGoroutine != id {
		panic(fmt.Sprintf("token.Stream mutated from goroutine %d, owned by %d", id, s.ownerGoroutine))
	}
}
