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

// Package intern provides an interning table abstraction used to give
// identifiers and symbol references cheap, comparable handles.
package intern

import "sync"

// ID is an interned string in a particular [Table]. The zero value always
// corresponds to the empty string.
type ID int32

// Table interns strings into comparable [ID] values.
//
// A zero Table is empty and ready to use. Tables are safe for concurrent
// use, since symbol interning is one of the few places in this module
// where independent parses may plausibly share state (e.g. a module
// symbol table, see package modules).
type Table struct {
	mu      sync.Mutex
	byValue map[string]ID
	byID    []string
}

// Intern returns the ID for s, minting a new one if s has not been seen
// by this table before.
func (t *Table) Intern(s string) ID {
	if s == "" {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.byValue == nil {
		t.byValue = make(map[string]ID)
		t.byID = append(t.byID, "")
	}
	if id, ok := t.byValue[s]; ok {
		return id
	}

	id := ID(len(t.byID))
	t.byID = append(t.byID, s)
	t.byValue[s] = id
	return id
}

// Value returns the string associated with id, or "" if id is zero or
// unknown to this table.
func (t *Table) Value(id ID) string {
	if id == 0 {
		return ""
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(id) >= len(t.byID) {
		return ""
	}
	return t.byID[id]
}

// Len returns the number of distinct non-empty strings interned so far.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.byID) == 0 {
		return 0
	}
	return len(t.byID) - 1
}
