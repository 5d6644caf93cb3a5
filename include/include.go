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

// Package include resolves `include "path"` directives while a file is
// being parsed: it expands globs in include paths, detects cycles in
// Regular mode, and deduplicates repeat includes in IncludeGuarded mode.
package include

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/btree"
	"golang.org/x/sync/singleflight"

	"github.com/yaramod-go/yaramod/internal/cycle"
	"github.com/yaramod-go/yaramod/yaraerr"
)

// Mode mirrors parser.Mode; duplicated here (rather than imported) to avoid
// a dependency cycle, since package parser depends on package include for
// directive resolution.
type Mode byte

const (
	Regular Mode = iota
	IncludeGuarded
)

// Resolver tracks the state of one parse invocation's include handling: the
// current include stack (for cycle detection in Regular mode) and the set
// of paths already included (for deduplication in IncludeGuarded mode).
//
// A Resolver is scoped to a single top-level Parse call and is not safe for
// concurrent use, matching spec §5's "the include-graph during parsing is a
// global-per-parse set ... scoped to the parse invocation."
type Resolver struct {
	mode Mode

	stack []string // current include chain, for cycle detection

	guarded btree.Set[string] // paths already included, IncludeGuarded mode

	// group merges ReadFile calls for the same path that overlap in time
	// into one read. Calls that do not overlap, such as the repeated
	// includes of a sequential parse, each read the file again.
	group singleflight.Group
}

// NewResolver constructs a Resolver for one parse invocation.
func NewResolver(mode Mode) *Resolver {
	return &Resolver{mode: mode}
}

// Resolve expands pattern (relative to baseDir, which is typically the
// including file's directory) into the list of file paths it denotes, via
// doublestar glob syntax, and sorts the result for deterministic ordering
// (spec §8 testable property 9: include glob resolution determinism).
func Resolve(baseDir, pattern string) ([]string, error) {
	full := pattern
	if !filepath.IsAbs(pattern) {
		full = filepath.Join(baseDir, pattern)
	}
	matches, err := doublestar.FilepathGlob(full)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		// Not a glob pattern (or a glob with no matches): treat as a literal
		// path so that a plain `include "foo.yar"` for a nonexistent file
		// still reports a clear IncludeError from the caller's stat/open,
		// rather than a silent empty expansion.
		return []string{full}, nil
	}
	sort.Strings(matches)
	return matches, nil
}

// Enter pushes path onto the include stack (Regular mode) or checks and
// records it in the guarded set (IncludeGuarded mode).
//
// It returns ok=false when the path should be skipped without error: in
// IncludeGuarded mode, a path already included. It returns a non-nil error
// when the path forms a cycle in Regular mode.
func (r *Resolver) Enter(path string) (ok bool, err error) {
	abs, statErr := filepath.Abs(path)
	if statErr == nil {
		path = abs
	}

	if r.mode == IncludeGuarded {
		if r.guarded.Contains(path) {
			return false, nil
		}
		r.guarded.Insert(path)
		return true, nil
	}

	for _, p := range r.stack {
		if p == path {
			cycleChain := append(append([]string{}, r.stack...), path)
			return false, &cycle.Error[string]{Cycle: cycleChain}
		}
	}
	r.stack = append(r.stack, path)
	return true, nil
}

// Exit pops path from the include stack; a no-op in IncludeGuarded mode.
func (r *Resolver) Exit(path string) {
	if r.mode == IncludeGuarded {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if len(r.stack) > 0 && r.stack[len(r.stack)-1] == path {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// ReadFile reads path's contents, deduplicating concurrent reads of the same
// path within this Resolver via singleflight.
func (r *Resolver) ReadFile(path string) ([]byte, error) {
	v, err, _ := r.group.Do(path, func() (any, error) {
		return os.ReadFile(path)
	})
	if err != nil {
		return nil, yaraerr.Wrap(yaraerr.IncludeError, yaraerr.Location{File: path}, err, "failed to read include file")
	}
	return v.([]byte), nil
}
