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

package parser

import (
	"path/filepath"

	"github.com/yaramod-go/yaramod/ast"
	"github.com/yaramod-go/yaramod/include"
	"github.com/yaramod-go/yaramod/internal/intern"
	"github.com/yaramod-go/yaramod/lexer"
	"github.com/yaramod-go/yaramod/literal"
	"github.com/yaramod-go/yaramod/token"
	"github.com/yaramod-go/yaramod/yaraerr"
)

// ParseFile lexes and parses path, following `include` directives per mode:
// each include token's sub-stream is populated with the included file's
// tokens (spec §3.2, "sub_stream ... used for include-file expansion"), and
// a Regular-mode cycle or a missing file produces an IncludeError.
func ParseFile(path string, mode Mode) (*ast.YaraFile, error) {
	resolver := include.NewResolver(include.Mode(mode))
	syms := &intern.Table{}
	return parseFileWith(path, mode, resolver, syms)
}

func parseFileWith(path string, mode Mode, resolver *include.Resolver, syms *intern.Table) (*ast.YaraFile, error) {
	ok, err := resolver.Enter(path)
	if err != nil {
		return nil, yaraerr.Wrap(yaraerr.IncludeError, yaraerr.Location{File: path}, err, "cyclic include")
	}
	if !ok {
		// IncludeGuarded duplicate: contribute nothing.
		return ast.NewYaraFile(&token.Stream{}), nil
	}
	defer resolver.Exit(path)

	contents, err := resolver.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stream, err := lexer.Lex(path, string(contents))
	if err != nil {
		return nil, err
	}

	if err := expandIncludes(stream, filepath.Dir(path), mode, resolver, syms); err != nil {
		return nil, err
	}

	return Parse(path, stream, Options{Mode: mode, Symbols: syms})
}

// expandIncludes rewrites every `include "pattern"` directive in stream into
// an Include token whose SubStream holds the resolved file(s)' tokens,
// recursively expanding nested includes in the same pass.
func expandIncludes(stream *token.Stream, baseDir string, mode Mode, resolver *include.Resolver, syms *intern.Table) error {
	for cur := stream.Begin(); cur.Valid(); {
		tok := cur.Token()
		if tok.Kind != token.KwInclude {
			cur = cur.Next()
			continue
		}

		directiveStart := cur
		pathIt := cur.Next()
		for pathIt.Valid() && pathIt.Token().Kind.IsTrivia() {
			pathIt = pathIt.Next()
		}
		if !pathIt.Valid() || pathIt.Token().Kind != token.StringLit {
			cur = cur.Next()
			continue
		}
		pattern, _ := pathIt.Token().Value.StringValue()
		after := pathIt.Next()

		paths, err := include.Resolve(baseDir, pattern)
		if err != nil {
			return yaraerr.Wrap(yaraerr.IncludeError, yaraerr.Location{File: baseDir}, err, "failed to resolve include pattern %q", pattern)
		}

		var sub token.Stream
		for _, p := range paths {
			included, err := parseFileWith(p, mode, resolver, syms)
			if err != nil {
				return err
			}
			sub.MoveAppend(included.Stream, sub.End())
		}

		stream.EraseRange(directiveStart, after)
		includeTok := token.NewToken(token.Include, "include \""+pattern+"\"").WithValue(literal.String(pattern, pattern))
		includeTok.SubStream = &sub
		inserted := stream.Emplace(after, includeTok)
		cur = inserted.Next()
	}
	return nil
}
