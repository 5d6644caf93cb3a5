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

// Package modules defines the opaque lookup trait for imported YARA module
// symbol tables (pe, elf, math, ...), and a YAML-backed implementation of
// it. Spec scopes out the full module type system. No other package of
// this module calls it: the parser does not check StructAccess,
// ArrayAccess or FunctionCall nodes against a Table.
package modules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaramod-go/yaramod/ast"
)

// Table resolves a dotted field/function path within one imported module to
// its declared expression type. It is deliberately opaque: callers never
// need to know whether a Table is backed by YAML, a Go struct, or a remote
// service.
type Table interface {
	// Lookup returns the expression type of path (e.g. "version" or
	// "sections[0].name"), or ok=false if path is not declared.
	Lookup(path string) (ast.Type, bool)
}

// member is one YAML-declared symbol: a field type, or a function's
// argument/return shape.
type member struct {
	Type    string   `yaml:"type"`
	Params  []string `yaml:"params,omitempty"`
	Returns string   `yaml:"returns,omitempty"`
}

// yamlModule is the top-level YAML document shape for one module.
type yamlModule struct {
	Name    string            `yaml:"name"`
	Members map[string]member `yaml:"members"`
}

// staticTable is a Table backed by a flat map, as loaded from YAML.
type staticTable struct {
	name    string
	members map[string]member
}

// FromYAML parses a module declaration document (see yamlModule) into a
// Table.
func FromYAML(data []byte) (Table, error) {
	var doc yamlModule
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("modules: parsing module declaration: %w", err)
	}
	return &staticTable{name: doc.Name, members: doc.Members}, nil
}

func (t *staticTable) Lookup(path string) (ast.Type, bool) {
	m, ok := t.members[path]
	if !ok {
		return ast.TypeUndefined, false
	}
	return parseType(m.Type), true
}

func parseType(s string) ast.Type {
	switch s {
	case "int":
		return ast.TypeInt
	case "string":
		return ast.TypeString
	case "bool":
		return ast.TypeBool
	case "float":
		return ast.TypeFloat
	case "regexp":
		return ast.TypeRegexp
	default:
		return ast.TypeObject
	}
}

// Registry is a name -> Table lookup for every module imported by a
// YaraFile, assembled by the caller (the front-end driver) from whichever
// module declarations it has loaded.
type Registry struct {
	tables map[string]Table
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{tables: make(map[string]Table)} }

// Register adds table under name, overwriting any previous registration.
func (r *Registry) Register(name string, table Table) { r.tables[name] = table }

// Lookup returns the Table registered for module name, if any.
func (r *Registry) Lookup(name string) (Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}
