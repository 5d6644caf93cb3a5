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

package ast

// ResultKind tags a [Result]: Unchanged, Replaced, or Delete.
type ResultKind byte

const (
	Unchanged ResultKind = iota
	Replaced
	Delete
)

// Result is the sum type every visit returns: the node is kept as-is, kept
// but replaced by a different node, or marked for deletion. Go has no
// virtual-method defaults, so the "default implementation" behavior spec §4.3
// describes for the observing and modifying visitor shapes is provided by
// the free functions [Walk] and [Rewrite] in this package rather than by
// base-class methods.
type Result struct {
	kind ResultKind
	node Expr
}

// Keep returns the Unchanged result.
func Keep() Result { return Result{kind: Unchanged} }

// Replace returns a Result substituting node for the visited expression.
func Replace(node Expr) Result { return Result{kind: Replaced, node: node} }

// Remove returns the Delete result.
func Remove() Result { return Result{kind: Delete} }

// Kind returns r's tag.
func (r Result) Kind() ResultKind { return r.kind }

// Node returns the replacement node if r.Kind() == Replaced; nil otherwise.
func (r Result) Node() Expr { return r.node }

// Visitor is the pure visitor shape: one method per closed-sum variant,
// dispatched to by [Expr.Accept]. Implementers provide behavior for every
// variant; there is no default.
type Visitor interface {
	VisitStringId(*StringId) Result
	VisitStringWildcard(*StringWildcard) Result
	VisitStringAt(*StringAt) Result
	VisitStringInRange(*StringInRange) Result
	VisitStringCount(*StringCount) Result
	VisitStringOffset(*StringOffset) Result
	VisitStringLength(*StringLength) Result

	VisitNot(*Not) Result
	VisitUnaryMinus(*UnaryMinus) Result
	VisitBitwiseNot(*BitwiseNot) Result
	VisitParenExpr(*ParenExpr) Result

	VisitBinary(*Binary) Result

	VisitQuantifier(*Quantifier) Result
	VisitSetExpr(*SetExpr) Result
	VisitRange(*Range) Result

	VisitIdExpr(*IdExpr) Result
	VisitStructAccess(*StructAccess) Result
	VisitArrayAccess(*ArrayAccess) Result
	VisitFunctionCall(*FunctionCall) Result

	VisitBoolLit(*BoolLit) Result
	VisitStringLit(*StringLit) Result
	VisitIntLit(*IntLit) Result
	VisitDoubleLit(*DoubleLit) Result

	VisitKeyword(*Keyword) Result
	VisitIntFunction(*IntFunction) Result
	VisitRegexpExpr(*RegexpExpr) Result
}

// Children returns the direct child expressions of e, in left-to-right
// order. Leaf variants return nil. Exposed for callers that want to walk
// the tree without implementing the full Visitor interface (e.g.
// structural-equality comparisons between two parses of the same text).
func Children(e Expr) []Expr { return children(e) }

// children returns the direct child expressions of e, in left-to-right
// order, for use by the generic traversal helpers Walk and Rewrite. Leaf
// variants return nil.
func children(e Expr) []Expr {
	switch n := e.(type) {
	case *StringAt:
		return []Expr{n.Offset}
	case *StringInRange:
		return []Expr{n.Range}
	case *StringOffset:
		if n.Index != nil {
			return []Expr{n.Index}
		}
	case *StringLength:
		if n.Index != nil {
			return []Expr{n.Index}
		}
	case *Not:
		return []Expr{n.Operand}
	case *UnaryMinus:
		return []Expr{n.Operand}
	case *BitwiseNot:
		return []Expr{n.Operand}
	case *ParenExpr:
		return []Expr{n.Operand}
	case *Binary:
		return []Expr{n.Left, n.Right}
	case *Quantifier:
		out := make([]Expr, 0, 3)
		if n.Count != nil {
			out = append(out, n.Count)
		}
		out = append(out, n.Set)
		if n.Body != nil {
			out = append(out, n.Body)
		}
		return out
	case *SetExpr:
		return n.Elements
	case *Range:
		return []Expr{n.Low, n.High}
	case *StructAccess:
		return []Expr{n.Object}
	case *ArrayAccess:
		return []Expr{n.Array, n.Accessor}
	case *FunctionCall:
		out := make([]Expr, 0, len(n.Args)+1)
		out = append(out, n.Callee)
		out = append(out, n.Args...)
		return out
	case *IntFunction:
		return []Expr{n.Arg}
	}
	return nil
}
