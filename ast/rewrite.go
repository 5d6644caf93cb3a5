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

import "github.com/yaramod-go/yaramod/token"

// ObservingVisitor is embedded by visitors that only need to accumulate
// read-only state. Its methods provide the "default implementation" spec
// §4.3 describes: walk all children post-order, discard their results.
// Implementers embed *ObservingVisitor, set Self to their own concrete type
// in a constructor, and override only the Visit methods they care about;
// Go has no virtual method defaults, so Self is how the embedded walker
// calls back into the overridden methods instead of its own.
type ObservingVisitor struct {
	// Self must be set to the concrete visitor embedding this struct, so
	// that walk dispatches to overridden methods rather than these
	// defaults.
	Self Visitor
}

func (b *ObservingVisitor) walk(e Expr) {
	self := b.Self
	if self == nil {
		self = b
	}
	for _, c := range children(e) {
		if c != nil {
			c.Accept(self)
		}
	}
}

func (b *ObservingVisitor) VisitStringId(n *StringId) Result               { return Keep() }
func (b *ObservingVisitor) VisitStringWildcard(n *StringWildcard) Result   { return Keep() }
func (b *ObservingVisitor) VisitStringAt(n *StringAt) Result               { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitStringInRange(n *StringInRange) Result     { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitStringCount(n *StringCount) Result         { return Keep() }
func (b *ObservingVisitor) VisitStringOffset(n *StringOffset) Result       { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitStringLength(n *StringLength) Result       { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitNot(n *Not) Result                         { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitUnaryMinus(n *UnaryMinus) Result           { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitBitwiseNot(n *BitwiseNot) Result           { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitParenExpr(n *ParenExpr) Result             { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitBinary(n *Binary) Result                   { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitQuantifier(n *Quantifier) Result           { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitSetExpr(n *SetExpr) Result                 { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitRange(n *Range) Result                     { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitIdExpr(n *IdExpr) Result                   { return Keep() }
func (b *ObservingVisitor) VisitStructAccess(n *StructAccess) Result       { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitArrayAccess(n *ArrayAccess) Result         { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitFunctionCall(n *FunctionCall) Result       { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitBoolLit(n *BoolLit) Result                 { return Keep() }
func (b *ObservingVisitor) VisitStringLit(n *StringLit) Result             { return Keep() }
func (b *ObservingVisitor) VisitIntLit(n *IntLit) Result                   { return Keep() }
func (b *ObservingVisitor) VisitDoubleLit(n *DoubleLit) Result             { return Keep() }
func (b *ObservingVisitor) VisitKeyword(n *Keyword) Result                 { return Keep() }
func (b *ObservingVisitor) VisitIntFunction(n *IntFunction) Result         { b.walk(n); return Keep() }
func (b *ObservingVisitor) VisitRegexpExpr(n *RegexpExpr) Result           { return Keep() }

// Walk performs a strict left-to-right, post-order traversal of e using v,
// visiting every node exactly once.
func Walk(e Expr, v Visitor) {
	if e == nil {
		return
	}
	for _, c := range children(e) {
		if c != nil {
			Walk(c, v)
		}
	}
	e.Accept(v)
}

// Context is [Rewrite]'s own per-node bookkeeping; it remembers the span a
// node originally occupied so the old sub-stream can be spliced out and a
// replacement's sub-stream in as one step. It is not passed to the visitor:
// a [ModifyingVisitor]'s VisitXxx methods receive only the node.
type Context struct {
	Stream       *token.Stream
	OriginalSpan Span
}

// splice erases the tokens in oldSpan with nothing taking their place; used
// when a node is deleted outright rather than replaced by another node.
func (ctx *Context) splice(oldSpan Span) {
	if ctx.Stream == nil {
		return
	}
	ctx.Stream.EraseRange(oldSpan.First, oldSpan.Last)
}

// replace erases oldSpan and leaves newNode's own tokens spliced into its
// place, implementing the setter contract from spec §4.2 ("splice out the
// old child's token span from the stream and splice in the new child's
// tokens at the same location") for the modifying-visitor path.
//
// Two cases:
//   - newNode's tokens already lie within oldSpan (the common case: a
//     visitor promotes one of the node's own already-rewritten children, or
//     returns a subexpression taken from inside the node it replaces).
//     Only the tokens surrounding newNode's own span need erasing; newNode's
//     own tokens are left untouched in place, so no copy or move is needed.
//   - newNode's tokens come from a different stream entirely (e.g. built by
//     a package builder and never part of ctx.Stream). Its donor stream is
//     moved into ctx.Stream immediately before oldSpan via MoveAppend, which
//     reparents every token (and keeps newNode's own iterators valid per
//     Stream's iterator-stability guarantee), and oldSpan is then erased.
func (ctx *Context) replace(oldSpan Span, newNode Expr) {
	if ctx.Stream == nil || newNode == nil {
		return
	}
	newSpan := newNode.Span()
	if spanContainsIter(oldSpan, newSpan.First) {
		ctx.Stream.EraseRange(oldSpan.First, newSpan.First)
		ctx.Stream.EraseRange(newSpan.Last, oldSpan.Last)
		return
	}
	if donor := streamOf(newNode); donor != nil && donor != ctx.Stream {
		ctx.Stream.MoveAppend(donor, oldSpan.First)
	}
	ctx.Stream.EraseRange(oldSpan.First, oldSpan.Last)
}

// spanContainsIter reports whether it falls within [span.First, span.Last)
// by scanning forward. Spans here are a single rule's condition at most, so
// this linear scan carries the same accepted cost as [Span.Contains]'s own
// before() helper.
func spanContainsIter(span Span, it token.Iter) bool {
	for cur := span.First; !cur.Equal(span.Last); cur = cur.Next() {
		if cur.Equal(it) {
			return true
		}
	}
	return false
}

// ModifyingVisitor is the full Visitor interface: its VisitXxx methods make
// the domain-specific folding decisions (e.g. "true and X -> X"), while the
// structural bookkeeping (child substitution, deletion propagation, span
// splicing) is performed generically by [Rewrite] before a node's own
// method is consulted.
type ModifyingVisitor = Visitor

// Rewrite performs a post-order modifying traversal of root using v: every
// child is rewritten first; a child result of Delete is propagated per the
// child-substitution rules (a unary's sole deleted operand deletes the
// unary itself; a binary's deleted operand promotes the surviving one in
// its place); a child result of Replaced substitutes the new node and
// splices its tokens in place of the old child's span. Only once children
// have settled is the node's own Accept(v) consulted, so a visitor override
// always sees already-rewritten children.
//
// If the traversal deletes the root itself, whenDeleted is substituted.
func Rewrite(stream *token.Stream, root Expr, v ModifyingVisitor, whenDeleted Expr) Expr {
	result := rewrite(stream, root, v)
	if result.Kind() == Delete {
		return whenDeleted
	}
	if result.Kind() == Replaced {
		return result.Node()
	}
	return root
}

func rewrite(stream *token.Stream, e Expr, v ModifyingVisitor) Result {
	if e == nil {
		return Keep()
	}
	ctx := &Context{Stream: stream, OriginalSpan: e.Span()}

	switch n := e.(type) {
	case *Not:
		return rewriteUnary(ctx, &n.Unary, n, v)
	case *UnaryMinus:
		return rewriteUnary(ctx, &n.Unary, n, v)
	case *BitwiseNot:
		return rewriteUnary(ctx, &n.Unary, n, v)
	case *ParenExpr:
		return rewriteUnary(ctx, &n.Unary, n, v)
	case *Binary:
		return rewriteBinary(ctx, n, v)
	default:
		// Leaf, or a shape (Quantifier/SetExpr/Range/StructAccess/
		// ArrayAccess/FunctionCall/IntFunction) whose children, if any,
		// carry no special deletion/promotion semantics per spec §4.3
		// (those rules are called out only for Unary and Binary): rewrite
		// children generically and let the node's own Accept decide.
		changed := rewriteGenericChildren(ctx, e, v)
		own := e.Accept(v)
		switch own.Kind() {
		case Delete:
			ctx.splice(ctx.OriginalSpan)
			return own
		case Replaced:
			ctx.replace(ctx.OriginalSpan, own.Node())
			return own
		}
		if changed {
			return Replace(e)
		}
		return Keep()
	}
}

// rewriteUnary rewrites a unary node's sole operand, then always consults
// the visitor's own Accept before applying the default child-substitution
// rule, so spec §4.3's "collapses to the deletion marker unless the
// subclass overrides" is an actual override point rather than a
// short-circuit: a visitor that wants different behavior for a
// deleted-operand unary can still return its own Result from VisitXxx.
func rewriteUnary(ctx *Context, u *Unary, self Expr, v ModifyingVisitor) Result {
	childResult := rewrite(ctx.Stream, u.Operand, v)
	childDeleted := childResult.Kind() == Delete
	switch {
	case childDeleted:
		ctx.splice(u.Operand.Span())
	case childResult.Kind() == Replaced:
		ctx.replace(u.Operand.Span(), childResult.Node())
		u.SetOperand(childResult.Node())
	}

	own := self.Accept(v)
	switch own.Kind() {
	case Delete:
		ctx.splice(ctx.OriginalSpan)
		return own
	case Replaced:
		ctx.replace(ctx.OriginalSpan, own.Node())
		return own
	}
	// own.Kind() == Unchanged: apply the default per spec §4.3.
	if childDeleted {
		return Remove()
	}
	if childResult.Kind() == Replaced {
		return Replace(self)
	}
	return Keep()
}

// rewriteBinary rewrites both operands, then always consults the visitor's
// own Accept before applying the default promote-surviving-operand rule, for
// the same override reason as rewriteUnary.
func rewriteBinary(ctx *Context, n *Binary, v ModifyingVisitor) Result {
	leftResult := rewrite(ctx.Stream, n.Left, v)
	rightResult := rewrite(ctx.Stream, n.Right, v)

	leftDeleted := leftResult.Kind() == Delete
	rightDeleted := rightResult.Kind() == Delete

	if !leftDeleted && !rightDeleted {
		if leftResult.Kind() == Replaced {
			ctx.replace(n.Left.Span(), leftResult.Node())
			n.SetLeftOperand(leftResult.Node())
		}
		if rightResult.Kind() == Replaced {
			ctx.replace(n.Right.Span(), rightResult.Node())
			n.SetRightOperand(rightResult.Node())
		}
	}

	own := n.Accept(v)
	switch own.Kind() {
	case Delete:
		ctx.splice(ctx.OriginalSpan)
		return own
	case Replaced:
		ctx.replace(ctx.OriginalSpan, own.Node())
		return own
	}

	// own.Kind() == Unchanged: apply the defaults.
	if leftDeleted && rightDeleted {
		ctx.splice(n.Span())
		return Remove()
	}
	if leftDeleted {
		survivorSpan := n.Right.Span()
		if rightResult.Kind() == Replaced {
			ctx.replace(survivorSpan, rightResult.Node())
			survivorSpan = rightResult.Node().Span()
		}
		ctx.splice(Span{n.Left.Span().First, survivorSpan.First})
		return promote(n.Right, rightResult)
	}
	if rightDeleted {
		survivorSpan := n.Left.Span()
		if leftResult.Kind() == Replaced {
			ctx.replace(survivorSpan, leftResult.Node())
			survivorSpan = leftResult.Node().Span()
		}
		ctx.splice(Span{survivorSpan.Last, n.Right.Span().Last})
		return promote(n.Left, leftResult)
	}
	if leftResult.Kind() == Replaced || rightResult.Kind() == Replaced {
		return Replace(n)
	}
	return Keep()
}

// promote returns the Result that makes a binary's surviving operand stand
// in for the whole binary node, honoring any replacement that operand's own
// rewrite already produced.
func promote(survivor Expr, survivorResult Result) Result {
	if survivorResult.Kind() == Replaced {
		return Replace(survivorResult.Node())
	}
	return Replace(survivor)
}

// rewriteChild rewrites a single required child, splicing in a replacement
// or erasing the child's span outright if it was deleted. Returns the child
// unchanged, the replacement, or nil (deleted), and whether anything changed.
// A required child being deleted leaves the parent ill-formed (spec §4.3
// only specifies deletion propagation for Unary and Binary shapes), but the
// span is still erased so the stream stays consistent with whichever
// children survive.
func rewriteChild(ctx *Context, child Expr, v ModifyingVisitor) (Expr, bool) {
	r := rewrite(ctx.Stream, child, v)
	switch r.Kind() {
	case Delete:
		ctx.splice(child.Span())
		return nil, true
	case Replaced:
		ctx.replace(child.Span(), r.Node())
		return r.Node(), true
	default:
		return child, false
	}
}

func rewriteGenericChildren(ctx *Context, e Expr, v ModifyingVisitor) (changed bool) {
	switch n := e.(type) {
	case *StringAt:
		if c, ch := rewriteChild(ctx, n.Offset, v); ch {
			n.Offset, changed = c, true
		}
	case *StringInRange:
		if c, ch := rewriteChild(ctx, n.Range, v); ch {
			n.Range, changed = c, true
		}
	case *StringOffset:
		if n.Index != nil {
			if c, ch := rewriteChild(ctx, n.Index, v); ch {
				n.Index, changed = c, true
			}
		}
	case *StringLength:
		if n.Index != nil {
			if c, ch := rewriteChild(ctx, n.Index, v); ch {
				n.Index, changed = c, true
			}
		}
	case *Quantifier:
		if n.Count != nil {
			if c, ch := rewriteChild(ctx, n.Count, v); ch {
				n.SetCount(c)
				changed = true
			}
		}
		if c, ch := rewriteChild(ctx, n.Set, v); ch {
			n.SetSet(c)
			changed = true
		}
		if n.Body != nil {
			if c, ch := rewriteChild(ctx, n.Body, v); ch {
				n.SetBody(c)
				changed = true
			}
		}
	case *SetExpr:
		elems := n.Elements[:0:0]
		for _, el := range n.Elements {
			c, ch := rewriteChild(ctx, el, v)
			if ch {
				changed = true
			}
			if c != nil {
				elems = append(elems, c)
			}
		}
		n.Elements = elems
	case *Range:
		if c, ch := rewriteChild(ctx, n.Low, v); ch {
			n.Low, changed = c, true
		}
		if c, ch := rewriteChild(ctx, n.High, v); ch {
			n.High, changed = c, true
		}
	case *StructAccess:
		if c, ch := rewriteChild(ctx, n.Object, v); ch {
			n.Object, changed = c, true
		}
	case *ArrayAccess:
		if c, ch := rewriteChild(ctx, n.Array, v); ch {
			n.Array, changed = c, true
		}
		if c, ch := rewriteChild(ctx, n.Accessor, v); ch {
			n.Accessor, changed = c, true
		}
	case *FunctionCall:
		if c, ch := rewriteChild(ctx, n.Callee, v); ch {
			n.Callee, changed = c, true
		}
		args := n.Args[:0:0]
		for _, a := range n.Args {
			c, ch := rewriteChild(ctx, a, v)
			if ch {
				changed = true
			}
			if c != nil {
				args = append(args, c)
			}
		}
		n.Args = args
	case *IntFunction:
		if c, ch := rewriteChild(ctx, n.Arg, v); ch {
			n.Arg, changed = c, true
		}
	}
	return changed
}
