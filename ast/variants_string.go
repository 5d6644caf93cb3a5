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

import "github.com/yaramod-go/yaramod/internal/intern"

// StringId is a bare string reference, e.g. `$a`.
type StringId struct {
	exprBase
	Name intern.ID
}

func (e *StringId) Accept(v Visitor) Result { return v.VisitStringId(e) }

// StringWildcard is a wildcard string-set reference, e.g. `$a*` in `for` and
// `of` quantifiers.
type StringWildcard struct {
	exprBase
	Prefix intern.ID
}

func (e *StringWildcard) Accept(v Visitor) Result { return v.VisitStringWildcard(e) }

// StringAt is `$a at <expr>`.
type StringAt struct {
	exprBase
	Name   intern.ID
	Offset Expr
}

func (e *StringAt) Accept(v Visitor) Result { return v.VisitStringAt(e) }

// StringInRange is `$a in <range>`.
type StringInRange struct {
	exprBase
	Name  intern.ID
	Range Expr
}

func (e *StringInRange) Accept(v Visitor) Result { return v.VisitStringInRange(e) }

// StringCount is `#a`.
type StringCount struct {
	exprBase
	Name intern.ID
}

func (e *StringCount) Accept(v Visitor) Result { return v.VisitStringCount(e) }

// StringOffset is `@a` or `@a[<index>]`.
type StringOffset struct {
	exprBase
	Name  intern.ID
	Index Expr // nil if unindexed
}

func (e *StringOffset) Accept(v Visitor) Result { return v.VisitStringOffset(e) }

// StringLength is `!a` or `!a[<index>]`.
type StringLength struct {
	exprBase
	Name  intern.ID
	Index Expr // nil if unindexed
}

func (e *StringLength) Accept(v Visitor) Result { return v.VisitStringLength(e) }
