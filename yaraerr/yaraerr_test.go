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

package yaraerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaramod-go/yaramod/yaraerr"
)

func TestNewFormatsLocationAndKind(t *testing.T) {
	err := yaraerr.New(yaraerr.SyntaxError, yaraerr.Location{File: "r.yar", Line: 3, Column: 5}, "unexpected %q", "}")
	assert.Equal(t, `r.yar:3:5: syntax error: unexpected "}"`, err.Error())
}

func TestNewWithoutLocation(t *testing.T) {
	err := yaraerr.New(yaraerr.SemanticError, yaraerr.Location{}, "duplicate rule %q", "r")
	assert.Equal(t, `semantic error: duplicate rule "r"`, err.Error())
}

func TestWrapPreservesCauseForErrorsUnwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := yaraerr.Wrap(yaraerr.IncludeError, yaraerr.Location{File: "a.yar"}, cause, "failed to read include file")

	assert.ErrorIs(t, err, cause)
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "integer overflow", yaraerr.IntegerOverflow.String())
	assert.Equal(t, "lex error", yaraerr.LexError.String())
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "a.yar:1:2", yaraerr.Location{File: "a.yar", Line: 1, Column: 2}.String())
	assert.Equal(t, "1:2", yaraerr.Location{Line: 1, Column: 2}.String())
}
