// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import (
	"errors"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	e1 := newErrorf(AbcCorrupt, "offset", 5)
	e2 := NewError(AbcCorrupt)
	if !errors.Is(e1, e2) {
		t.Error("expected errors with the same Code to match via errors.Is")
	}
	e3 := NewError(AbcIllegalU30)
	if errors.Is(e1, e3) {
		t.Error("did not expect errors with different Codes to match")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := wrapError(AbcCorrupt, cause)
	if !errors.Is(e, cause) {
		t.Error("expected wrapError's Err to be unwrapped")
	}
}

func TestCodeStringFallback(t *testing.T) {
	var c Code = 9999
	if c.String() == "" {
		t.Error("expected non-empty fallback string")
	}
}
