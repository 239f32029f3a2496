// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestFilterDropsBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	l := NewFilter(NewStdLogger(&buf), FilterLevel(LevelWarn))
	l.Log(LevelInfo, "msg", "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info record to be dropped, got %q", buf.String())
	}
	l.Log(LevelWarn, "msg", "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn record to pass through, got %q", buf.String())
	}
}

func TestHelperFormatsMessage(t *testing.T) {
	var buf bytes.Buffer
	h := NewHelper(NewStdLogger(&buf))
	h.Warnf("count %d exceeds %d", 5, 3)
	if !strings.Contains(buf.String(), "count 5 exceeds 3") {
		t.Errorf("got %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	if LevelError.String() != "ERROR" {
		t.Errorf("got %q", LevelError.String())
	}
}
