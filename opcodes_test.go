// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func TestOpcodesTableCoversKnownInstructions(t *testing.T) {
	for _, b := range []byte{0x02, 0x1d, 0x30, 0x46, 0x47, 0x48, 0x61, 0x66, 0xd0} {
		if !Opcodes[b].Valid {
			t.Errorf("opcode 0x%02x not marked valid", b)
		}
	}
}

func TestOpcodesTableLeavesUnassignedBytesInvalid(t *testing.T) {
	if Opcodes[0x00].Valid {
		t.Error("0x00 should be unassigned")
	}
}

func TestPopCountRejectsNegativeArgCount(t *testing.T) {
	if _, err := PopCount(0x46, KindQName, -1); err == nil {
		t.Fatal("expected ArgumentOutOfRange")
	}
}

func TestPopCountUnknownOpcodeReturnsNegativeOne(t *testing.T) {
	n, err := PopCount(0x00, KindInvalid, 0)
	if err != nil {
		t.Fatalf("expected no error for an unassigned opcode, got %v", err)
	}
	if n != -1 {
		t.Errorf("got %d, want -1", n)
	}
}

func TestPopCountFindPropertyUsesOnlyMultinameArgs(t *testing.T) {
	n, err := PopCount(0x5d /* findpropstrict */, KindRTQName, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("findpropstrict pop = %d, want 1", n)
	}
}

func TestPopCountFinddefUsesOnlyMultinameArgs(t *testing.T) {
	n, err := PopCount(0x5f /* finddef */, KindRTQNameL, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("finddef pop = %d, want 2", n)
	}
}
