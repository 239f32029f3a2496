// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func newTraitTestParser() *parser {
	p := &parser{}
	p.pools.strings = []string{"", "foo"}
	p.pools.multinames = []*Multiname{
		sentinelMultiname,
		{Kind: KindQName, Index1: 0, Index2: 1},
	}
	return p
}

func TestDecodeTraitSlot(t *testing.T) {
	p := newTraitTestParser()
	b := &abcBuilder{}
	b.u30(1)                             // name idx
	b.u8(byte(TraitSlot))                // kind, no attrs
	b.u30(3).u30(0).u30(0)               // slot id, type idx (sentinel), value idx 0 (no default)
	p.r = newReader(b.buf, false)

	tr, err := p.decodeTrait()
	if err != nil {
		t.Fatal(err)
	}
	if tr.Kind != TraitSlot || tr.SlotID() != 3 {
		t.Errorf("got kind=%v slot=%d, want Slot/3", tr.Kind, tr.SlotID())
	}
	if tr.Field.HasDefault {
		t.Error("did not expect a default value")
	}
}

func TestDecodeTraitRejectsUnknownKind(t *testing.T) {
	p := newTraitTestParser()
	b := &abcBuilder{}
	b.u30(1).u8(0x0f) // kind nibble 15, no known mapping
	p.r = newReader(b.buf, false)

	_, err := p.decodeTrait()
	if err == nil {
		t.Fatal("expected InvalidTraitKind")
	}
}

func TestDecodeTraitNameRejectsNonQName(t *testing.T) {
	p := &parser{}
	p.pools.strings = []string{""}
	p.pools.multinames = []*Multiname{sentinelMultiname, {Kind: KindMultiname, Index1: 0}}
	p.r = newReader(encodeU32(1), false)

	if _, err := p.decodeTraitName(); err == nil {
		t.Fatal("expected AbcClassTraitNameNotQName")
	}
}

func TestTraitSlotIDAndMethodDispIDAreMutuallyExclusive(t *testing.T) {
	slotTrait := &TraitInfo{Kind: TraitConst, slotOrDispID: 5}
	if slotTrait.SlotID() != 5 || slotTrait.MethodDispID() != -1 {
		t.Error("const trait should expose SlotID, not MethodDispID")
	}
	methodTrait := &TraitInfo{Kind: TraitGetter, slotOrDispID: 7}
	if methodTrait.MethodDispID() != 7 || methodTrait.SlotID() != -1 {
		t.Error("getter trait should expose MethodDispID, not SlotID")
	}
}
