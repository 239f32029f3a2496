// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func TestClassFlagsHas(t *testing.T) {
	f := ClassSealed | ClassFinal
	if !f.Has(ClassSealed) {
		t.Error("expected ClassSealed set")
	}
	if f.Has(ClassInterface) {
		t.Error("did not expect ClassInterface set")
	}
}

func TestClassInfoAtOutOfRange(t *testing.T) {
	p := &parser{classes: []*ClassInfo{{Index: 0}}}
	if _, err := p.classInfoAt(1); err == nil {
		t.Fatal("expected ClassInfoOutOfRange")
	}
}

func TestDecodeClassArraysPreallocatesForwardReferences(t *testing.T) {
	// Two classes; the first class's single instance trait references the
	// second class_info index, which has not had its own instance half
	// decoded yet.
	p := &parser{}
	p.pools.strings = []string{"", "A", "B"}
	p.pools.multinames = []*Multiname{
		sentinelMultiname,
		{Kind: KindQName, Index1: 1, Index2: 1}, // A
		{Kind: KindQName, Index1: 1, Index2: 2}, // B
	}
	p.pools.namespaces = []*Namespace{nil, {Kind: NSOrdinary}}
	p.methods = []*MethodInfo{{Index: 0}}
	p.opts = &Options{}
	p.logger = p.opts.logger()

	b := &abcBuilder{}
	b.u30(2) // class count

	// class[0] instance half: name=A, parent=sentinel, flags=0,
	// no interfaces, init method 0, one TraitClass trait referencing
	// class_info index 1.
	b.u30(1).u30(0).u8(0).u30(0).u30(0)
	b.u30(1) // one trait
	b.u30(2).u8(byte(TraitClass)).u30(0).u30(1) // name=B, kind Class, slot 0, class idx 1

	// class[1] instance half: name=B, parent=sentinel, flags=0, no
	// interfaces, init 0, no traits.
	b.u30(2).u30(0).u8(0).u30(0).u30(0).u30(0)

	// static halves for both classes.
	b.u30(0).u30(0)
	b.u30(0).u30(0)

	p.r = newReader(b.buf, false)

	classes, err := p.decodeClassArrays()
	if err != nil {
		t.Fatalf("decodeClassArrays: %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("got %d classes, want 2", len(classes))
	}
	trait := classes[0].InstanceTraits[0]
	if trait.Class != classes[1] {
		t.Error("forward-referenced class trait did not resolve to the preallocated pointer")
	}
	if classes[1].Name == nil {
		t.Error("forward-referenced class_info should be fully populated by the time decodeClassArrays returns")
	}
}

func TestDecodeClassArraysTruncatesRetainedButConsumesAllDeclared(t *testing.T) {
	// Two classes declared, but MaxClassCount caps retention at one. The
	// stream must still be fully consumed for both classes so whatever
	// follows class_info (script_info, here stood in by a trailing u30)
	// is read from the right offset.
	p := &parser{}
	p.pools.strings = []string{"", "A"}
	p.pools.multinames = []*Multiname{
		sentinelMultiname,
		{Kind: KindQName, Index1: 1, Index2: 1}, // A
	}
	p.pools.namespaces = []*Namespace{nil, {Kind: NSOrdinary}}
	p.methods = []*MethodInfo{{Index: 0}}
	p.opts = &Options{MaxClassCount: 1}
	p.logger = p.opts.logger()

	b := &abcBuilder{}
	b.u30(2) // class count
	for i := 0; i < 2; i++ {
		b.u30(1).u30(0).u8(0).u30(0).u30(0).u30(0) // instance half: name=A, no interfaces, no traits
	}
	for i := 0; i < 2; i++ {
		b.u30(0).u30(0) // static half: init method, no traits
	}
	b.u30(42) // stand-in for the next phase's declared count

	p.r = newReader(b.buf, false)

	classes, err := p.decodeClassArrays()
	if err != nil {
		t.Fatalf("decodeClassArrays: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("got %d retained classes, want 1 after truncation", len(classes))
	}

	next, err := p.r.readU30()
	if err != nil {
		t.Fatalf("reading the field after class_info: %v", err)
	}
	if next != 42 {
		t.Errorf("got %d, want 42 — class_info truncation desynced the stream", next)
	}
}
