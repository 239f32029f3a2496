// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func TestDecodeMethodBodyInfoRejectsInvalidScopeDepths(t *testing.T) {
	p := &parser{methods: []*MethodInfo{{Index: 0}}}
	b := &abcBuilder{}
	b.u30(0) // method idx
	b.u30(1) // max_stack
	b.u30(0) // local_count
	b.u30(5) // init_scope_depth
	b.u30(2) // max_scope_depth: init > max
	p.r = newReader(b.buf, false)

	_, err := p.decodeMethodBodyInfo()
	if err == nil {
		t.Fatal("expected MethodBodyInvalidScopeDepths")
	}
	if e, ok := err.(*Error); !ok || e.Code != MethodBodyInvalidScopeDepths {
		t.Fatalf("got %v", err)
	}
}

func TestDecodeMethodBodyInfoRecordsEmptyCodeAnomaly(t *testing.T) {
	p := &parser{methods: []*MethodInfo{{Index: 0}}}
	b := &abcBuilder{}
	b.u30(0).u30(0).u30(0).u30(0).u30(0) // method idx, stack, locals, init/max scope
	b.u30(0)                             // code length 0
	b.u30(0)                             // exception count
	b.u30(0)                             // trait count
	p.r = newReader(b.buf, false)

	mb, err := p.decodeMethodBodyInfo()
	if err != nil {
		t.Fatal(err)
	}
	if len(mb.Code) != 0 {
		t.Errorf("expected empty code, got %d bytes", len(mb.Code))
	}
	if len(p.anomalies) != 1 || p.anomalies[0] != anoMethodBodyEmptyCode {
		t.Errorf("expected anoMethodBodyEmptyCode anomaly, got %v", p.anomalies)
	}
}

func TestDecodeMethodBodyArrayTruncatesAtCeiling(t *testing.T) {
	p := &parser{methods: []*MethodInfo{{Index: 0}, {Index: 1}}}
	p.opts = &Options{MaxMethodBodyCount: 1}
	p.logger = p.opts.logger()

	b := &abcBuilder{}
	b.u30(2) // declared count exceeds ceiling
	for i := 0; i < 2; i++ {
		b.u30(uint32(i)).u30(0).u30(0).u30(0).u30(0).u30(0).u30(0).u30(0)
	}
	p.r = newReader(b.buf, false)

	bodies, err := p.decodeMethodBodyArray()
	if err != nil {
		t.Fatal(err)
	}
	if len(bodies) != 1 {
		t.Errorf("got %d bodies, want 1 after truncation", len(bodies))
	}
}
