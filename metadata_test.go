// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func TestDecodeMetadataInfoKeysPrecedeValues(t *testing.T) {
	p := &parser{}
	p.pools.strings = []string{"", "Tag", "k1", "k2", "v1", "v2"}
	b := &abcBuilder{}
	b.u30(1)             // name idx -> "Tag"
	b.u30(2)             // 2 keys
	b.u30(2).u30(3)      // key indices
	b.u30(4).u30(5)      // value indices (all keys listed before any value)
	p.r = newReader(b.buf, false)

	m, err := p.decodeMetadataInfo(0)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Tag" || m.Keys[0] != "k1" || m.Values[1] != "v2" {
		t.Errorf("got %+v", m)
	}
}

func TestDecodeMetadataInfoEmptyRecordsAnomaly(t *testing.T) {
	p := &parser{}
	p.pools.strings = []string{"", "Tag"}
	b := &abcBuilder{}
	b.u30(1).u30(0)
	p.r = newReader(b.buf, false)

	if _, err := p.decodeMetadataInfo(0); err != nil {
		t.Fatal(err)
	}
	if len(p.anomalies) != 1 || p.anomalies[0] != anoMetadataNoKeys {
		t.Errorf("expected anoMetadataNoKeys, got %v", p.anomalies)
	}
}

func TestMetadataAtOutOfRange(t *testing.T) {
	p := &parser{metadata: []*MetadataInfo{{Index: 0}}}
	if _, err := p.metadataAt(5); err == nil {
		t.Fatal("expected MetadataOutOfRange")
	}
}
