// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func newTestABCFile() *ABCFile {
	pub := &Namespace{Kind: NSOrdinary}
	pkg := &Namespace{Kind: NSPackage, Name: "com.example"}
	f := &ABCFile{}
	f.pools.strings = []string{"", "Sprite", "Vector", ""}
	f.pools.namespaces = []*Namespace{{Kind: NSOrdinary}, pub, pkg}
	f.pools.multinames = []*Multiname{
		sentinelMultiname,
		{Kind: KindQName, Index1: 1, Index2: 1}, // public::Sprite
		{Kind: KindQName, Index1: 2, Index2: 1}, // com.example::Sprite
		{Kind: KindQNameA, Index1: 1, Index2: 1}, // @Sprite
		{Kind: KindGenericClassName, Index1: 2, Index2: 0}, // com.example::Sprite.<Sprite>
		{Kind: KindQName, Index1: 1, Index2: 3}, // public::"" (resolved empty string, not wildcard)
		{Kind: KindQName, Index1: 1, Index2: 0}, // public::* (wildcard local name)
	}
	f.pools.genericArgLists = [][]*Multiname{
		{f.pools.multinames[1]},
	}
	return f
}

func TestRenderQName(t *testing.T) {
	f := newTestABCFile()
	got := f.Render(f.pools.multinames[1])
	if got != "Sprite" {
		t.Errorf("got %q, want %q", got, "Sprite")
	}
}

func TestRenderQNameWithNamespace(t *testing.T) {
	f := newTestABCFile()
	got := f.Render(f.pools.multinames[2])
	if got != "com.example::Sprite" {
		t.Errorf("got %q, want %q", got, "com.example::Sprite")
	}
}

func TestRenderAttributeMultiname(t *testing.T) {
	f := newTestABCFile()
	got := f.Render(f.pools.multinames[3])
	if got != "@Sprite" {
		t.Errorf("got %q, want %q", got, "@Sprite")
	}
}

func TestRenderGenericClassName(t *testing.T) {
	f := newTestABCFile()
	got := f.Render(f.pools.multinames[4])
	if got != "com.example::Sprite.<Sprite>" {
		t.Errorf("got %q, want %q", got, "com.example::Sprite.<Sprite>")
	}
}

func TestRenderPublicNamespaceWithEmptyLocalNameIsEmpty(t *testing.T) {
	f := newTestABCFile()
	got := f.Render(f.pools.multinames[5])
	if got != "" {
		t.Errorf("got %q, want %q (an empty namespace render drops, leaving just the local part)", got, "")
	}
}

func TestRenderWildcardLocalName(t *testing.T) {
	f := newTestABCFile()
	got := f.Render(f.pools.multinames[6])
	if got != "*" {
		t.Errorf("got %q, want %q", got, "*")
	}
}

func TestRenderNilIsQuestionMark(t *testing.T) {
	f := &ABCFile{}
	if got := f.Render(nil); got != "?" {
		t.Errorf("got %q, want ?", got)
	}
}
