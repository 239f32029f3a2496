// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func TestMultinameShapePredicates(t *testing.T) {
	cases := []struct {
		kind             MultinameKind
		attribute        bool
		runtimeNamespace bool
		runtimeLocalName bool
		usesSet          bool
	}{
		{KindQName, false, false, false, false},
		{KindQNameA, true, false, false, false},
		{KindMultiname, false, false, false, true},
		{KindRTQName, false, true, false, false},
		{KindRTQNameL, false, true, true, false},
		{KindMultinameL, false, false, true, true},
	}
	for _, c := range cases {
		m := &Multiname{Kind: c.kind}
		if got := m.IsAttribute(); got != c.attribute {
			t.Errorf("%v.IsAttribute() = %v, want %v", c.kind, got, c.attribute)
		}
		if got := m.HasRuntimeNamespace(); got != c.runtimeNamespace {
			t.Errorf("%v.HasRuntimeNamespace() = %v, want %v", c.kind, got, c.runtimeNamespace)
		}
		if got := m.HasRuntimeLocalName(); got != c.runtimeLocalName {
			t.Errorf("%v.HasRuntimeLocalName() = %v, want %v", c.kind, got, c.runtimeLocalName)
		}
		if got := m.UsesNamespaceSet(); got != c.usesSet {
			t.Errorf("%v.UsesNamespaceSet() = %v, want %v", c.kind, got, c.usesSet)
		}
	}
}

func TestMultinameRuntimeArgCount(t *testing.T) {
	cases := []struct {
		kind MultinameKind
		want int
	}{
		{KindQName, 0},
		{KindMultiname, 0},
		{KindRTQName, 1},
		{KindMultinameL, 1},
		{KindRTQNameL, 2},
	}
	for _, c := range cases {
		m := &Multiname{Kind: c.kind}
		n, err := m.RuntimeArgCount()
		if err != nil {
			t.Fatal(err)
		}
		if n != c.want {
			t.Errorf("%v.RuntimeArgCount() = %d, want %d", c.kind, n, c.want)
		}
	}
}

func TestMultinameInvalidKindIsNotValid(t *testing.T) {
	m := &Multiname{}
	if m.IsValid() {
		t.Error("zero-value Multiname should not be valid")
	}
	if _, err := m.RuntimeArgCount(); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestHoistPublicMovesPublicNamespaceToFront(t *testing.T) {
	pkg := &Namespace{Kind: NSPackage, Name: "com.example"}
	pub := &Namespace{Kind: NSOrdinary, Name: ""}
	namespaces := []*Namespace{pkg, pub}
	hoistPublic(namespaces)
	if namespaces[0] != pub {
		t.Error("expected public namespace hoisted to index 0")
	}
}
