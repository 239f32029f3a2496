// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "testing"

func TestDecodeNamespacePrivateDiscardsNameButRecordsAnomaly(t *testing.T) {
	p := &parser{}
	p.pools.strings = []string{"", "debugname"}
	buf := []byte{tagCONSTANTPrivateNs}
	buf = append(buf, encodeU32(1)...) // non-zero name index
	p.r = newReader(buf, false)

	ns, err := p.decodeNamespace()
	if err != nil {
		t.Fatal(err)
	}
	if ns.Kind != NSPrivate || ns.Name != "" {
		t.Errorf("got %+v, want empty-name NSPrivate", ns)
	}
	if len(p.anomalies) != 1 || p.anomalies[0] != anoPrivateNamespaceHadName {
		t.Errorf("expected anoPrivateNamespaceHadName anomaly, got %v", p.anomalies)
	}
}

func TestDecodeNamespacePrivateOccurrencesAreDistinct(t *testing.T) {
	p := &parser{}
	p.pools.strings = []string{""}
	buf := append([]byte{tagCONSTANTPrivateNs}, encodeU32(0)...)
	buf = append(buf, tagCONSTANTPrivateNs)
	buf = append(buf, encodeU32(0)...)
	p.r = newReader(buf, false)

	ns1, err := p.decodeNamespace()
	if err != nil {
		t.Fatal(err)
	}
	ns2, err := p.decodeNamespace()
	if err != nil {
		t.Fatal(err)
	}
	if ns1 == ns2 {
		t.Error("two private namespace occurrences must not alias")
	}
}

func TestNamespaceIsPublic(t *testing.T) {
	if !(&Namespace{Kind: NSOrdinary}).IsPublic() {
		t.Error("ordinary namespace with empty name should be public")
	}
	if (&Namespace{Kind: NSOrdinary, Name: "foo"}).IsPublic() {
		t.Error("named ordinary namespace should not be public")
	}
	if (&Namespace{Kind: NSPackage}).IsPublic() {
		t.Error("package namespace should not be public")
	}
}

func TestDecodeNamespaceRejectsUnknownTag(t *testing.T) {
	p := &parser{r: newReader([]byte{0xee, 0x00}, false)}
	if _, err := p.decodeNamespace(); err == nil {
		t.Fatal("expected IllegalNamespaceValue")
	}
}
