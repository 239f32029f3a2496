// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// Namespace kind tags, as laid out by the AVM2 overview's CONSTANT_*
// namespace values. These are the raw bytes read from the ABC stream, not
// to be confused with NamespaceKind below (the type used once decoded).
const (
	tagCONSTANTNamespace         = 0x08
	tagCONSTANTPackageNamespace  = 0x16
	tagCONSTANTPackageInternalNs = 0x17
	tagCONSTANTProtectedNs       = 0x18
	tagCONSTANTExplicitNs        = 0x19
	tagCONSTANTStaticProtectedNs = 0x1a
	tagCONSTANTPrivateNs         = 0x05
)

// NamespaceKind is the decoded, typed counterpart of a namespace kind tag.
type NamespaceKind byte

// The seven namespace kinds a Namespace can carry.
const (
	NSOrdinary NamespaceKind = iota
	NSPackage
	NSPackageInternal
	NSProtected
	NSStaticProtected
	NSExplicit
	NSPrivate
)

func (k NamespaceKind) String() string {
	switch k {
	case NSOrdinary:
		return "Namespace"
	case NSPackage:
		return "PackageNamespace"
	case NSPackageInternal:
		return "PackageInternalNs"
	case NSProtected:
		return "ProtectedNamespace"
	case NSStaticProtected:
		return "StaticProtectedNs"
	case NSExplicit:
		return "ExplicitNamespace"
	case NSPrivate:
		return "PrivateNs"
	default:
		return "UnknownNamespaceKind"
	}
}

// Namespace is a single entry of the namespace pool. Every occurrence of a
// private namespace is its own allocation (see decodeNamespacePool), so two
// *Namespace values with NSPrivate kind and identical Name are never the
// same namespace even though they compare equal as values.
type Namespace struct {
	Kind NamespaceKind `json:"kind"`
	Name string        `json:"name"`
}

// IsPublic reports whether ns is the ordinary namespace with an empty name,
// the "public" namespace NamespaceSet hoists to index 0.
func (ns *Namespace) IsPublic() bool {
	return ns != nil && ns.Kind == NSOrdinary && ns.Name == ""
}

func tagToNamespaceKind(tag byte) (NamespaceKind, bool) {
	switch tag {
	case tagCONSTANTNamespace:
		return NSOrdinary, true
	case tagCONSTANTPackageNamespace:
		return NSPackage, true
	case tagCONSTANTPackageInternalNs:
		return NSPackageInternal, true
	case tagCONSTANTProtectedNs:
		return NSProtected, true
	case tagCONSTANTExplicitNs:
		return NSExplicit, true
	case tagCONSTANTStaticProtectedNs:
		return NSStaticProtected, true
	case tagCONSTANTPrivateNs:
		return NSPrivate, true
	default:
		return 0, false
	}
}

// decodeNamespace reads one namespace pool entry: a 1-byte kind tag and a
// U30 string-pool index. A private namespace is materialized fresh (its
// name index is read and discarded — see SPEC_FULL.md §9 on the debug-name
// open question) so repeated private-namespace occurrences never alias.
func (p *parser) decodeNamespace() (*Namespace, error) {
	tag, err := p.r.readU8()
	if err != nil {
		return nil, err
	}
	kind, ok := tagToNamespaceKind(tag)
	if !ok {
		return nil, newErrorf(IllegalNamespaceValue, tag)
	}

	nameIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}

	if kind == NSPrivate {
		if nameIdx != 0 {
			p.addAnomaly(anoPrivateNamespaceHadName)
		}
		return &Namespace{Kind: NSPrivate}, nil
	}

	name, err := p.stringAt(int(nameIdx))
	if err != nil {
		return nil, err
	}
	return &Namespace{Kind: kind, Name: name}, nil
}
