// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// Multiname kind tags, the raw bytes the ABC format uses on the wire. Taken
// from the AVM2 overview's CONSTANT_* multiname values.
const (
	tagCONSTANTQname           = 0x07
	tagCONSTANTQnameA          = 0x0d
	tagCONSTANTRTQname         = 0x0f
	tagCONSTANTRTQnameA        = 0x10
	tagCONSTANTRTQnameL        = 0x11
	tagCONSTANTRTQnameLA       = 0x12
	tagCONSTANTMultiname       = 0x09
	tagCONSTANTMultinameA      = 0x0e
	tagCONSTANTMultinameL      = 0x1b
	tagCONSTANTMultinameLA     = 0x1c
	tagCONSTANTTypeName        = 0x1d // GenericClassName
)

// MultinameKind is the decoded, typed counterpart of a multiname kind tag.
// The zero value, KindInvalid, never matches a tag read off the wire, so a
// zero-valued Multiname{} is always !IsValid() — this is what distinguishes
// the "default" multiname from the sentinel QName the parser installs at
// pool index 0.
type MultinameKind byte

// The eleven legal multiname kinds (five plain/attribute pairs plus
// GenericClassName), preceded by KindInvalid for the never-on-the-wire zero
// value.
const (
	KindInvalid MultinameKind = iota
	KindQName
	KindQNameA
	KindMultiname
	KindMultinameA
	KindRTQName
	KindRTQNameA
	KindMultinameL
	KindMultinameLA
	KindRTQNameL
	KindRTQNameLA
	KindGenericClassName
)

func (k MultinameKind) String() string {
	switch k {
	case KindQName:
		return "QName"
	case KindQNameA:
		return "QNameA"
	case KindMultiname:
		return "Multiname"
	case KindMultinameA:
		return "MultinameA"
	case KindRTQName:
		return "RTQName"
	case KindRTQNameA:
		return "RTQNameA"
	case KindMultinameL:
		return "MultinameL"
	case KindMultinameLA:
		return "MultinameLA"
	case KindRTQNameL:
		return "RTQNameL"
	case KindRTQNameLA:
		return "RTQNameLA"
	case KindGenericClassName:
		return "GenericClassName"
	default:
		return "Invalid"
	}
}

var tagToKind = map[byte]MultinameKind{
	tagCONSTANTQname:       KindQName,
	tagCONSTANTQnameA:      KindQNameA,
	tagCONSTANTMultiname:   KindMultiname,
	tagCONSTANTMultinameA:  KindMultinameA,
	tagCONSTANTRTQname:     KindRTQName,
	tagCONSTANTRTQnameA:    KindRTQNameA,
	tagCONSTANTMultinameL:  KindMultinameL,
	tagCONSTANTMultinameLA: KindMultinameLA,
	tagCONSTANTRTQnameL:    KindRTQNameL,
	tagCONSTANTRTQnameLA:   KindRTQNameLA,
	tagCONSTANTTypeName:    KindGenericClassName,
}

// kindShape precomputes, per kind, which operand family a multiname belongs
// to — the bitmask families SPEC_FULL.md §3 describes, folded into simple
// booleans rather than literal bits since Go has no use for the packed
// representation once decoded.
type kindShape struct {
	attribute        bool // an '@'-attribute multiname
	namespaceFixed   bool // index1 is a namespace-pool index
	namespaceSet     bool // index1 is a namespace-set-pool index
	runtimeNamespace bool // namespace supplied at runtime (no index1)
	runtimeLocalName bool // local name supplied at runtime (no index2)
	generic          bool // GenericClassName: index1/index2 mean something else entirely
}

var shapes = map[MultinameKind]kindShape{
	KindQName:            {namespaceFixed: true},
	KindQNameA:           {attribute: true, namespaceFixed: true},
	KindMultiname:        {namespaceSet: true},
	KindMultinameA:       {attribute: true, namespaceSet: true},
	KindRTQName:          {runtimeNamespace: true},
	KindRTQNameA:         {attribute: true, runtimeNamespace: true},
	KindMultinameL:       {namespaceSet: true, runtimeLocalName: true},
	KindMultinameLA:      {attribute: true, namespaceSet: true, runtimeLocalName: true},
	KindRTQNameL:         {runtimeNamespace: true, runtimeLocalName: true},
	KindRTQNameLA:        {attribute: true, runtimeNamespace: true, runtimeLocalName: true},
	KindGenericClassName: {generic: true},
}

// Multiname is a single entry of the multiname pool: a (kind, index1,
// index2) triple whose interpretation of index1/index2 depends entirely on
// kind, per the families in SPEC_FULL.md §3. A half supplied at run time
// is stored as -1 in the corresponding Index1/Index2 field rather than
// forcing callers to memorize which kinds leave which index meaningless.
type Multiname struct {
	Kind   MultinameKind `json:"kind"`
	Index1 int32         `json:"index1"`
	Index2 int32         `json:"index2"`
}

// IsValid reports whether m.Kind is one of the eleven recognized kinds.
func (m *Multiname) IsValid() bool {
	if m == nil {
		return false
	}
	_, ok := shapes[m.Kind]
	return ok
}

// IsAttribute reports whether m is an '@'-prefixed attribute multiname.
func (m *Multiname) IsAttribute() bool {
	return shapes[m.Kind].attribute
}

// HasRuntimeNamespace reports whether m's namespace is supplied by the
// caller at run time rather than fixed at compile time.
func (m *Multiname) HasRuntimeNamespace() bool {
	return shapes[m.Kind].runtimeNamespace
}

// HasRuntimeLocalName reports whether m's local name is supplied by the
// caller at run time rather than fixed at compile time.
func (m *Multiname) HasRuntimeLocalName() bool {
	return shapes[m.Kind].runtimeLocalName
}

// UsesNamespaceSet reports whether Index1 is a namespace-set-pool index
// (Multiname/MultinameL families) as opposed to a single namespace.
func (m *Multiname) UsesNamespaceSet() bool {
	return shapes[m.Kind].namespaceSet
}

// IsGenericClassName reports whether m is a GenericClassName multiname.
func (m *Multiname) IsGenericClassName() bool {
	return m.Kind == KindGenericClassName
}

// RuntimeArgCount returns the number of runtime arguments a property-access
// instruction must supply for this multiname: 0 for QName/Multiname, 1 for
// RTQName or MultinameL (one runtime-provided half), 2 for RTQNameL (both
// halves runtime-provided). Used by the pop-count calculator (opcodes.go).
func (m *Multiname) RuntimeArgCount() (int, error) {
	if !m.IsValid() {
		return 0, newErrorf(ArgumentOutOfRange, "invalid multiname kind")
	}
	n := 0
	if m.HasRuntimeNamespace() {
		n++
	}
	if m.HasRuntimeLocalName() {
		n++
	}
	return n, nil
}

// NamespaceSet is an ordered collection of namespaces searched during
// property lookup. If any member is the public namespace it is moved to
// index 0, the convention decodeNamespaceSet enforces at construction time
// to accelerate the common case of a lookup against the public namespace.
type NamespaceSet struct {
	Namespaces []*Namespace `json:"namespaces"`
}

func hoistPublic(namespaces []*Namespace) {
	for i, ns := range namespaces {
		if ns.IsPublic() {
			if i != 0 {
				namespaces[0], namespaces[i] = namespaces[i], namespaces[0]
			}
			return
		}
	}
}

// decodeNamespaceSet reads a namespace-set pool entry: a U30 count followed
// by that many U30 namespace-pool indices (index 0, the "any" sentinel, is
// a legal member here unlike the referencing multiname's own set index).
func (p *parser) decodeNamespaceSet() (*NamespaceSet, error) {
	count, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	namespaces := make([]*Namespace, count)
	for i := range namespaces {
		idx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		ns, err := p.namespaceAt(int(idx))
		if err != nil {
			return nil, err
		}
		namespaces[i] = ns
	}
	hoistPublic(namespaces)
	return &NamespaceSet{Namespaces: namespaces}, nil
}

// decodeMultiname reads one multiname-pool entry, branching on its kind
// tag. GenericClassName argument lists are stashed in p.genericArgsRaw and
// resolved in a second micro-pass once the whole pool has been read (see
// resolveGenericArgLists in pool.go), since an argument list may name a
// multiname that has not been decoded yet.
func (p *parser) decodeMultiname() (*Multiname, error) {
	tag, err := p.r.readU8()
	if err != nil {
		return nil, err
	}
	kind, ok := tagToKind[tag]
	if !ok {
		return nil, newErrorf(AbcIllegalMultinameKind, tag)
	}

	shape := shapes[kind]

	if shape.generic {
		defIdx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		if defIdx == 0 {
			return nil, newErrorf(AbcIllegalMultinamePoolIndex, "GenericClassName definition index 0")
		}
		argCount, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		raw := make([]uint32, argCount)
		for i := range raw {
			idx, err := p.r.readU30()
			if err != nil {
				return nil, err
			}
			if idx == 0 {
				return nil, newErrorf(AbcIllegalMultinamePoolIndex, "GenericClassName argument index 0")
			}
			raw[i] = idx
		}
		listPos := len(p.genericArgsRaw)
		p.genericArgsRaw = append(p.genericArgsRaw, raw)
		return &Multiname{Kind: kind, Index1: int32(defIdx), Index2: int32(listPos)}, nil
	}

	m := &Multiname{Kind: kind}

	if !shape.runtimeNamespace {
		idx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		if shape.namespaceSet && idx == 0 {
			return nil, newErrorf(AbcIllegalMultinamePoolIndex, "namespace-set index 0")
		}
		m.Index1 = int32(idx)
	} else {
		m.Index1 = -1
	}

	if !shape.runtimeLocalName {
		idx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		m.Index2 = int32(idx)
	} else {
		m.Index2 = -1
	}

	return m, nil
}
