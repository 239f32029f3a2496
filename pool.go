// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// Constant-value kind tags, shared between trait default values and
// method_info optional-parameter values (SPEC_FULL.md §9's "dynamically
// typed default values"). The namespace-kind tags reuse the tagCONSTANT*
// constants declared in namespace.go: a default value of kind
// tagCONSTANTNamespace (and friends) resolves through the namespace pool.
const (
	constUndefined = 0x00
	constUtf8      = 0x01
	constInt       = 0x03
	constUInt      = 0x04
	constDouble    = 0x06
	constFalse     = 0x0a
	constTrue      = 0x0b
	constNull      = 0x0c
)

// ValueKind discriminates the tagged sum ConstValue resolves to.
type ValueKind int

// The eight kinds a resolved constant value can take.
const (
	ValueInt ValueKind = iota
	ValueUInt
	ValueDouble
	ValueString
	ValueBool
	ValueNull
	ValueUndefined
	ValueNamespace
)

// ConstValue is a dynamically typed constant: int/uint/double/string pool
// entries, a fixed true/false, the Null/Undefined singletons, or a
// namespace-pool entry, discriminated by Kind. Downstream consumers switch
// on Kind; the parser itself never needs to know which case it produced.
type ConstValue struct {
	Kind      ValueKind
	Int       int32
	UInt      uint32
	Double    float64
	String    string
	Bool      bool
	Namespace *Namespace
}

// pools holds the seven sentinel-prefixed constant-pool arrays plus the
// generic-argument-list pool, exactly as laid out in SPEC_FULL.md §3: index 0 of every pool
// except the generic-argument-list pool is the documented sentinel.
type pools struct {
	ints          []int32
	uints         []uint32
	doubles       []float64
	strings       []string
	namespaces    []*Namespace
	namespaceSets []*NamespaceSet
	multinames    []*Multiname

	// genericArgLists is parallel to genericArgsRaw: genericArgLists[i] is
	// the resolved []*Multiname for the raw index list genericArgsRaw[i].
	// Not sentinel-prefixed — position 0 is a real argument list the first
	// time a GenericClassName multiname is decoded.
	genericArgLists [][]*Multiname
}

// sentinelCount returns the array length a declared pool count of n calls
// for: length 1 (holding only the sentinel) when n is zero, else length n
// (indices 1..n-1 populated, index 0 the sentinel).
func sentinelCount(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	return n
}

func (p *parser) decodeIntPool() error {
	n, err := p.r.readU30()
	if err != nil {
		return err
	}
	p.pools.ints = make([]int32, sentinelCount(n))
	for i := uint32(1); i < n; i++ {
		v, err := p.r.readU32()
		if err != nil {
			return err
		}
		p.pools.ints[i] = int32(v)
	}
	return nil
}

func (p *parser) decodeUIntPool() error {
	n, err := p.r.readU30()
	if err != nil {
		return err
	}
	p.pools.uints = make([]uint32, sentinelCount(n))
	for i := uint32(1); i < n; i++ {
		v, err := p.r.readU32()
		if err != nil {
			return err
		}
		p.pools.uints[i] = v
	}
	return nil
}

func (p *parser) decodeDoublePool() error {
	n, err := p.r.readU30()
	if err != nil {
		return err
	}
	doubles := make([]float64, sentinelCount(n))
	doubles[0] = doubleNaN
	for i := uint32(1); i < n; i++ {
		v, err := p.r.readD64LE()
		if err != nil {
			return err
		}
		doubles[i] = v
	}
	p.pools.doubles = doubles
	return nil
}

func (p *parser) decodeStringPool() error {
	n, err := p.r.readU30()
	if err != nil {
		return err
	}
	p.pools.strings = make([]string, sentinelCount(n))
	for i := uint32(1); i < n; i++ {
		s, err := p.r.readString()
		if err != nil {
			return err
		}
		p.pools.strings[i] = s
	}
	return nil
}

func (p *parser) decodeNamespacePool() error {
	n, err := p.r.readU30()
	if err != nil {
		return err
	}
	p.pools.namespaces = make([]*Namespace, sentinelCount(n))
	for i := uint32(1); i < n; i++ {
		ns, err := p.decodeNamespace()
		if err != nil {
			return err
		}
		p.pools.namespaces[i] = ns
	}
	return nil
}

func (p *parser) decodeNamespaceSetPool() error {
	n, err := p.r.readU30()
	if err != nil {
		return err
	}
	p.pools.namespaceSets = make([]*NamespaceSet, sentinelCount(n))
	for i := uint32(1); i < n; i++ {
		set, err := p.decodeNamespaceSet()
		if err != nil {
			return err
		}
		p.pools.namespaceSets[i] = set
	}
	return nil
}

// sentinelMultiname is the QName the parser installs at multiname-pool
// index 0: both indices zero, kind QName, distinguishable from the
// all-zero-kind default Multiname{} only through IsValid (KindQName is a
// real, valid kind; KindInvalid is not).
var sentinelMultiname = &Multiname{Kind: KindQName, Index1: 0, Index2: 0}

func (p *parser) decodeMultinamePool() error {
	n, err := p.r.readU30()
	if err != nil {
		return err
	}
	p.pools.multinames = make([]*Multiname, sentinelCount(n))
	p.pools.multinames[0] = sentinelMultiname
	for i := uint32(1); i < n; i++ {
		m, err := p.decodeMultiname()
		if err != nil {
			return err
		}
		p.pools.multinames[i] = m
	}
	return p.resolveGenericArgLists()
}

// resolveGenericArgLists runs the second micro-pass SPEC_FULL.md §9
// describes: each GenericClassName multiname stashed a raw index list
// while the multiname pool was still being built, since its elements may
// reference multinames that had not been decoded yet. Now that the pool is
// complete, each raw list is resolved into a []*Multiname. Each argument
// index is a multiname-pool reference and is bound-checked against
// len(p.pools.multinames). The list position a GenericClassName stores in
// Index2 is assigned by decodeMultiname and is bound-checked against the
// generic-argument-list pool by genericArgListAt.
func (p *parser) resolveGenericArgLists() error {
	p.pools.genericArgLists = make([][]*Multiname, len(p.genericArgsRaw))
	for i, raw := range p.genericArgsRaw {
		resolved := make([]*Multiname, len(raw))
		for j, idx := range raw {
			m, err := p.multinameAt(int(idx))
			if err != nil {
				return err
			}
			resolved[j] = m
		}
		p.pools.genericArgLists[i] = resolved
	}
	return nil
}

// --- resolution accessors -------------------------------------------------
//
// Every accessor below range-checks its index and raises the corresponding
// typed error rather than panicking, so a well-formed file never raises
// these once Parse has returned (SPEC_FULL.md §7).

func (ps *pools) intAt(i int) (int32, error) {
	if i < 0 || i >= len(ps.ints) {
		return 0, errConstPoolOutOfRange(i, len(ps.ints))
	}
	return ps.ints[i], nil
}

func (ps *pools) uintAt(i int) (uint32, error) {
	if i < 0 || i >= len(ps.uints) {
		return 0, errConstPoolOutOfRange(i, len(ps.uints))
	}
	return ps.uints[i], nil
}

func (ps *pools) doubleAt(i int) (float64, error) {
	if i < 0 || i >= len(ps.doubles) {
		return 0, errConstPoolOutOfRange(i, len(ps.doubles))
	}
	return ps.doubles[i], nil
}

func (ps *pools) stringAt(i int) (string, error) {
	if i < 0 || i >= len(ps.strings) {
		return "", errConstPoolOutOfRange(i, len(ps.strings))
	}
	return ps.strings[i], nil
}

func (ps *pools) namespaceAt(i int) (*Namespace, error) {
	if i < 0 || i >= len(ps.namespaces) {
		return nil, errConstPoolOutOfRange(i, len(ps.namespaces))
	}
	return ps.namespaces[i], nil
}

func (ps *pools) namespaceSetAt(i int) (*NamespaceSet, error) {
	if i < 0 || i >= len(ps.namespaceSets) {
		return nil, errConstPoolOutOfRange(i, len(ps.namespaceSets))
	}
	return ps.namespaceSets[i], nil
}

func (ps *pools) multinameAt(i int) (*Multiname, error) {
	if i < 0 || i >= len(ps.multinames) {
		return nil, errConstPoolOutOfRange(i, len(ps.multinames))
	}
	return ps.multinames[i], nil
}

func (ps *pools) genericArgListAt(i int) ([]*Multiname, error) {
	if i < 0 || i >= len(ps.genericArgLists) {
		return nil, errConstPoolOutOfRange(i, len(ps.genericArgLists))
	}
	return ps.genericArgLists[i], nil
}

func (p *parser) intAt(i int) (int32, error)      { return p.pools.intAt(i) }
func (p *parser) uintAt(i int) (uint32, error)    { return p.pools.uintAt(i) }
func (p *parser) doubleAt(i int) (float64, error) { return p.pools.doubleAt(i) }
func (p *parser) stringAt(i int) (string, error)  { return p.pools.stringAt(i) }

func (p *parser) namespaceAt(i int) (*Namespace, error) { return p.pools.namespaceAt(i) }

func (p *parser) namespaceSetAt(i int) (*NamespaceSet, error) {
	return p.pools.namespaceSetAt(i)
}

func (p *parser) multinameAt(i int) (*Multiname, error) { return p.pools.multinameAt(i) }

func (p *parser) genericArgListAt(i int) ([]*Multiname, error) {
	return p.pools.genericArgListAt(i)
}

// resolveConstValue maps a (kind, index) pair to a typed ConstValue, the
// single dynamically typed decode point SPEC_FULL.md §9 calls for. It is
// used both for trait default values and method_info optional-parameter
// values — the two contexts in the ABC format a constant value appears in.
func (p *parser) resolveConstValue(kind byte, index uint32) (ConstValue, error) {
	switch kind {
	case constInt:
		v, err := p.intAt(int(index))
		return ConstValue{Kind: ValueInt, Int: v}, err
	case constUInt:
		v, err := p.uintAt(int(index))
		return ConstValue{Kind: ValueUInt, UInt: v}, err
	case constDouble:
		v, err := p.doubleAt(int(index))
		return ConstValue{Kind: ValueDouble, Double: v}, err
	case constUtf8:
		v, err := p.stringAt(int(index))
		return ConstValue{Kind: ValueString, String: v}, err
	case constTrue:
		return ConstValue{Kind: ValueBool, Bool: true}, nil
	case constFalse:
		return ConstValue{Kind: ValueBool, Bool: false}, nil
	case constNull:
		return ConstValue{Kind: ValueNull}, nil
	case constUndefined:
		return ConstValue{Kind: ValueUndefined}, nil
	case tagCONSTANTNamespace, tagCONSTANTPackageNamespace, tagCONSTANTPackageInternalNs,
		tagCONSTANTProtectedNs, tagCONSTANTExplicitNs, tagCONSTANTStaticProtectedNs, tagCONSTANTPrivateNs:
		v, err := p.namespaceAt(int(index))
		return ConstValue{Kind: ValueNamespace, Namespace: v}, err
	default:
		return ConstValue{}, newErrorf(ArgumentOutOfRange, "unknown constant kind", kind)
	}
}
