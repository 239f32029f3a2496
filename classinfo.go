// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// ClassFlags are the bits of an instance_info's one-byte flag field.
type ClassFlags byte

// The four recognized class flag bits. ClassFinal and ClassInterface are
// mutually exclusive.
const (
	ClassSealed       ClassFlags = 0x01
	ClassFinal        ClassFlags = 0x02
	ClassInterface    ClassFlags = 0x04
	ClassProtectedNs  ClassFlags = 0x08
	classFlagsMask               = ClassSealed | ClassFinal | ClassInterface | ClassProtectedNs
)

// Has reports whether f sets every bit in want.
func (f ClassFlags) Has(want ClassFlags) bool { return f&want == want }

// ClassInfo is one entry of the class_info array, assembled from two
// passes over the ABC stream (instance half, then static half — see
// parser.go). Both halves of the same index are the same *ClassInfo
// pointer, allocated up front in decodeClassArrays so that a class trait
// elsewhere in the file can reference a class_info index before that
// class's own fields have been filled in; by the time Parse returns every
// field is populated.
type ClassInfo struct {
	Index int `json:"index"`

	Name               *Multiname   `json:"name"`
	Parent             *Multiname   `json:"parent"`
	Flags              ClassFlags   `json:"flags"`
	ProtectedNamespace *Namespace   `json:"protected_namespace,omitempty"`
	Interfaces         []*Multiname `json:"interfaces"`

	InstanceInit   *MethodInfo  `json:"instance_init"`
	InstanceTraits []*TraitInfo `json:"instance_traits"`

	StaticInit   *MethodInfo  `json:"static_init"`
	StaticTraits []*TraitInfo `json:"static_traits"`
}

func (p *parser) classInfoAt(i int) (*ClassInfo, error) {
	if i < 0 || i >= len(p.classes) {
		return nil, errClassInfoOutOfRange(i, len(p.classes))
	}
	return p.classes[i], nil
}

// decodeClassInstanceHalf fills in ci's name, parent, flags, protected
// namespace, interfaces, instance initializer and instance traits, reading
// from the stream in that exact order.
func (p *parser) decodeClassInstanceHalf(ci *ClassInfo) error {
	nameIdx, err := p.r.readU30()
	if err != nil {
		return err
	}
	name, err := p.multinameAt(int(nameIdx))
	if err != nil {
		return err
	}
	if name.Kind != KindQName {
		return newErrorf(AbcClassTraitNameNotQName, "class_info", ci.Index, "kind", name.Kind)
	}
	if name.Index1 == 0 {
		return newErrorf(AbcClassTraitNameNotQName, "class_info", ci.Index, "namespace is the any namespace")
	}
	localName, err := p.stringAt(int(name.Index2))
	if err != nil {
		return err
	}
	if localName == "" {
		return newErrorf(AbcClassTraitNameNull, "class_info", ci.Index)
	}
	ci.Name = name

	parentIdx, err := p.r.readU30()
	if err != nil {
		return err
	}
	parent, err := p.multinameAt(int(parentIdx))
	if err != nil {
		return err
	}
	ci.Parent = parent

	flagByte, err := p.r.readU8()
	if err != nil {
		return err
	}
	flags := ClassFlags(flagByte)
	if flags&^classFlagsMask != 0 {
		return errInvalidInstanceInfoFlags(ci.Index, flagByte)
	}
	if flags.Has(ClassFinal) && flags.Has(ClassInterface) {
		return errInvalidInstanceInfoFlags(ci.Index, flagByte)
	}
	ci.Flags = flags

	if flags.Has(ClassProtectedNs) {
		nsIdx, err := p.r.readU30()
		if err != nil {
			return err
		}
		ns, err := p.namespaceAt(int(nsIdx))
		if err != nil {
			return err
		}
		ci.ProtectedNamespace = ns
	}

	ifaceCount, err := p.r.readU30()
	if err != nil {
		return err
	}
	interfaces := make([]*Multiname, ifaceCount)
	for i := range interfaces {
		idx, err := p.r.readU30()
		if err != nil {
			return err
		}
		m, err := p.multinameAt(int(idx))
		if err != nil {
			return err
		}
		interfaces[i] = m
	}
	ci.Interfaces = interfaces

	initIdx, err := p.r.readU30()
	if err != nil {
		return err
	}
	init, err := p.methodInfoAt(int(initIdx))
	if err != nil {
		return err
	}
	ci.InstanceInit = init

	traits, err := p.decodeTraitArray()
	if err != nil {
		return err
	}
	ci.InstanceTraits = traits
	return nil
}

// decodeClassStaticHalf fills in ci's static initializer and static
// traits, the second pass over the class_info array (parser.go phase 7).
func (p *parser) decodeClassStaticHalf(ci *ClassInfo) error {
	initIdx, err := p.r.readU30()
	if err != nil {
		return err
	}
	init, err := p.methodInfoAt(int(initIdx))
	if err != nil {
		return err
	}
	ci.StaticInit = init

	traits, err := p.decodeTraitArray()
	if err != nil {
		return err
	}
	ci.StaticTraits = traits
	return nil
}

// decodeClassArrays reads both class_info passes: it first preallocates
// every *ClassInfo so instance-half traits can forward-reference a
// class_info index whose own instance half has not been read yet, then
// decodes all instance halves followed by all static halves, mirroring the
// ABC format's own two-pass layout.
func (p *parser) decodeClassArrays() ([]*ClassInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	classes := make([]*ClassInfo, n)
	for i := range classes {
		classes[i] = &ClassInfo{Index: i}
	}
	p.classes = classes

	for _, ci := range classes {
		if err := p.decodeClassInstanceHalf(ci); err != nil {
			return nil, err
		}
	}
	for _, ci := range classes {
		if err := p.decodeClassStaticHalf(ci); err != nil {
			return nil, err
		}
	}

	// The ceiling only caps what's retained, never how many declared
	// entries are consumed from the stream: script_info and
	// method_body_info still follow class_info, and skipping bytes here
	// would desync every phase after this one.
	if max := p.opts.maxClassCount(); int(n) > max {
		p.logger.Warnf("class_info count %d exceeds configured ceiling %d, truncating retained classes", n, max)
		classes = classes[:max]
		p.classes = classes
	}
	return classes, nil
}
