// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// TraitKind is the low nibble of a trait's flag byte: what sort of member
// this trait declares.
type TraitKind byte

// The seven recognized trait kinds.
const (
	TraitSlot TraitKind = iota
	TraitMethod
	TraitGetter
	TraitSetter
	TraitClass
	TraitFunction
	TraitConst
)

func (k TraitKind) String() string {
	switch k {
	case TraitSlot:
		return "Slot"
	case TraitMethod:
		return "Method"
	case TraitGetter:
		return "Getter"
	case TraitSetter:
		return "Setter"
	case TraitClass:
		return "Class"
	case TraitFunction:
		return "Function"
	case TraitConst:
		return "Const"
	default:
		return "Invalid"
	}
}

// TraitAttrs is the high nibble of a trait's flag byte: attribute bits
// orthogonal to the kind.
type TraitAttrs byte

// The three recognized attribute bits, occupying the high nibble.
const (
	TraitFinal     TraitAttrs = 0x10
	TraitOverride  TraitAttrs = 0x20
	TraitMetadata  TraitAttrs = 0x40
	traitAttrsMask            = TraitFinal | TraitOverride | TraitMetadata
)

const traitKindMask = 0x0f

// TraitField is the payload of a slot or const trait: a declared type plus
// an optional eagerly resolved default value.
type TraitField struct {
	TypeName     *Multiname `json:"type_name"`
	HasDefault   bool       `json:"has_default"`
	DefaultValue ConstValue `json:"default_value,omitempty"`
}

// TraitInfo is one named member declaration on a class, script, or
// activation object. Exactly one of Class, Method, or Field is populated,
// selected by Kind: Class for TraitClass, Method for
// {Method,Getter,Setter,Function}, Field for {Slot,Const}.
type TraitInfo struct {
	Name  *Multiname `json:"name"`
	Kind  TraitKind  `json:"kind"`
	Attrs TraitAttrs `json:"attrs"`

	// slotOrDispID is interpreted as a slot id for {Slot,Const,Class,
	// Function} and as a method-dispatch id for {Method,Getter,Setter}; use
	// SlotID/MethodDispID rather than this field directly.
	slotOrDispID int

	Class  *ClassInfo  `json:"class,omitempty"`
	Method *MethodInfo `json:"method,omitempty"`
	Field  *TraitField `json:"field,omitempty"`

	Metadata []*MetadataInfo `json:"metadata,omitempty"`
}

// IsFinal reports whether ATTR_Final is set.
func (t *TraitInfo) IsFinal() bool { return t.Attrs&TraitFinal != 0 }

// IsOverride reports whether ATTR_Override is set.
func (t *TraitInfo) IsOverride() bool { return t.Attrs&TraitOverride != 0 }

// HasMetadata reports whether ATTR_Metadata is set.
func (t *TraitInfo) HasMetadata() bool { return t.Attrs&TraitMetadata != 0 }

// SlotID returns the trait's declared slot id for {Slot, Const, Class,
// Function} traits, or -1 for {Method, Getter, Setter}.
func (t *TraitInfo) SlotID() int {
	switch t.Kind {
	case TraitSlot, TraitConst, TraitClass, TraitFunction:
		return t.slotOrDispID
	default:
		return -1
	}
}

// MethodDispID returns the trait's declared dispatch id for {Method,
// Getter, Setter} traits, or -1 for {Slot, Const, Class, Function}.
func (t *TraitInfo) MethodDispID() int {
	switch t.Kind {
	case TraitMethod, TraitGetter, TraitSetter:
		return t.slotOrDispID
	default:
		return -1
	}
}

// decodeTraitName reads and validates a trait/class/script name multiname:
// it must resolve to a QName with a non-null local name.
func (p *parser) decodeTraitName() (*Multiname, error) {
	idx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	m, err := p.multinameAt(int(idx))
	if err != nil {
		return nil, err
	}
	if m.Kind != KindQName {
		return nil, newErrorf(AbcClassTraitNameNotQName, "kind", m.Kind)
	}
	name, err := p.stringAt(int(m.Index2))
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, newErrorf(AbcClassTraitNameNull)
	}
	return m, nil
}

func (p *parser) decodeTrait() (*TraitInfo, error) {
	name, err := p.decodeTraitName()
	if err != nil {
		return nil, err
	}

	flagByte, err := p.r.readU8()
	if err != nil {
		return nil, err
	}
	if TraitAttrs(flagByte)&^(traitAttrsMask|traitKindMask) != 0 {
		return nil, newErrorf(InvalidTraitKind, flagByte)
	}

	kind := TraitKind(flagByte & traitKindMask)
	attrs := TraitAttrs(flagByte &^ traitKindMask)

	t := &TraitInfo{Name: name, Kind: kind, Attrs: attrs}

	switch kind {
	case TraitSlot, TraitConst:
		slotID, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		typeIdx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		typeName, err := p.multinameAt(int(typeIdx))
		if err != nil {
			return nil, err
		}
		valueIdx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		field := &TraitField{TypeName: typeName}
		if valueIdx != 0 {
			valKind, err := p.r.readU8()
			if err != nil {
				return nil, err
			}
			v, err := p.resolveConstValue(valKind, valueIdx)
			if err != nil {
				return nil, err
			}
			field.HasDefault = true
			field.DefaultValue = v
		}
		t.slotOrDispID = int(slotID)
		t.Field = field

	case TraitClass:
		slotID, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		classIdx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		class, err := p.classInfoAt(int(classIdx))
		if err != nil {
			return nil, err
		}
		t.slotOrDispID = int(slotID)
		t.Class = class

	case TraitMethod, TraitGetter, TraitSetter, TraitFunction:
		dispID, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		methodIdx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		method, err := p.methodInfoAt(int(methodIdx))
		if err != nil {
			return nil, err
		}
		t.slotOrDispID = int(dispID)
		t.Method = method

	default:
		return nil, errInvalidTraitKind(flagByte)
	}

	if t.HasMetadata() {
		tags, err := p.decodeMetadataRefs()
		if err != nil {
			return nil, err
		}
		if len(tags) == 0 {
			p.addAnomaly(anoTraitMetadataEmpty)
		}
		t.Metadata = tags
	}

	return t, nil
}

// decodeTraitArray reads a U30 count followed by that many traits, the
// shape shared by class instance/static traits, script traits, and method
// body activation traits.
func (p *parser) decodeTraitArray() ([]*TraitInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	traits := make([]*TraitInfo, n)
	for i := range traits {
		t, err := p.decodeTrait()
		if err != nil {
			return nil, err
		}
		traits[i] = t
	}
	return traits, nil
}
