// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// MethodFlags are the bits of a method_info's one-byte flag field. They are
// non-overlapping except for the combination spec.md explicitly forbids:
// NeedArguments and NeedRest must never both be set.
type MethodFlags byte

// The six recognized method_info flag bits. Any other bit set in the flag
// byte is rejected with MethodInfoInvalidFlags.
const (
	MethodNeedArguments MethodFlags = 0x01
	MethodNeedActivation MethodFlags = 0x02
	MethodNeedRest        MethodFlags = 0x04
	MethodHasOptional     MethodFlags = 0x08
	MethodSetDxns         MethodFlags = 0x40
	MethodHasParamNames   MethodFlags = 0x80

	methodFlagsMask = MethodNeedArguments | MethodNeedActivation | MethodNeedRest |
		MethodHasOptional | MethodSetDxns | MethodHasParamNames
)

// Has reports whether f sets every bit in want.
func (f MethodFlags) Has(want MethodFlags) bool { return f&want == want }

// OptionalParam is one (value, kind) pair describing a trailing optional
// parameter's default, resolved eagerly to a ConstValue at parse time.
type OptionalParam struct {
	Value ConstValue `json:"value"`
}

// MethodInfo describes one entry of the method_info array: a signature
// (return type, parameter types) plus the flag-gated optional extras.
type MethodInfo struct {
	// Index is this entry's position in the method_info array.
	Index int `json:"index"`

	ParamTypes []*Multiname `json:"param_types"`
	ReturnType *Multiname   `json:"return_type"`
	Name       string       `json:"name"`
	Flags      MethodFlags  `json:"flags"`

	// OptionalParams has one entry per trailing optional parameter,
	// populated when MethodHasOptional is set. len(OptionalParams) is the
	// method's declared optional count.
	OptionalParams []OptionalParam `json:"optional_params,omitempty"`

	// ParamNames has one entry per parameter, populated when
	// MethodHasParamNames is set.
	ParamNames []string `json:"param_names,omitempty"`
}

// ParamCount returns the method's declared parameter count.
func (mi *MethodInfo) ParamCount() int { return len(mi.ParamTypes) }

// OptionalCount returns the method's declared optional-parameter count.
func (mi *MethodInfo) OptionalCount() int { return len(mi.OptionalParams) }

func (p *parser) decodeMethodInfo(index int) (*MethodInfo, error) {
	paramCount, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	returnTypeIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	returnType, err := p.multinameAt(int(returnTypeIdx))
	if err != nil {
		return nil, err
	}

	paramTypes := make([]*Multiname, paramCount)
	for i := range paramTypes {
		idx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		m, err := p.multinameAt(int(idx))
		if err != nil {
			return nil, err
		}
		paramTypes[i] = m
	}

	nameIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	name, err := p.stringAt(int(nameIdx))
	if err != nil {
		return nil, err
	}

	flagByte, err := p.r.readU8()
	if err != nil {
		return nil, err
	}
	flags := MethodFlags(flagByte)
	if MethodFlags(flagByte)&^methodFlagsMask != 0 {
		return nil, errMethodInfoInvalidFlags(index, flagByte)
	}
	if flags.Has(MethodNeedArguments) && flags.Has(MethodNeedRest) {
		return nil, errMethodInfoInvalidFlags(index, flagByte)
	}

	mi := &MethodInfo{
		Index:      index,
		ParamTypes: paramTypes,
		ReturnType: returnType,
		Name:       name,
		Flags:      flags,
	}

	if flags.Has(MethodHasOptional) {
		optCount, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		if int(optCount) > len(paramTypes) {
			return nil, newErrorf(MethodInfoOptionalExceedsParam,
				"method_info", index, "optional", optCount, "params", len(paramTypes))
		}
		mi.OptionalParams = make([]OptionalParam, optCount)
		for i := range mi.OptionalParams {
			valIdx, err := p.r.readU30()
			if err != nil {
				return nil, err
			}
			kind, err := p.r.readU8()
			if err != nil {
				return nil, err
			}
			v, err := p.resolveConstValue(kind, valIdx)
			if err != nil {
				return nil, err
			}
			mi.OptionalParams[i] = OptionalParam{Value: v}
		}
	}

	if flags.Has(MethodHasParamNames) {
		mi.ParamNames = make([]string, len(paramTypes))
		for i := range mi.ParamNames {
			idx, err := p.r.readU30()
			if err != nil {
				return nil, err
			}
			s, err := p.stringAt(int(idx))
			if err != nil {
				return nil, err
			}
			mi.ParamNames[i] = s
		}
	}

	return mi, nil
}

func (p *parser) decodeMethodInfoArray() ([]*MethodInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	methods := make([]*MethodInfo, n)
	for i := range methods {
		mi, err := p.decodeMethodInfo(i)
		if err != nil {
			return nil, err
		}
		methods[i] = mi
	}
	return methods, nil
}

func (p *parser) methodInfoAt(i int) (*MethodInfo, error) {
	if i < 0 || i >= len(p.methods) {
		return nil, errMethodInfoOutOfRange(i, len(p.methods))
	}
	return p.methods[i], nil
}
