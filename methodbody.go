// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// MethodBodyInfo is one entry of the method_body_info array: the bytecode
// and frame shape for one method_info, linked back to it by Method.
type MethodBodyInfo struct {
	Method *MethodInfo `json:"method"`

	MaxStack       uint32 `json:"max_stack"`
	LocalCount     uint32 `json:"local_count"`
	InitScopeDepth uint32 `json:"init_scope_depth"`
	MaxScopeDepth  uint32 `json:"max_scope_depth"`

	// Code is the raw bytecode; opcodes.go's table and stack-effect
	// calculator operate on it but this package never disassembles it
	// eagerly at parse time.
	Code []byte `json:"code"`

	Exceptions []*ExceptionInfo `json:"exceptions"`

	// Traits holds the body's activation traits, decoded with the same
	// shared trait-array reader class/script traits use.
	Traits []*TraitInfo `json:"traits"`
}

func (p *parser) decodeMethodBodyInfo() (*MethodBodyInfo, error) {
	methodIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	method, err := p.methodInfoAt(int(methodIdx))
	if err != nil {
		return nil, err
	}

	maxStack, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	localCount, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	initScopeDepth, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	maxScopeDepth, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	if initScopeDepth > maxScopeDepth {
		return nil, newErrorf(MethodBodyInvalidScopeDepths,
			"method_info", method.Index, "init", initScopeDepth, "max", maxScopeDepth)
	}

	codeLen, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	code, err := p.r.readBytes(codeLen)
	if err != nil {
		return nil, err
	}
	if codeLen == 0 {
		p.addAnomaly(anoMethodBodyEmptyCode)
	}

	exceptions, err := p.decodeExceptionArray()
	if err != nil {
		return nil, err
	}
	traits, err := p.decodeTraitArray()
	if err != nil {
		return nil, err
	}

	return &MethodBodyInfo{
		Method:         method,
		MaxStack:       maxStack,
		LocalCount:     localCount,
		InitScopeDepth: initScopeDepth,
		MaxScopeDepth:  maxScopeDepth,
		Code:           code,
		Exceptions:     exceptions,
		Traits:         traits,
	}, nil
}

func (p *parser) decodeMethodBodyArray() ([]*MethodBodyInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	bodies := make([]*MethodBodyInfo, n)
	for i := range bodies {
		mb, err := p.decodeMethodBodyInfo()
		if err != nil {
			return nil, err
		}
		bodies[i] = mb
	}
	if max := p.opts.maxMethodBodyCount(); int(n) > max {
		p.logger.Warnf("method_body_info count %d exceeds configured ceiling %d, truncating retained bodies", n, max)
		bodies = bodies[:max]
	}
	return bodies, nil
}
