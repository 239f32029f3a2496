// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// ExceptionInfo is one entry of a method body's exception_info array: the
// code-offset range a handler guards, where control transfers on a match,
// and what it catches.
type ExceptionInfo struct {
	// TryStart and TryEnd are raw U30 code offsets into the owning method
	// body's bytecode, not range-checked against its length at parse time.
	TryStart uint32 `json:"try_start"`
	TryEnd   uint32 `json:"try_end"`

	// TargetOffset is the raw U30 code offset execution resumes at when
	// this handler catches.
	TargetOffset uint32 `json:"target_offset"`

	// CatchType is the multiname of the exception type this handler
	// catches; the any-type multiname (index 0) means catch-all.
	CatchType *Multiname `json:"catch_type"`

	// CatchVar is the multiname bound to the caught value inside the
	// handler; may also be the any-type multiname.
	CatchVar *Multiname `json:"catch_var"`
}

func (p *parser) decodeExceptionInfo() (*ExceptionInfo, error) {
	tryStart, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	tryEnd, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	target, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	catchTypeIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	catchType, err := p.multinameAt(int(catchTypeIdx))
	if err != nil {
		return nil, err
	}
	catchVarIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	catchVar, err := p.multinameAt(int(catchVarIdx))
	if err != nil {
		return nil, err
	}
	return &ExceptionInfo{
		TryStart:     tryStart,
		TryEnd:       tryEnd,
		TargetOffset: target,
		CatchType:    catchType,
		CatchVar:     catchVar,
	}, nil
}

func (p *parser) decodeExceptionArray() ([]*ExceptionInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	exceptions := make([]*ExceptionInfo, n)
	for i := range exceptions {
		e, err := p.decodeExceptionInfo()
		if err != nil {
			return nil, err
		}
		exceptions[i] = e
	}
	return exceptions, nil
}
