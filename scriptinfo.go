// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// ScriptInfo is one entry of the script_info array: a top-level
// initializer method plus the traits (usually classes and functions) it
// exports.
type ScriptInfo struct {
	Index int `json:"index"`

	Init   *MethodInfo  `json:"init"`
	Traits []*TraitInfo `json:"traits"`
}

func (p *parser) decodeScriptInfo(index int) (*ScriptInfo, error) {
	initIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	init, err := p.methodInfoAt(int(initIdx))
	if err != nil {
		return nil, err
	}
	traits, err := p.decodeTraitArray()
	if err != nil {
		return nil, err
	}
	return &ScriptInfo{Index: index, Init: init, Traits: traits}, nil
}

func (p *parser) decodeScriptInfoArray() ([]*ScriptInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	scripts := make([]*ScriptInfo, n)
	for i := range scripts {
		si, err := p.decodeScriptInfo(i)
		if err != nil {
			return nil, err
		}
		scripts[i] = si
	}
	return scripts, nil
}
