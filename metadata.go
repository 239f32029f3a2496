// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// MetadataInfo is one [Metadata(...)] tag attached to a trait. Per the
// errata SPEC_FULL.md §6 calls out, the wire layout lists all N keys before
// any value, not interleaved key/value pairs.
type MetadataInfo struct {
	Index int      `json:"index"`
	Name  string   `json:"name"`
	Keys  []string `json:"keys"`

	// Values has one entry per key; an empty key (an unnamed positional
	// metadata argument) is legal, so Values is parallel to Keys by
	// position, not by a keys-to-values map.
	Values []string `json:"values"`
}

func (p *parser) decodeMetadataInfo(index int) (*MetadataInfo, error) {
	nameIdx, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	name, err := p.stringAt(int(nameIdx))
	if err != nil {
		return nil, err
	}

	count, err := p.r.readU30()
	if err != nil {
		return nil, err
	}

	keys := make([]string, count)
	for i := range keys {
		idx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		s, err := p.stringAt(int(idx))
		if err != nil {
			return nil, err
		}
		keys[i] = s
	}

	values := make([]string, count)
	for i := range values {
		idx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		s, err := p.stringAt(int(idx))
		if err != nil {
			return nil, err
		}
		values[i] = s
	}

	if count == 0 {
		p.addAnomaly(anoMetadataNoKeys)
	}

	return &MetadataInfo{Index: index, Name: name, Keys: keys, Values: values}, nil
}

func (p *parser) decodeMetadataArray() ([]*MetadataInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	tags := make([]*MetadataInfo, n)
	for i := range tags {
		m, err := p.decodeMetadataInfo(i)
		if err != nil {
			return nil, err
		}
		tags[i] = m
	}
	return tags, nil
}

func (p *parser) metadataAt(i int) (*MetadataInfo, error) {
	if i < 0 || i >= len(p.metadata) {
		return nil, errMetadataOutOfRange(i, len(p.metadata))
	}
	return p.metadata[i], nil
}

// decodeMetadataRefs reads a U30 count followed by that many U30 indices
// into the metadata array, used by traits whose ATTR_Metadata bit is set.
func (p *parser) decodeMetadataRefs() ([]*MetadataInfo, error) {
	n, err := p.r.readU30()
	if err != nil {
		return nil, err
	}
	tags := make([]*MetadataInfo, n)
	for i := range tags {
		idx, err := p.r.readU30()
		if err != nil {
			return nil, err
		}
		m, err := p.metadataAt(int(idx))
		if err != nil {
			return nil, err
		}
		tags[i] = m
	}
	return tags, nil
}
