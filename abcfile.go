// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// ABCFile is the immutable result of parsing one ABC byte stream: the
// version header, the eight constant pools, and the five declaration
// arrays (method_info, metadata, class_info, script_info, method_body_info).
//
// Every index accessor on ABCFile returns a typed *Error rather than
// panicking on an out-of-range index, the same contract pool.go's
// accessors already give the parser internally.
type ABCFile struct {
	MinorVersion uint16 `json:"minor_version"`
	MajorVersion uint16 `json:"major_version"`

	pools pools

	Methods      []*MethodInfo     `json:"method_info"`
	Metadata     []*MetadataInfo   `json:"metadata"`
	Classes      []*ClassInfo      `json:"class_info"`
	Scripts      []*ScriptInfo     `json:"script_info"`
	MethodBodies []*MethodBodyInfo `json:"method_body_info"`

	// Anomalies records every non-fatal condition observed during the
	// parse (see anomaly.go); it is never used to abort a parse.
	Anomalies []string `json:"anomalies,omitempty"`

	// Size is the total byte length of the stream this ABCFile was parsed
	// from, and Options the configuration used, mirroring the provenance
	// pe.File keeps on its own FileInfo.
	Size    int     `json:"size"`
	Options Options `json:"-"`
}

// IntAt returns the signed integer constant at index i.
func (f *ABCFile) IntAt(i int) (int32, error) { return f.pools.intAt(i) }

// UIntAt returns the unsigned integer constant at index i.
func (f *ABCFile) UIntAt(i int) (uint32, error) { return f.pools.uintAt(i) }

// DoubleAt returns the double constant at index i.
func (f *ABCFile) DoubleAt(i int) (float64, error) { return f.pools.doubleAt(i) }

// StringAt returns the string constant at index i.
func (f *ABCFile) StringAt(i int) (string, error) { return f.pools.stringAt(i) }

// NamespaceAt returns the namespace at index i.
func (f *ABCFile) NamespaceAt(i int) (*Namespace, error) { return f.pools.namespaceAt(i) }

// NamespaceSetAt returns the namespace set at index i.
func (f *ABCFile) NamespaceSetAt(i int) (*NamespaceSet, error) { return f.pools.namespaceSetAt(i) }

// MultinameAt returns the multiname at index i.
func (f *ABCFile) MultinameAt(i int) (*Multiname, error) { return f.pools.multinameAt(i) }

// GenericArgListAt returns the resolved argument list at index i.
func (f *ABCFile) GenericArgListAt(i int) ([]*Multiname, error) { return f.pools.genericArgListAt(i) }

// MethodInfoAt returns the method_info entry at index i.
func (f *ABCFile) MethodInfoAt(i int) (*MethodInfo, error) {
	if i < 0 || i >= len(f.Methods) {
		return nil, errMethodInfoOutOfRange(i, len(f.Methods))
	}
	return f.Methods[i], nil
}

// ClassInfoAt returns the class_info entry at index i.
func (f *ABCFile) ClassInfoAt(i int) (*ClassInfo, error) {
	if i < 0 || i >= len(f.Classes) {
		return nil, errClassInfoOutOfRange(i, len(f.Classes))
	}
	return f.Classes[i], nil
}

// MetadataAt returns the metadata entry at index i.
func (f *ABCFile) MetadataAt(i int) (*MetadataInfo, error) {
	if i < 0 || i >= len(f.Metadata) {
		return nil, errMetadataOutOfRange(i, len(f.Metadata))
	}
	return f.Metadata[i], nil
}

// IntCount, UIntCount, DoubleCount, StringCount, NamespaceCount,
// NamespaceSetCount and MultinameCount report each constant pool's length
// including the index-0 sentinel slot.
func (f *ABCFile) IntCount() int          { return len(f.pools.ints) }
func (f *ABCFile) UIntCount() int         { return len(f.pools.uints) }
func (f *ABCFile) DoubleCount() int       { return len(f.pools.doubles) }
func (f *ABCFile) StringCount() int       { return len(f.pools.strings) }
func (f *ABCFile) NamespaceCount() int    { return len(f.pools.namespaces) }
func (f *ABCFile) NamespaceSetCount() int { return len(f.pools.namespaceSets) }
func (f *ABCFile) MultinameCount() int    { return len(f.pools.multinames) }
