// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "github.com/abcfile/abc/internal/log"

// Options configures a parse. The zero value is a valid, permissive
// configuration: strict UTF-8, no soft ceilings, and a stderr logger
// filtered at Warn.
type Options struct {
	// AllowInvalidUTF8, when true, decodes a malformed string constant
	// with the Unicode replacement character instead of failing the
	// parse with AbcInvalidUtf8.
	AllowInvalidUTF8 bool

	// Logger receives non-fatal diagnostics (anomalies, soft ceilings
	// being hit). A nil Logger gets internal/log's default stderr helper.
	Logger *log.Helper

	// MaxMethodBodyCount and MaxClassCount are soft ceilings: exceeding
	// one logs a warning and truncates the corresponding array rather
	// than failing the parse. Zero means no ceiling.
	MaxMethodBodyCount int
	MaxClassCount      int
}

func (o *Options) logger() *log.Helper {
	if o.Logger != nil {
		return o.Logger
	}
	return log.NewStderrHelper()
}

func (o *Options) maxMethodBodyCount() int {
	if o.MaxMethodBodyCount <= 0 {
		return int(^uint(0) >> 1)
	}
	return o.MaxMethodBodyCount
}

func (o *Options) maxClassCount() int {
	if o.MaxClassCount <= 0 {
		return int(^uint(0) >> 1)
	}
	return o.MaxClassCount
}

// parser drives the phase-ordered decode of one ABC byte stream. Its
// fields accumulate the pieces later phases need to resolve forward
// references into (method_info for traits, class_info for class traits,
// metadata for trait metadata refs), the same incremental-construction
// shape pe.parser uses to build up a pe.File across ParseDOSHeader,
// ParseNTHeader, and so on.
type parser struct {
	r      *reader
	opts   *Options
	logger *log.Helper

	pools pools

	// genericArgsRaw accumulates each GenericClassName multiname's raw
	// argument-index list while the multiname pool is still being built;
	// resolveGenericArgLists (pool.go) resolves them once the pool is
	// complete.
	genericArgsRaw [][]uint32

	methods  []*MethodInfo
	metadata []*MetadataInfo
	classes  []*ClassInfo

	anomalies []string
}

// Parse decodes data as a complete ABC byte stream, running the format's
// fixed phase order: version header, the seven constant pools in their
// documented order, method signatures, metadata, classes (instance half
// then static half across all classes), scripts, then method bodies.
func Parse(data []byte, opts *Options) (*ABCFile, error) {
	if opts == nil {
		opts = &Options{}
	}
	p := &parser{
		r:      newReader(data, opts.AllowInvalidUTF8),
		opts:   opts,
		logger: opts.logger(),
	}

	major, err := p.r.readU16LE()
	if err != nil {
		return nil, err
	}
	minor, err := p.r.readU16LE()
	if err != nil {
		return nil, err
	}

	if err := p.decodeIntPool(); err != nil {
		return nil, err
	}
	if err := p.decodeUIntPool(); err != nil {
		return nil, err
	}
	if err := p.decodeDoublePool(); err != nil {
		return nil, err
	}
	if err := p.decodeStringPool(); err != nil {
		return nil, err
	}
	if err := p.decodeNamespacePool(); err != nil {
		return nil, err
	}
	if err := p.decodeNamespaceSetPool(); err != nil {
		return nil, err
	}
	if err := p.decodeMultinamePool(); err != nil {
		return nil, err
	}

	methods, err := p.decodeMethodInfoArray()
	if err != nil {
		return nil, err
	}
	p.methods = methods

	metadata, err := p.decodeMetadataArray()
	if err != nil {
		return nil, err
	}
	p.metadata = metadata

	classes, err := p.decodeClassArrays()
	if err != nil {
		return nil, err
	}

	scripts, err := p.decodeScriptInfoArray()
	if err != nil {
		return nil, err
	}

	bodies, err := p.decodeMethodBodyArray()
	if err != nil {
		return nil, err
	}

	return &ABCFile{
		MinorVersion: minor,
		MajorVersion: major,
		pools:        p.pools,
		Methods:      methods,
		Metadata:     metadata,
		Classes:      classes,
		Scripts:      scripts,
		MethodBodies: bodies,
		Anomalies:    p.anomalies,
		Size:         len(data),
		Options:      *opts,
	}, nil
}
