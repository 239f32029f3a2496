// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import (
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/abcfile/abc/internal/log"
)

// File wraps a byte source — a memory-mapped path or an in-memory slice —
// and owns the ABCFile produced by Parse, the way pe.File wraps a mapped
// PE image. Most callers open a File rather than calling Parse directly.
type File struct {
	data    []byte
	mapping mmap.MMap
	f       *os.File

	opts   Options
	logger *log.Helper

	abc *ABCFile
}

// Open memory-maps path and returns a File ready for Parse. The mapping is
// released by Close.
func Open(path string, opts *Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	file := newFile(m, opts)
	file.f = f
	file.mapping = m
	return file, nil
}

// OpenBytes wraps an in-memory byte slice in a File ready for Parse. Close
// is a no-op for a File constructed this way.
func OpenBytes(data []byte, opts *Options) (*File, error) {
	return newFile(data, opts), nil
}

func newFile(data []byte, opts *Options) *File {
	if opts == nil {
		opts = &Options{}
	}
	return &File{data: data, opts: *opts, logger: opts.logger()}
}

// Parse runs Parse over the File's bytes and caches the result.
func (f *File) Parse() (*ABCFile, error) {
	abc, err := Parse(f.data, &f.opts)
	if err != nil {
		return nil, err
	}
	f.abc = abc
	return abc, nil
}

// ABC returns the most recently parsed ABCFile, or nil if Parse has not
// been called yet.
func (f *File) ABC() *ABCFile { return f.abc }

// Close unmaps the file if it was opened from a path; it is a no-op for a
// File constructed with OpenBytes.
func (f *File) Close() error {
	if f.mapping != nil {
		if err := f.mapping.Unmap(); err != nil {
			return err
		}
	}
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}
