// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import (
	"errors"
	"fmt"
)

// errShortRead is the underlying cause wrapped by every AbcCorrupt error
// raised by the primitive stream reader.
var errShortRead = errors.New("unexpected end of ABC byte stream")

// Code identifies one member of the closed error taxonomy a parse can fail
// with. Every Code is fatal to the parse in progress; there is no recovery
// path once one is raised.
type Code int

// The closed set of error conditions the parser and its accessors can raise.
const (
	// AbcCorrupt is returned when the stream ends before a field's declared
	// width has been consumed.
	AbcCorrupt Code = iota + 1

	// AbcInvalidUtf8 is returned when a string's declared byte range is not
	// valid UTF-8 and Options.AllowInvalidUTF8 is false.
	AbcInvalidUtf8

	// AbcIllegalU30 is returned when a value declared as U30 has bit 30 or
	// bit 31 set.
	AbcIllegalU30

	// AbcIllegalMultinameKind is returned when a multiname's kind tag is not
	// one of the eleven recognized kinds.
	AbcIllegalMultinameKind

	// AbcIllegalMultinamePoolIndex is returned when a multiname references a
	// pool slot it is not allowed to (the null namespace-set slot, a zero
	// generic-argument index, and so on).
	AbcIllegalMultinamePoolIndex

	// IllegalNamespaceValue is returned when a namespace's kind tag is
	// unrecognized.
	IllegalNamespaceValue

	// ConstPoolOutOfRange is returned when an index into one of the eight
	// constant pools is resolved outside the pool's bounds.
	ConstPoolOutOfRange

	// MethodInfoOutOfRange is returned when a method_info index is resolved
	// outside the method_info array's bounds.
	MethodInfoOutOfRange

	// ClassInfoOutOfRange is returned when a class_info index is resolved
	// outside the class_info array's bounds.
	ClassInfoOutOfRange

	// MetadataOutOfRange is returned when a metadata tag index is resolved
	// outside the metadata array's bounds.
	MetadataOutOfRange

	// MethodInfoInvalidFlags is returned when a method_info flag byte sets
	// an unknown bit, or sets both NEED_ARGUMENTS and NEED_REST.
	MethodInfoInvalidFlags

	// MethodInfoOptionalExceedsParam is returned when a method_info's
	// declared optional-parameter count exceeds its parameter count.
	MethodInfoOptionalExceedsParam

	// AbcInvalidInstanceInfoFlags is returned when an instance_info flag
	// byte sets an unknown bit, or sets both ClassFinal and ClassInterface.
	AbcInvalidInstanceInfoFlags

	// AbcClassTraitNameNotQName is returned when a class, trait, or script
	// name multiname resolves to a kind other than QName.
	AbcClassTraitNameNotQName

	// AbcClassTraitNameNull is returned when a class's qualified name has a
	// null local name.
	AbcClassTraitNameNull

	// InvalidTraitKind is returned when a trait's flag byte encodes a kind
	// nibble outside {slot, method, getter, setter, class, function, const}.
	InvalidTraitKind

	// MethodBodyInvalidScopeDepths is returned when a method body's declared
	// initial scope depth exceeds its declared maximum scope depth.
	MethodBodyInvalidScopeDepths

	// ArgumentNull is returned when a required argument to an accessor or
	// calculator is nil where a value was required.
	ArgumentNull

	// ArgumentOutOfRange is returned when an argument (a negative argument
	// count, an invalid multiname kind passed to the stack-effect
	// calculator) falls outside its legal domain.
	ArgumentOutOfRange
)

var codeNames = map[Code]string{
	AbcCorrupt:                      "AbcCorrupt",
	AbcInvalidUtf8:                  "AbcInvalidUtf8",
	AbcIllegalU30:                   "AbcIllegalU30",
	AbcIllegalMultinameKind:         "AbcIllegalMultinameKind",
	AbcIllegalMultinamePoolIndex:    "AbcIllegalMultinamePoolIndex",
	IllegalNamespaceValue:           "IllegalNamespaceValue",
	ConstPoolOutOfRange:             "ConstPoolOutOfRange",
	MethodInfoOutOfRange:            "MethodInfoOutOfRange",
	ClassInfoOutOfRange:             "ClassInfoOutOfRange",
	MetadataOutOfRange:              "MetadataOutOfRange",
	MethodInfoInvalidFlags:          "MethodInfoInvalidFlags",
	MethodInfoOptionalExceedsParam:  "MethodInfoOptionalExceedsParam",
	AbcInvalidInstanceInfoFlags:     "AbcInvalidInstanceInfoFlags",
	AbcClassTraitNameNotQName:       "AbcClassTraitNameNotQName",
	AbcClassTraitNameNull:           "AbcClassTraitNameNull",
	InvalidTraitKind:                "InvalidTraitKind",
	MethodBodyInvalidScopeDepths:    "MethodBodyInvalidScopeDepths",
	ArgumentNull:                    "ArgumentNull",
	ArgumentOutOfRange:              "ArgumentOutOfRange",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is the single error type raised by every parse phase and every
// post-parse accessor. It carries the failing Code plus whatever positional
// arguments give the caller the offending index, pool length, or flag bits.
type Error struct {
	Code Code
	Args []interface{}

	// Err is the lower-level cause, when the Code wraps an I/O or encoding
	// failure (AbcCorrupt wrapping errShortRead, for instance).
	Err error
}

func (e *Error) Error() string {
	if len(e.Args) == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code, fmt.Sprint(e.Args...))
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Code, so callers can
// write errors.Is(err, abc.NewError(abc.AbcCorrupt)) without matching Args.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError constructs an *Error for Code with no arguments and no cause.
func NewError(code Code) *Error {
	return &Error{Code: code}
}

func newErrorf(code Code, args ...interface{}) *Error {
	return &Error{Code: code, Args: args}
}

func wrapError(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

func errConstPoolOutOfRange(index, poolLen int) *Error {
	return newErrorf(ConstPoolOutOfRange, fmt.Sprintf("index %d, pool length %d", index, poolLen))
}

func errMethodInfoOutOfRange(index, n int) *Error {
	return newErrorf(MethodInfoOutOfRange, fmt.Sprintf("index %d, method_info count %d", index, n))
}

func errClassInfoOutOfRange(index, n int) *Error {
	return newErrorf(ClassInfoOutOfRange, fmt.Sprintf("index %d, class_info count %d", index, n))
}

func errMetadataOutOfRange(index, n int) *Error {
	return newErrorf(MetadataOutOfRange, fmt.Sprintf("index %d, metadata count %d", index, n))
}

func errMethodInfoInvalidFlags(index int, flags byte) *Error {
	return newErrorf(MethodInfoInvalidFlags, fmt.Sprintf("method_info %d, flags 0x%02x", index, flags))
}

func errInvalidInstanceInfoFlags(index int, flags byte) *Error {
	return newErrorf(AbcInvalidInstanceInfoFlags, fmt.Sprintf("class_info %d, flags 0x%02x", index, flags))
}

func errInvalidTraitKind(flags byte) *Error {
	return newErrorf(InvalidTraitKind, fmt.Sprintf("flags 0x%02x", flags))
}
