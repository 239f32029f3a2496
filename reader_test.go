// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import (
	"errors"
	"testing"
	"unsafe"
)

func encodeU32(v uint32) []byte {
	var b []byte
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b = append(b, c|0x80)
		} else {
			b = append(b, c)
			break
		}
	}
	return b
}

func TestReaderU32RoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 127, 128, 16383, 16384, 1 << 27, 1<<28 - 1}
	for _, v := range cases {
		r := newReader(encodeU32(v), false)
		got, err := r.readU32()
		if err != nil {
			t.Fatalf("readU32(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("readU32(%d) = %d", v, got)
		}
	}
}

func TestReaderU30RejectsHighBits(t *testing.T) {
	// Four continuation bytes, then a 5th byte whose bit 2 (0x04) lands at
	// bit 30 of the decoded value.
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x04}
	r := newReader(data, false)
	_, err := r.readU30()
	if err == nil {
		t.Fatal("expected AbcIllegalU30, got nil")
	}
	var abcErr *Error
	if !errors.As(err, &abcErr) || abcErr.Code != AbcIllegalU30 {
		t.Fatalf("expected AbcIllegalU30, got %v", err)
	}
}

func TestReaderU30FifthByteKeepsOnlyLowNibble(t *testing.T) {
	// 5th byte 0xf0 contributes nothing (only low 4 bits are kept, and
	// those are zero here), so the value is whatever the first 4 bytes
	// encoded.
	data := []byte{0x81, 0x80, 0x80, 0x80, 0xf0}
	r := newReader(data, false)
	v, err := r.readU32()
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("got %d, want 1", v)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := newReader([]byte{0x01}, false)
	if _, err := r.readU16LE(); err == nil {
		t.Fatal("expected short-read error")
	}
}

func TestReaderStringInternsShortStrings(t *testing.T) {
	data := append(encodeU32(5), []byte("hello")...)
	r1 := newReader(data, false)
	s1, err := r1.readString()
	if err != nil {
		t.Fatal(err)
	}
	r2 := newReader(data, false)
	s2, err := r2.readString()
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Fatalf("expected equal strings, got %q and %q", s1, s2)
	}
	if unsafe.StringData(s1) != unsafe.StringData(s2) {
		t.Error("expected both reads to return the same interned copy")
	}
}

func TestReaderStringRejectsInvalidUTF8(t *testing.T) {
	data := append(encodeU32(1), 0xff)
	r := newReader(data, false)
	if _, err := r.readString(); err == nil {
		t.Fatal("expected AbcInvalidUtf8")
	}
}

func TestReaderStringLenientReplacesInvalidUTF8(t *testing.T) {
	data := append(encodeU32(1), 0xff)
	r := newReader(data, true)
	s, err := r.readString()
	if err != nil {
		t.Fatal(err)
	}
	if s == "" {
		t.Fatal("expected replacement-character string, got empty")
	}
}
